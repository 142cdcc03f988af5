// internal/cli/serve.go
package evaloop

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/evaloop/internal/webserver"
)

var (
	serveHost  string
	serveBuild bool
)

// serveCmd serves the built site over HTTP until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built site over HTTP",
	Long:  `Serve the output directory with a small JSON API (/api/health, /api/overview, /api/models). With --build the site is rebuilt first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		if serveBuild {
			if _, err := buildSite(cmd, cfg); err != nil {
				return err
			}
		}
		outcome, err := loadResults(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}

		srv, err := webserver.New(webserver.Config{
			Host:    serveHost,
			Port:    cfg.Port(),
			SiteDir: cfg.OutputDirectory(),
			Outcome: outcome,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "interface to listen on")
	serveCmd.Flags().BoolVar(&serveBuild, "build", false, "build the site before serving")
	_ = viper.BindPFlag("servePort", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
