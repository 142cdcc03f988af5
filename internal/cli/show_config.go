// internal/cli/show_config.go
package evaloop

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/evaloop/internal/appconfig"
)

var showConfigRaw bool

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showConfigRaw {
			appconfig.DumpConfig(cmd.OutOrStdout(), config(), !color.NoColor)
			return
		}
		fallback := appconfig.Default()
		fallback.Debug = viper.GetBool("debug")
		fallback.LogFile = viper.GetString("logFile")
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), fallback)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "pretty-print the raw configuration struct")
	showCmd.AddCommand(showConfigCmd)
}
