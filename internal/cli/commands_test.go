// internal/cli/commands_test.go
package evaloop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/evaloop/internal/export"
	"github.com/mwiater/evaloop/internal/logging"
	"github.com/mwiater/evaloop/internal/site"
)

func assertOrder(t *testing.T, out string, names ...string) {
	t.Helper()
	last := -1
	for _, name := range names {
		idx := strings.Index(out, name)
		if idx < 0 {
			t.Fatalf("expected %q in output:\n%s", name, out)
		}
		if idx < last {
			t.Fatalf("expected %v in order, got:\n%s", names, out)
		}
		last = idx
	}
}

func TestLeaderboardCommand(t *testing.T) {
	cfgPath, _ := writeConfig(t, nil)

	out, err := run(t, "--config", cfgPath, "leaderboard")
	if err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	assertOrder(t, out, "alpha", "beta", "gamma")
	for _, want := range []string{"3 of 3 models", "updated 2024-03-01", "95.0%", "↗1", "↘1", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DEGRADED") {
		t.Error("loaded results should not show the degraded banner")
	}
}

func TestLeaderboardCommandSortAndFilter(t *testing.T) {
	cfgPath, _ := writeConfig(t, nil)

	out, err := run(t, "--config", cfgPath, "leaderboard", "--sort", "success", "--desc")
	if err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	assertOrder(t, out, "beta", "alpha", "gamma")

	out, err = run(t, "--config", cfgPath, "leaderboard", "--org", "OrgA")
	if err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	if strings.Contains(out, "beta") || !strings.Contains(out, "2 of 3 models") {
		t.Errorf("expected only OrgA models, got:\n%s", out)
	}

	out, err = run(t, "--config", cfgPath, "leaderboard", "--range", "9-10")
	if err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	if !strings.Contains(out, "No models match the filter.") {
		t.Errorf("expected empty result message, got:\n%s", out)
	}

	if _, err := run(t, "--config", cfgPath, "leaderboard", "--sort", "size"); err == nil {
		t.Error("expected unknown sort key to fail")
	}
}

func TestLeaderboardCommandShowsDegradedBanner(t *testing.T) {
	cfgPath, _ := writeConfig(t, map[string]any{
		"sources":  []string{filepath.Join(t.TempDir(), "missing.json")},
		"fallback": true,
	})

	out, err := run(t, "--config", cfgPath, "leaderboard")
	if err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	if !strings.Contains(out, "DEGRADED DATA") {
		t.Errorf("expected degraded banner, got:\n%s", out)
	}
	if !strings.Contains(out, "o3-mini") {
		t.Errorf("expected embedded dataset rows, got:\n%s", out)
	}
}

func TestLeaderboardCommandLogsFallbackOnce(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "evaloop.log")
	cfgPath, _ := writeConfig(t, map[string]any{
		"sources":  []string{filepath.Join(t.TempDir(), "missing.json")},
		"fallback": true,
		"logFile":  logPath,
	})

	if _, err := run(t, "--config", cfgPath, "leaderboard"); err != nil {
		t.Fatalf("leaderboard error: %v", err)
	}
	_ = logging.Close()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "missing.json"); n == 0 {
		t.Fatalf("expected the failed source in the log, got:\n%s", data)
	}
	if n := strings.Count(string(data), "degraded"); n != 1 {
		t.Fatalf("expected one degraded line, got %d:\n%s", n, data)
	}
}

func TestLeaderboardCommandFailsWithoutResults(t *testing.T) {
	cfgPath, _ := writeConfig(t, map[string]any{
		"sources": []string{filepath.Join(t.TempDir(), "missing.json")},
	})
	if _, err := run(t, "--config", cfgPath, "leaderboard"); err == nil {
		t.Fatal("expected an error when no source loads and fallback is off")
	}
}

func TestCompareCommand(t *testing.T) {
	cfgPath, _ := writeConfig(t, nil)

	out, err := run(t, "--config", cfgPath, "compare", "2", "1")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	for _, want := range []string{"Leader:            alpha", "ASL difference:    0.400", "Pass rate gap:     4.0 points"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if _, err := run(t, "--config", cfgPath, "compare", "1", "9"); err == nil {
		t.Error("expected unknown rank to fail")
	}
	if _, err := run(t, "--config", cfgPath, "compare", "one", "2"); err == nil {
		t.Error("expected non-numeric rank to fail")
	}
}

func TestStatsCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t, nil)
	sampling := writeTemp(t, dir, "sampling.json", `[{"task_id":1,"greedy":0.5,"temperature":0.7},{"task_id":"2","greedy":0.6,"temperature":0.4}]`)

	out, err := run(t, "--config", cfgPath, "--samplingSource", sampling, "stats")
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	for _, want := range []string{
		"Models:            3",
		"Average ASL:       7.500",
		"Highest ASL:       7.900",
		"Average time (s) (n=1)",
		"models=2",
		"Tasks: 2",
		"temperature wins=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "good.json", resultsDoc)
	bad := writeTemp(t, dir, "bad.json", `{"lastUpdated":"2024-03-01"}`)
	sampling := writeTemp(t, dir, "sampling.json", `[{"task_id":1,"greedy":0.5,"temperature":0.7}]`)
	cfgPath, _ := writeConfig(t, nil)

	out, err := run(t, "--config", cfgPath, "validate", good)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "valid results file with 3 models") || !strings.Contains(out, "1 success rate(s) were percentages") {
		t.Errorf("unexpected validate output:\n%s", out)
	}

	if _, err := run(t, "--config", cfgPath, "validate", bad); err == nil {
		t.Error("expected document without models to fail validation")
	}

	out, err = run(t, "--config", cfgPath, "validate", "--sampling", sampling)
	if err != nil {
		t.Fatalf("validate --sampling error: %v", err)
	}
	if !strings.Contains(out, "valid sampling file with 1 tasks") {
		t.Errorf("unexpected sampling output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t, nil)
	target := filepath.Join(dir, "exports")

	out, err := run(t, "--config", cfgPath, "export", "--dir", target, "--zip")
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	for _, name := range []string{export.FullDatasetFile, export.SummaryCSVFile, export.LeaderboardCSVFile, export.LeaderboardJSONFile, export.BundleFile} {
		if _, err := os.Stat(filepath.Join(target, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("expected %s listed in output", name)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t, nil)

	out, err := run(t, "--config", cfgPath, "build")
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	siteDir := filepath.Join(dir, "site")
	for _, page := range []string{site.IndexPage, site.ResultsPage, site.MethodPage} {
		if _, err := os.Stat(filepath.Join(siteDir, page)); err != nil {
			t.Errorf("expected %s: %v", page, err)
		}
	}
	if !strings.Contains(out, "Site written to "+siteDir) {
		t.Errorf("unexpected build output:\n%s", out)
	}
}
