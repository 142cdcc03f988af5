// internal/charts/charts_test.go
package charts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

func models() []results.ModelResult {
	return []results.ModelResult{
		{Rank: 1, Name: "a", Organization: "X", ASLScore: 8, SuccessRate: 0.9, AvgTime: results.Float(1), Size: results.Float(70),
			Details: &results.Details{Categories: map[string]float64{"algorithms": 90, "debugging": 80}}},
		{Rank: 2, Name: "b", Organization: "Y", ASLScore: 7, SuccessRate: 0.8, RobustnessScore: results.Float(85)},
		{Rank: 3, Name: "c", Organization: "X", ASLScore: 6, SuccessRate: 0.5, AvgTime: results.Float(2)},
	}
}

func TestPalette(t *testing.T) {
	if got := Palette(0, 0.8); got != "rgba(37, 99, 235, 0.8)" {
		t.Fatalf("Palette(0) = %q", got)
	}
	if got := Palette(5, 1); got != "rgba(37, 99, 235, 1)" {
		t.Fatalf("palette should cycle, got %q", got)
	}
	if got := Palette(4, 0.2); got != "rgba(139, 92, 246, 0.2)" {
		t.Fatalf("Palette(4) = %q", got)
	}
}

func TestASLBar(t *testing.T) {
	cfg := ASLBar(models(), 2)
	if cfg.Type != "bar" {
		t.Fatalf("unexpected type %s", cfg.Type)
	}
	if diff := cmp.Diff([]string{"a", "b"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{8, 7}, cfg.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributionUsesBinner(t *testing.T) {
	cfg := Distribution(models(), histogram.IntegerWidth{})
	if diff := cmp.Diff([]string{"6-7", "7-8"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, cfg.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestSuccessScatterUsesPercent(t *testing.T) {
	cfg := SuccessScatter(models())
	points := cfg.Data.Datasets[0].Data.([]Point)
	want := Point{X: 90, Y: 8, Label: "a"}
	if diff := cmp.Diff(want, points[0]); diff != "" {
		t.Fatalf("point mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeLineNullGaps(t *testing.T) {
	cfg := TimeLine(models(), 10)
	want := []any{1.0, nil, 2.0}
	if diff := cmp.Diff(want, cfg.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("time data mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryComparison(t *testing.T) {
	cfg := CategoryComparison(models())
	if diff := cmp.Diff([]string{"a"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("only models with details expected (-want +got):\n%s", diff)
	}
	var labels []string
	for _, ds := range cfg.Data.Datasets {
		labels = append(labels, ds.Label)
	}
	if diff := cmp.Diff([]string{"Algorithms", "Debugging"}, labels); diff != "" {
		t.Fatalf("dataset labels mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganizationRadar(t *testing.T) {
	cfg := OrganizationRadar(stats.AggregateByOrganization(models()))
	if len(cfg.Data.Datasets) != 2 {
		t.Fatalf("expected 2 organizations, got %d", len(cfg.Data.Datasets))
	}
	x := cfg.Data.Datasets[0].Data.([]any)
	// X: ASL mean 7, success 70%, avg time 1.5s -> speed 25, no robustness.
	want := []any{7.0, 70.0, 25.0, nil}
	if diff := cmp.Diff(want, x, cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })); diff != "" {
		t.Fatalf("radar data mismatch (-want +got):\n%s", diff)
	}
	y := cfg.Data.Datasets[1].Data.([]any)
	if y[2] != nil || y[3] != 85.0 {
		t.Fatalf("unexpected Y radar data %v", y)
	}
}

func TestSizeBubbleSkipsMissingSize(t *testing.T) {
	cfg := SizeBubble(models())
	points := cfg.Data.Datasets[0].Data.([]Point)
	if len(points) != 1 {
		t.Fatalf("expected one bubble, got %d", len(points))
	}
	if points[0].R == nil || *points[0].R != 5.8 {
		t.Fatalf("unexpected radius %v", points[0].R)
	}
}

func TestCorrelation(t *testing.T) {
	cfg := Correlation()
	if diff := cmp.Diff([]string{"ASL", "Pass@1", "Pass@10", "BLEU", "HumanEval"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.87, 0.72, 0.75, 0.45, 0.68}, cfg.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestProject(t *testing.T) {
	doc := results.Document{Models: models()}
	board, err := Project("", Input{Document: doc})
	if err != nil {
		t.Fatalf("Project leaderboard error: %v", err)
	}
	if len(board) != 2 || board[0].ID != "aslChart" {
		t.Fatalf("unexpected leaderboard charts %+v", board)
	}

	page, err := Project(results.ProfileResults, Input{Document: doc})
	if err != nil {
		t.Fatalf("Project results error: %v", err)
	}
	if len(page) != 6 {
		t.Fatalf("expected 6 results charts without sampling, got %d", len(page))
	}

	withSampling, _ := Project(results.ProfileResults, Input{
		Document: doc,
		Sampling: []results.SamplingComparison{{TaskID: "1", Greedy: 0.5, Temperature: 0.6}},
	})
	if got := withSampling[len(withSampling)-1].ID; got != "samplingChart" {
		t.Fatalf("expected sampling chart last, got %s", got)
	}

	if _, err := Project("dashboard", Input{Document: doc}); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestConfigJSON(t *testing.T) {
	raw, err := json.Marshal(TimeLine(models(), 3))
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if !strings.Contains(string(raw), `"data":[1,null,2]`) {
		t.Fatalf("expected null gap in JSON, got %s", raw)
	}
	if !strings.Contains(string(raw), `"maintainAspectRatio":false`) {
		t.Fatalf("expected base options in JSON, got %s", raw)
	}
}
