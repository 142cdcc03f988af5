// internal/results/results_test.go
package results

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseValidDocument(t *testing.T) {
	raw := []byte(`{"lastUpdated":"2024-01-20","models":[
		{"rank":1,"name":"a","organization":"X","aslScore":7.5,"successRate":0.9,"rankChange":"+2"},
		{"rank":2,"name":"b","aslScore":7.1,"successRate":0.8,"rankChange":-1,"avgTime":1.2}
	]}`)
	doc, report, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if report.Changed() {
		t.Fatalf("expected no normalization, got %+v", report)
	}
	if len(doc.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(doc.Models))
	}
	if doc.Models[0].RankChange == nil || *doc.Models[0].RankChange != "+2" {
		t.Fatalf("unexpected rank change: %v", doc.Models[0].RankChange)
	}
	if doc.Models[1].RankChange == nil || *doc.Models[1].RankChange != "-1" {
		t.Fatalf("numeric rank change not kept in printed form: %v", doc.Models[1].RankChange)
	}
	if doc.Models[0].AvgTime != nil {
		t.Fatalf("absent avgTime should stay nil")
	}
	if v, ok := Value(doc.Models[1].AvgTime); !ok || v != 1.2 {
		t.Fatalf("expected avgTime 1.2, got %v %v", v, ok)
	}
}

func TestParseRejectsMissingModels(t *testing.T) {
	_, _, err := Parse([]byte(`{"lastUpdated":"2024-01-20"}`))
	if err == nil {
		t.Fatal("expected validation error for missing models")
	}
	if !strings.Contains(err.Error(), "models") {
		t.Fatalf("expected error to mention models, got %v", err)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, _, err := Parse([]byte(`{"models": [`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestParseRejectsDuplicateRank(t *testing.T) {
	raw := []byte(`{"models":[
		{"rank":1,"name":"a","aslScore":1,"successRate":0.5},
		{"rank":1,"name":"b","aslScore":2,"successRate":0.5}
	]}`)
	_, _, err := Parse(raw)
	if !errors.Is(err, ErrDuplicateRank) {
		t.Fatalf("expected ErrDuplicateRank, got %v", err)
	}
}

func TestNormalizeConvertsPercentages(t *testing.T) {
	doc := Document{Models: []ModelResult{
		{Rank: 1, Name: "a", SuccessRate: 85.2},
		{Rank: 2, Name: "b", SuccessRate: 0.5},
		{Rank: 3, Name: "c", SuccessRate: 1},
	}}
	out, report := Normalize(doc)
	if report.PercentSuccessRates != 1 {
		t.Fatalf("expected 1 converted rate, got %d", report.PercentSuccessRates)
	}
	if math.Abs(out.Models[0].SuccessRate.Float()-0.852) > 1e-9 {
		t.Fatalf("expected 0.852, got %v", out.Models[0].SuccessRate)
	}
	if out.Models[2].SuccessRate != 1 {
		t.Fatalf("a rate of exactly 1 is already a fraction, got %v", out.Models[2].SuccessRate)
	}
	if doc.Models[0].SuccessRate != 85.2 {
		t.Fatal("Normalize must not mutate its input")
	}
}

func TestFractionPercent(t *testing.T) {
	if got := Fraction(0.825).Percent(); math.Abs(got-82.5) > 1e-9 {
		t.Fatalf("expected 82.5, got %v", got)
	}
}

func TestParseSamplingAcceptsNumericTaskIDs(t *testing.T) {
	rows, err := ParseSampling([]byte(`[{"task_id":3,"greedy":0.5,"temperature":0.6},{"task_id":"HumanEval/4","greedy":0.1,"temperature":0.2}]`))
	if err != nil {
		t.Fatalf("ParseSampling error: %v", err)
	}
	if rows[0].TaskID != "3" || rows[1].TaskID != "HumanEval/4" {
		t.Fatalf("unexpected task ids: %q %q", rows[0].TaskID, rows[1].TaskID)
	}
}

func TestParseSamplingRejectsMissingFields(t *testing.T) {
	if _, err := ParseSampling([]byte(`[{"task_id":1,"greedy":0.5}]`)); err == nil {
		t.Fatal("expected validation error for missing temperature")
	}
}

func TestFallbackLeaderboard(t *testing.T) {
	doc, err := Fallback("")
	if err != nil {
		t.Fatalf("Fallback error: %v", err)
	}
	if len(doc.Models) != 2 {
		t.Fatalf("expected 2 embedded models, got %d", len(doc.Models))
	}
	if doc.Models[0].Name != "o3-mini" || doc.Models[0].ASLScore != 7.457 {
		t.Fatalf("unexpected first model: %+v", doc.Models[0])
	}
	if doc.Models[1].Name != "Qwen2.5-Coder-32B" || doc.Models[1].ASLScore != 7.385 {
		t.Fatalf("unexpected second model: %+v", doc.Models[1])
	}
}

func TestFallbackResultsIsNormalized(t *testing.T) {
	doc, err := Fallback(ProfileResults)
	if err != nil {
		t.Fatalf("Fallback error: %v", err)
	}
	if len(doc.Models) != 10 {
		t.Fatalf("expected 10 embedded models, got %d", len(doc.Models))
	}
	for _, m := range doc.Models {
		if m.SuccessRate < 0 || m.SuccessRate > 1 {
			t.Fatalf("%s success rate not normalized: %v", m.Name, m.SuccessRate)
		}
	}
	if doc.Models[5].Details != nil {
		t.Fatalf("expected rank 6 to have no details")
	}
}

func TestFallbackUnknownProfile(t *testing.T) {
	if _, err := Fallback("nope"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestProfilesListsEmbeddedDatasets(t *testing.T) {
	got := strings.Join(Profiles(), ",")
	if got != "leaderboard,results" {
		t.Fatalf("unexpected profiles: %s", got)
	}
}

func TestModelResultRoundTripKeepsOptionalFieldsAbsent(t *testing.T) {
	data, err := json.Marshal(ModelResult{Rank: 1, Name: "a", ASLScore: 1, SuccessRate: 0.5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"avgTime", "robustnessScore", "details", "rankChange"} {
		if strings.Contains(string(data), key) {
			t.Fatalf("expected %s to be omitted: %s", key, data)
		}
	}
}
