// internal/export/export_test.go
package export

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/evaloop/internal/results"
)

func models() []results.ModelResult {
	return []results.ModelResult{
		{Rank: 1, Name: "o3-mini", Organization: "OpenAI", ASLScore: 7.457, SuccessRate: 0.852, AvgTime: results.Float(1.15), RobustnessScore: results.Float(88.5)},
		{Rank: 2, Name: "Qwen2.5-Coder-32B", Organization: "Alibaba", ASLScore: 7.385, SuccessRate: 0.825},
	}
}

func TestToCSVQuotesCommas(t *testing.T) {
	fields := []Field{
		{Name: "rank", Value: func(m results.ModelResult) any { return m.Rank }},
		{Name: "name", Value: func(m results.ModelResult) any { return m.Name }},
		{Name: "organization", Value: func(m results.ModelResult) any { return m.Organization }},
	}
	out := ToCSV([]results.ModelResult{{Rank: 1, Name: "a,b", Organization: "X"}}, fields)
	assert.Equal(t, "rank,name,organization\n1,\"a,b\",X", out)
}

func TestToCSVDoesNotEscapeQuotes(t *testing.T) {
	fields := []Field{{Name: "name", Value: func(m results.ModelResult) any { return m.Name }}}
	out := ToCSV([]results.ModelResult{{Name: `say "hi", ok`}}, fields)
	assert.Equal(t, "name\n\"say \"hi\", ok\"", out)
}

func TestToCSVEmpty(t *testing.T) {
	assert.Empty(t, ToCSV(nil, SummaryFields))
}

func TestSummaryCSV(t *testing.T) {
	out := ToCSV(models(), SummaryFields)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,name,organization,asl_score,success_rate,avg_time,robustness_score", lines[0])
	assert.Equal(t, "1,o3-mini,OpenAI,7.457,0.852,1.15,88.5", lines[1])
	assert.Equal(t, "2,Qwen2.5-Coder-32B,Alibaba,7.385,0.825,,", lines[2])
}

func TestLeaderboardCSV(t *testing.T) {
	out := ToCSV(models(), LeaderboardFields)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Rank,Model,Organization,ASL Semantic,Pass Rate", lines[0])
	assert.Equal(t, "1,o3-mini,OpenAI,7.457,85.2", lines[1])
	assert.Equal(t, "2,Qwen2.5-Coder-32B,Alibaba,7.385,82.5", lines[2])
}

func TestToJSONEnvelope(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)
	data, err := ToJSON(models(), now)
	require.NoError(t, err)

	var ds Dataset
	require.NoError(t, json.Unmarshal(data, &ds))
	assert.Equal(t, "1.0", ds.Metadata.Version)
	assert.Equal(t, "2024-01-20T09:30:00.000Z", ds.Metadata.Date)
	assert.Equal(t, 2, ds.Metadata.ModelsCount)
	require.Len(t, ds.Models, 2)
	assert.Equal(t, "o3-mini", ds.Models[0].Name)
	assert.Contains(t, string(data), "\n  \"metadata\"")
}

func TestModelsJSONEmpty(t *testing.T) {
	data, err := ModelsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBundleContainsEveryExport(t *testing.T) {
	files, err := All(models(), time.Now())
	require.NoError(t, err)
	files = append(files, File{Name: "plots/asl_scores.png", Data: []byte{0x89, 'P', 'N', 'G'}})

	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, files, time.Now()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{FullDatasetFile, SummaryCSVFile, LeaderboardCSVFile, LeaderboardJSONFile, "plots/asl_scores.png"}, names)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "rank,name,organization"))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	files := []File{{Name: "data/a.csv", Data: []byte("x")}, {Name: "b.json", Data: []byte("{}")}}
	require.NoError(t, WriteFiles(dir, files))

	data, err := os.ReadFile(filepath.Join(dir, "data", "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.FileExists(t, filepath.Join(dir, "b.json"))
}
