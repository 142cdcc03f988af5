// internal/site/templates.go
package site

import "html/template"

var pageTemplates = template.Must(template.New("site").Funcs(template.FuncMap{
	// Heatmap colours are rgba() values built by the leaderboard package, never user input.
	"safeCSS": func(s string) template.CSS { return template.CSS(s) },
}).Parse(layoutHTML + indexHTML + resultsHTML + methodHTML))

const layoutHTML = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --accent: #2563EB;
      --light: #F1F5F9;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); }
    .rank-badge { display: inline-block; min-width: 2rem; border-radius: 1rem; color: #fff; font-weight: 600; }
    .rank-1 { background: #F59E0B; }
    .rank-2 { background: #94A3B8; }
    .rank-3 { background: #B45309; }
    .rank-up { color: #10B981; }
    .rank-down { color: #EF4444; }
    .rank-stable { color: #64748B; }
    .heatmap-cell { text-align: center; color: #0F172A; }
    .chart-box { position: relative; height: 360px; }
  </style>
</head>
<body>
  <nav class="navbar navbar-expand navbar-dark mb-4">
    <div class="container">
      <a class="navbar-brand" href="index.html">EvaLoop</a>
      <div class="navbar-nav">
        <a class="nav-link{{ if eq .Page "index" }} active{{ end }}" href="index.html">Leaderboard</a>
        <a class="nav-link{{ if eq .Page "results" }} active{{ end }}" href="results.html">Results</a>
        <a class="nav-link{{ if eq .Page "method" }} active{{ end }}" href="method.html">Method</a>
      </div>
    </div>
  </nav>
  <main class="container">
  {{ if .Degraded }}
    <div class="alert alert-warning" role="alert" id="degraded-banner">
      <strong>Degraded data.</strong> {{ .DegradedReason }}
    </div>
  {{ end }}
{{end}}

{{define "foot"}}
  </main>
  <footer class="container text-muted small my-4">
    Generated {{ .Generated }}{{ if .LastUpdated }} &middot; results updated {{ .LastUpdated }}{{ end }}
  </footer>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    const charts = {{ .ChartsJSON }};
    charts.forEach(function (c) {
      const el = document.getElementById(c.id);
      if (el) { new Chart(el, c.config); }
    });
  </script>
</body>
</html>
{{end}}

{{define "chart"}}
  <div class="col-lg-6 mb-4">
    <div class="card h-100">
      <div class="card-body">
        <h5 class="card-title">{{ .Title }}</h5>
        <div class="chart-box"><canvas id="{{ .ID }}"></canvas></div>
      </div>
    </div>
  </div>
{{end}}
`

const indexHTML = `
{{define "index"}}{{ template "head" . }}
  <div class="row mb-4">
    <div class="col-md-3"><div class="card"><div class="card-body"><div class="text-muted">Models</div><h3 id="total-models">{{ .Overview.Total }}</h3></div></div></div>
    <div class="col-md-3"><div class="card"><div class="card-body"><div class="text-muted">Average ASL</div><h3 id="avg-asl">{{ .Overview.Average }}</h3></div></div></div>
    <div class="col-md-3"><div class="card"><div class="card-body"><div class="text-muted">Highest ASL</div><h3 id="highest-asl">{{ .Overview.Highest }}</h3></div></div></div>
    <div class="col-md-3"><div class="card"><div class="card-body"><div class="text-muted">Average Pass Rate</div><h3>{{ .Overview.Success }}</h3></div></div></div>
  </div>

  <div class="card mb-4">
    <div class="card-body">
      <div class="d-flex justify-content-between mb-3">
        <h4 class="mb-0">Leaderboard</h4>
        <div>
          <a class="btn btn-sm btn-outline-primary" href="data/evaloop_leaderboard.csv" download>CSV</a>
          <a class="btn btn-sm btn-outline-primary" href="data/evaloop_leaderboard.json" download>JSON</a>
        </div>
      </div>
      <table class="table table-striped align-middle" id="leaderboard">
        <thead>
          <tr><th>Rank</th><th>Model</th><th>Organization</th><th>ASL Semantic</th><th>Pass Rate</th></tr>
        </thead>
        <tbody>
        {{ range .Rows }}
          <tr id="model-{{ .Rank }}">
            <td>{{ if eq .RankClass "bg-secondary" }}<span class="badge bg-secondary">{{ .Rank }}</span>{{ else }}<span class="rank-badge {{ .RankClass }} text-center">{{ .Rank }}</span>{{ end }}</td>
            <td class="text-start">{{ if .HasLink }}<a href="{{ .Link }}" target="_blank" rel="noopener"><strong>{{ .Name }}</strong></a>{{ else }}<strong>{{ .Name }}</strong>{{ end }}</td>
            <td>{{ .Organization }}</td>
            <td>{{ .ASLText }} <span class="rank-change {{ .Change.CSSClass }}" title="{{ .Change.Title }}">{{ .Change.Glyph }}</span></td>
            <td>{{ .SuccessText }}</td>
          </tr>
        {{ end }}
        </tbody>
      </table>
    </div>
  </div>

  <div class="row">
  {{ range .Charts }}{{ template "chart" . }}{{ end }}
  </div>
{{ template "foot" . }}{{end}}
`

const resultsHTML = `
{{define "results"}}{{ template "head" . }}
  <div class="row mb-4">
    {{ range .Summaries }}
    <div class="col-md-6">
      <div class="card"><div class="card-body">
        <h5 class="card-title">{{ .Label }}</h5>
        <dl class="row mb-0">
          <dt class="col-6">Mean</dt><dd class="col-6">{{ .Mean }}</dd>
          <dt class="col-6">Median</dt><dd class="col-6">{{ .Median }}</dd>
          <dt class="col-6">Std. deviation</dt><dd class="col-6">{{ .StdDev }}</dd>
          <dt class="col-6">Range</dt><dd class="col-6">{{ .Min }} &ndash; {{ .Max }}</dd>
        </dl>
      </div></div>
    </div>
    {{ end }}
  </div>

  <div class="row">
  {{ range .Charts }}{{ template "chart" . }}{{ end }}
  </div>

  {{ if .Heatmap }}
  <div class="card mb-4">
    <div class="card-body">
      <h4>Category Heatmap</h4>
      <table class="table table-bordered" id="heatmapTable">
        <thead><tr><th>Model</th>{{ range .HeatmapColumns }}<th>{{ . }}</th>{{ end }}<th>ASL</th></tr></thead>
        <tbody>
        {{ range .Heatmap }}
          <tr>
            <td><strong>{{ .Name }}</strong></td>
            {{ range .Cells }}{{ if .Missing }}<td class="heatmap-cell text-muted">{{ .Text }}</td>{{ else }}<td class="heatmap-cell" style="background-color: {{ .Color | safeCSS }}">{{ .Text }}</td>{{ end }}{{ end }}
            {{ if not .Cells }}<td class="text-muted" colspan="{{ $.HeatmapWidth }}">No category breakdown</td>{{ end }}
            <td class="heatmap-cell" style="background-color: {{ .Overall.Color | safeCSS }}"><strong>{{ .Overall.Text }}</strong></td>
          </tr>
        {{ end }}
        </tbody>
      </table>
    </div>
  </div>
  {{ end }}

  {{ if .Sampling }}
  <div class="card mb-4"><div class="card-body">
    <h4>Greedy vs Temperature Sampling</h4>
    <p class="mb-0">{{ .Sampling.Tasks }} tasks, temperature sampling wins {{ .Sampling.TemperatureWins }}; mean change {{ printf "%+.3f" .Sampling.MeanDelta }}.</p>
  </div></div>
  {{ end }}

  <div class="card mb-4"><div class="card-body">
    <h4>Downloads</h4>
    <a class="btn btn-outline-primary" href="data/evaloop_full_dataset.json" download>Full dataset (JSON)</a>
    <a class="btn btn-outline-primary" href="data/evaloop_summary.csv" download>Summary (CSV)</a>
    <a class="btn btn-outline-primary" href="data/evaloop_export.zip" download>Everything (ZIP)</a>
  </div></div>
{{ template "foot" . }}{{end}}
`

const methodHTML = `
{{define "method"}}{{ template "head" . }}
  <div class="card mb-4"><div class="card-body">
    {{ .Methodology }}
  </div></div>
  <div class="row">
  {{ range .Charts }}{{ template "chart" . }}{{ end }}
  </div>
{{ template "foot" . }}{{end}}
`
