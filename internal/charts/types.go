// internal/charts/types.go
// Package charts projects results into Chart.js configurations.
package charts

import "fmt"

// Config is a Chart.js chart definition. It serialises to the object passed to new Chart().
type Config struct {
	Type    string         `json:"type"`
	Data    Data           `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

// Data is the chart's labels and datasets.
type Data struct {
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. Data holds []float64, []any (with nil gaps) or []Point.
type Dataset struct {
	Label           string  `json:"label"`
	Data            any     `json:"data"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderColor     any     `json:"borderColor,omitempty"`
	BorderWidth     int     `json:"borderWidth,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
	Hidden          bool    `json:"hidden,omitempty"`
}

// Point is a scatter or bubble point. R is only set for bubbles.
type Point struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	R     *float64 `json:"r,omitempty"`
	Label string   `json:"label"`
}

// Named pairs a chart with the canvas id it renders into.
type Named struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Config Config `json:"config"`
}

var palette = [...][3]int{
	{37, 99, 235},
	{16, 185, 129},
	{245, 158, 11},
	{239, 68, 68},
	{139, 92, 246},
}

// Palette returns the site colour for a series index, cycling through five colours.
func Palette(index int, alpha float64) string {
	if index < 0 {
		index = -index
	}
	c := palette[index%len(palette)]
	return rgba(c[0], c[1], c[2], alpha)
}

// gradient is the blue-to-green ramp used by the top-model radar.
func gradient(index int, alpha float64) string {
	return rgba(index*45, 99+index*30, 235-index*30, alpha)
}

func rgba(r, g, b int, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(alpha))
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func axisTitle(text string) map[string]any {
	return map[string]any{"display": true, "text": text}
}

func baseOptions() map[string]any {
	return map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
	}
}

func hiddenLegend() map[string]any {
	return map[string]any{"legend": map[string]any{"display": false}}
}
