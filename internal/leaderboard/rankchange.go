// internal/leaderboard/rankchange.go
// Package leaderboard turns result records into table rows, glyphs and heatmap cells.
package leaderboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/evaloop/internal/results"
)

// Direction is the sense of a rank movement.
type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Stable Direction = "stable"
)

// StableGlyph is shown when a model did not move.
const StableGlyph = "—"

// RankChange is a parsed rank movement ready for display.
type RankChange struct {
	Direction    Direction `json:"direction"`
	Magnitude    int       `json:"magnitude,omitempty"`
	HasMagnitude bool      `json:"hasMagnitude"`
	Glyph        string    `json:"glyph"`
	raw          string
}

// FormatRankChange parses a published rank change.
//
// Absent, empty, "=" and a zero move are stable. A leading "+" is up and a leading "-" is down.
// Any other text is treated as an upward move; an unsigned "4" reads as up 4.
// When the digits after the sign do not parse, the direction stands, the magnitude
// is dropped and the glyph repeats the raw text.
func FormatRankChange(raw *results.Delta) RankChange {
	if raw == nil {
		return stable()
	}
	text := strings.TrimSpace(string(*raw))
	switch {
	case text == "" || text == "=":
		return stable()
	case strings.HasPrefix(text, "+"):
		return settle(moved(Up, "↗", text[1:]))
	case strings.HasPrefix(text, "-"):
		return settle(moved(Down, "↘", text[1:]))
	default:
		return settle(moved(Up, "↗", text))
	}
}

// settle turns a zero move into no change.
func settle(rc RankChange) RankChange {
	if rc.HasMagnitude && rc.Magnitude == 0 {
		return stable()
	}
	return rc
}

func stable() RankChange {
	return RankChange{Direction: Stable, Glyph: StableGlyph}
}

func moved(dir Direction, arrow, digits string) RankChange {
	rc := RankChange{Direction: dir, Glyph: arrow + digits, raw: digits}
	if n, err := strconv.Atoi(digits); err == nil && n >= 0 {
		rc.Magnitude = n
		rc.HasMagnitude = true
	}
	return rc
}

// Title is the tooltip text for the glyph.
func (r RankChange) Title() string {
	switch r.Direction {
	case Up:
		return fmt.Sprintf("Up %s positions", r.amount())
	case Down:
		return fmt.Sprintf("Down %s positions", r.amount())
	default:
		return "No change"
	}
}

// CSSClass is the class the site uses to colour the glyph.
func (r RankChange) CSSClass() string {
	return "rank-" + string(r.Direction)
}

func (r RankChange) amount() string {
	if r.HasMagnitude {
		return strconv.Itoa(r.Magnitude)
	}
	return r.raw
}

// TrendFromRankChange derives a trend word when a record only carries a rank change.
// Only a leading sign moves the trend; unsigned text and zero moves are stable.
func TrendFromRankChange(raw *results.Delta) string {
	if raw == nil {
		return string(Stable)
	}
	text := strings.TrimSpace(string(*raw))
	if n, err := strconv.Atoi(strings.TrimLeft(text, "+-")); err == nil && n == 0 {
		return string(Stable)
	}
	switch {
	case strings.HasPrefix(text, "+"):
		return string(Up)
	case strings.HasPrefix(text, "-"):
		return string(Down)
	default:
		return string(Stable)
	}
}

// Trend returns the published trend, or one derived from the rank change.
func Trend(m results.ModelResult) string {
	if m.Trend != nil && strings.TrimSpace(*m.Trend) != "" {
		return strings.TrimSpace(*m.Trend)
	}
	return TrendFromRankChange(m.RankChange)
}
