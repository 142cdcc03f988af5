// internal/results/fallback.go
package results

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

// Page profiles. Each profile ships its own embedded dataset.
const (
	ProfileLeaderboard = "leaderboard"
	ProfileResults     = "results"
)

//go:embed fallback/*.json
var fallbackFS embed.FS

// Profiles lists the profiles that have an embedded fallback dataset.
func Profiles() []string {
	entries, err := fallbackFS.ReadDir("fallback")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Fallback returns the embedded dataset for a page profile.
// An empty profile selects the leaderboard dataset.
func Fallback(profile string) (Document, error) {
	profile = ProfileOrDefault(profile)
	raw, err := fallbackFS.ReadFile("fallback/" + profile + ".json")
	if err != nil {
		return Document{}, fmt.Errorf("no embedded dataset for profile %q", profile)
	}
	doc, _, err := Parse(raw)
	if err != nil {
		return Document{}, fmt.Errorf("embedded dataset %q is invalid: %w", profile, err)
	}
	return doc, nil
}

// ProfileOrDefault returns profile, or the leaderboard profile when it is blank.
func ProfileOrDefault(profile string) string {
	if p := strings.TrimSpace(profile); p != "" {
		return p
	}
	return ProfileLeaderboard
}
