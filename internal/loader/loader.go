// internal/loader/loader.go
// Package loader reads a results document from the first working candidate source.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwiater/evaloop/internal/logging"
	"github.com/mwiater/evaloop/internal/results"
)

// ErrNoCandidates is returned when Load is called without any source to try.
var ErrNoCandidates = errors.New("no results sources configured")

// maxDocumentBytes caps how much of a remote document is read.
const maxDocumentBytes = 32 << 20

// Options control how candidates are fetched and what happens when all fail.
type Options struct {
	Fallback   bool
	Profile    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (o Options) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.timeout()}
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 15 * time.Second
	}
	return o.Timeout
}

// Load tries each candidate in order and returns the first valid document.
// When every candidate fails the outcome is Fallback (embedded data) or Failed.
// Only per-candidate fetches are logged here; callers report the outcome with logging.LogOutcome.
func Load(ctx context.Context, candidates []string, opts Options) Outcome {
	outcome := Outcome{Profile: results.ProfileOrDefault(opts.Profile)}

	for _, source := range candidates {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			outcome.Attempts = append(outcome.Attempts, Attempt{Source: source, Err: err})
			break
		}

		doc, report, err := loadOne(ctx, source, opts)
		if err != nil {
			logging.LogFetch("loader", source, "failed", err)
			outcome.Attempts = append(outcome.Attempts, Attempt{Source: source, Err: err})
			continue
		}

		logging.LogFetch("loader", source, "ok", fmt.Sprintf("%d models", len(doc.Models)))
		if report.Changed() {
			logging.LogEvent("[LOADER] %s: converted %d percentage success rates to fractions", source, report.PercentSuccessRates)
		}
		outcome.Attempts = append(outcome.Attempts, Attempt{Source: source})
		outcome.Kind = Loaded
		outcome.Document = doc
		outcome.Source = source
		outcome.Normalize = report
		return outcome
	}

	if !opts.Fallback {
		outcome.Kind = Failed
		return outcome
	}

	doc, err := results.Fallback(outcome.Profile)
	if err != nil {
		outcome.Kind = Failed
		outcome.Attempts = append(outcome.Attempts, Attempt{Source: "embedded:" + outcome.Profile, Err: err})
		return outcome
	}
	outcome.Kind = Fallback
	outcome.Document = doc
	outcome.Source = "embedded:" + outcome.Profile
	return outcome
}

// LoadSampling reads the optional greedy-vs-temperature file.
// An empty location or a missing local file yields no rows and no error.
func LoadSampling(ctx context.Context, location string, opts Options) ([]results.SamplingComparison, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}
	raw, err := read(ctx, location, opts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.LogDebug("[LOADER] sampling file %s not present", location)
			return nil, nil
		}
		return nil, err
	}
	rows, err := results.ParseSampling(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to parse sampling file %s: %w", location, err)
	}
	return rows, nil
}

func loadOne(ctx context.Context, source string, opts Options) (results.Document, results.NormalizeReport, error) {
	raw, err := read(ctx, source, opts)
	if err != nil {
		return results.Document{}, results.NormalizeReport{}, err
	}
	doc, report, err := results.Parse(raw)
	if err != nil {
		return results.Document{}, results.NormalizeReport{}, fmt.Errorf("unable to parse results: %w", err)
	}
	return doc, report, nil
}

func read(ctx context.Context, source string, opts Options) ([]byte, error) {
	if isRemote(source) {
		return fetch(ctx, source, opts)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read results file %s: %w", source, err)
	}
	return data, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(bodyBytes)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s: %w", url, err)
	}
	return body, nil
}
