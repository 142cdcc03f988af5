// internal/loader/outcome.go
package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/evaloop/internal/results"
)

// Kind tags how a load finished.
type Kind int

const (
	// Failed means no candidate worked and no fallback was allowed.
	Failed Kind = iota
	// Loaded means a candidate produced a valid document.
	Loaded
	// Fallback means every candidate failed and the embedded dataset was used.
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case Fallback:
		return "fallback"
	default:
		return "failed"
	}
}

// Attempt records one candidate that was tried.
type Attempt struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
}

// Error returns the attempt error text, or an empty string for a successful attempt.
func (a Attempt) Error() string {
	if a.Err == nil {
		return ""
	}
	return a.Err.Error()
}

// Outcome is the result of Load. Document is set for Loaded and Fallback.
type Outcome struct {
	Kind      Kind
	Document  results.Document
	Source    string
	Profile   string
	Attempts  []Attempt
	Normalize results.NormalizeReport
}

// Degraded reports whether the document is not live data.
func (o Outcome) Degraded() bool {
	return o.Kind != Loaded
}

// Usable reports whether the outcome carries a document to render.
func (o Outcome) Usable() bool {
	return o.Kind == Loaded || o.Kind == Fallback
}

// Err joins the errors of every failed attempt. It is nil for Loaded outcomes.
func (o Outcome) Err() error {
	if o.Kind == Loaded {
		return nil
	}
	var errs []error
	for _, a := range o.Attempts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Source, a.Err))
		}
	}
	if len(errs) == 0 {
		return ErrNoCandidates
	}
	return errors.Join(errs...)
}

// Summary is a one-line description suitable for banners and logs.
func (o Outcome) Summary() string {
	switch o.Kind {
	case Loaded:
		return fmt.Sprintf("loaded %d models from %s", len(o.Document.Models), o.Source)
	case Fallback:
		return fmt.Sprintf("using embedded %q dataset (%d models) after %d failed source(s): %s",
			o.Profile, len(o.Document.Models), len(o.Attempts), o.failedSources())
	default:
		return fmt.Sprintf("no results available after %d failed source(s): %s", len(o.Attempts), o.failedSources())
	}
}

func (o Outcome) failedSources() string {
	var sources []string
	for _, a := range o.Attempts {
		if a.Err != nil {
			sources = append(sources, a.Source)
		}
	}
	if len(sources) == 0 {
		return "none configured"
	}
	return strings.Join(sources, ", ")
}
