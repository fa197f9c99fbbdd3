// Package intel integrates external threat intelligence lookups.
//
// The scoring engine stays pure; intel runs as a collaborator at the
// service layer and degrades gracefully when unavailable.
package intel

import "context"

// Result is the outcome of a threat intelligence lookup.
type Result struct {
	Flagged bool     `json:"flagged"`
	Threats []string `json:"threats,omitempty"`
}

// Checker looks up a URL against a threat intelligence source.
type Checker interface {
	Check(ctx context.Context, url string) (*Result, error)
}

// Noop never flags anything. Used when no intelligence source is
// configured, keeping demo mode deterministic.
type Noop struct{}

func (Noop) Check(ctx context.Context, url string) (*Result, error) {
	return &Result{Flagged: false}, nil
}
