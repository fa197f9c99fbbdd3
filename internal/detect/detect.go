// Package detect implements the signal-weighted risk scoring engine.
//
// Input text is evaluated against a declarative rule table plus a fixed
// ordered set of ad-hoc heuristics. Triggered signals sum into a raw score,
// which the classifier clamps to [0, 10] and maps to a three-tier verdict.
// Evaluation is pure and deterministic: identical input always produces the
// same score and the same reason ordering.
package detect

import (
	"errors"

	"github.com/trustlens/trustlens/internal/rules"
	"github.com/trustlens/trustlens/internal/scans"
)

// NoFindings is the sentinel reason reported when no signal triggers.
// Display convention only; it never affects the score.
const NoFindings = "No suspicious patterns detected"

// ErrEmptyInput is returned when the input is empty or whitespace-only.
var ErrEmptyInput = errors.New("input is empty")

// Heuristic is an ad-hoc check applied after a detector's rule table.
// A zero weight means the heuristic did not trigger.
type Heuristic func(input string) (weight int, reason string)

// Detector binds a rule table and its heuristics to one detector type.
// Pre heuristics run before the table (known-fake lookups), Post after.
type Detector struct {
	Type  scans.DetectorType
	Pre   []Heuristic
	Table rules.Table
	Post  []Heuristic
}

// Evaluate scores input against the detector's signals in declaration
// order: pre heuristics, then the rule table, then post heuristics.
func (d Detector) Evaluate(input string) (int, []string) {
	return evaluate(input, d.Pre, d.Table, d.Post)
}

// Evaluate scores input against a bare rule table plus trailing heuristics.
func Evaluate(input string, table rules.Table, heuristics ...Heuristic) (int, []string) {
	return evaluate(input, nil, table, heuristics)
}

func evaluate(input string, pre []Heuristic, table rules.Table, post []Heuristic) (int, []string) {
	var score int
	reasons := []string{}

	for _, h := range pre {
		if w, reason := h(input); w != 0 {
			score += w
			reasons = append(reasons, reason)
		}
	}
	for _, r := range table {
		if r.Predicate.Match(input) {
			score += r.Weight
			reasons = append(reasons, r.Reason)
		}
	}
	for _, h := range post {
		if w, reason := h(input); w != 0 {
			score += w
			reasons = append(reasons, reason)
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, NoFindings)
	}
	return score, reasons
}
