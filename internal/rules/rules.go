// Package rules defines the declarative pattern tables detectors score
// against. A rule is a text predicate plus a signed weight plus the
// human-readable reason surfaced to the user when it fires.
//
// Tables are evaluated in declaration order; order affects only the order
// reasons are reported, never the summed score.
package rules

import (
	"regexp"
	"strings"
)

// Predicate matches input text. Implementations must be safe for concurrent
// use and must not retain the input.
type Predicate interface {
	Match(input string) bool
}

// Rule is one weighted, auditable signal. Weight may be negative for
// mitigating signals (e.g. an official app-store link).
type Rule struct {
	Predicate Predicate
	Weight    int
	Reason    string
}

// Table is an ordered collection of rules for one detector.
type Table []Rule

type patternPredicate struct {
	re *regexp.Regexp
}

func (p patternPredicate) Match(input string) bool { return p.re.MatchString(input) }

// Pattern compiles a case-insensitive regular expression predicate. It
// panics on an invalid expression, so tables fail at process start rather
// than at scan time.
func Pattern(expr string) Predicate {
	return patternPredicate{re: regexp.MustCompile(`(?i)` + expr)}
}

type containsPredicate struct {
	fragment string // lowercase
}

func (p containsPredicate) Match(input string) bool {
	return strings.Contains(strings.ToLower(input), p.fragment)
}

// Contains builds a case-insensitive substring predicate.
func Contains(fragment string) Predicate {
	return containsPredicate{fragment: strings.ToLower(fragment)}
}
