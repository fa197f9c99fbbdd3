package detect

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/trustlens/trustlens/internal/intel"
	"github.com/trustlens/trustlens/internal/logging"
	"github.com/trustlens/trustlens/internal/scans"
	"github.com/trustlens/trustlens/internal/traces"
)

// IntelFlagWeight is added when the threat intelligence collaborator
// flags a URL.
const IntelFlagWeight = 6

// Assessment is the outcome of one scan.
type Assessment struct {
	Score   int           `json:"score"`
	Verdict scans.Verdict `json:"verdict"`
	Reasons []string      `json:"reasons"`
	Intel   *intel.Result `json:"intel,omitempty"`
}

// Service runs detectors, enriches phishing scans with threat
// intelligence, and records outcomes to the ledger.
type Service struct {
	ledger     *scans.Ledger
	intel      intel.Checker
	classifier *Classifier
}

// NewService creates a scan service over the given ledger.
func NewService(ledger *scans.Ledger) *Service {
	return &Service{
		ledger:     ledger,
		classifier: NewClassifier(),
	}
}

// WithIntel attaches a threat intelligence checker, consulted for
// phishing scans only.
func (s *Service) WithIntel(c intel.Checker) *Service {
	s.intel = c
	return s
}

// WithClassifier overrides the default classifier.
func (s *Service) WithClassifier(c *Classifier) *Service {
	s.classifier = c
	return s
}

// Scan evaluates input with the detector for typ and classifies the
// result. Empty or whitespace-only input is rejected before evaluation.
func (s *Service) Scan(ctx context.Context, typ scans.DetectorType, input string) (*Assessment, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	d, ok := For(typ)
	if !ok {
		return nil, scans.ErrUnknownDetector
	}

	ctx, span := traces.StartSpan(ctx, "detect.scan",
		traces.Detector(string(typ)),
		traces.InputLength(utf8.RuneCountInString(input)),
	)
	defer span.End()

	score, reasons := d.Evaluate(input)

	a := &Assessment{Reasons: reasons}
	if typ == scans.DetectorPhishing && s.intel != nil {
		score = s.enrich(ctx, strings.TrimSpace(input), score, a)
	}

	a.Score, a.Verdict = s.classifier.Classify(score)
	span.SetAttributes(traces.Verdict(string(a.Verdict)))
	return a, nil
}

// enrich consults the intelligence collaborator and folds its result
// into the score. Lookup failures contribute zero weight and a reason.
func (s *Service) enrich(ctx context.Context, url string, score int, a *Assessment) int {
	res, err := s.intel.Check(ctx, url)
	if err != nil {
		logging.L(ctx).Warn("threat intelligence lookup failed", "error", err)
		a.Reasons = append(a.Reasons, "Threat intelligence lookup unavailable")
		return score
	}
	a.Intel = res
	if !res.Flagged {
		return score
	}
	if len(a.Reasons) == 1 && a.Reasons[0] == NoFindings {
		a.Reasons = a.Reasons[:0]
	}
	a.Reasons = append(a.Reasons, "Flagged by threat intelligence: "+strings.Join(res.Threats, ", "))
	return score + IntelFlagWeight
}

// Record appends one scan outcome to the ledger.
func (s *Service) Record(ctx context.Context, typ scans.DetectorType, label string, result scans.Verdict) (*scans.Record, error) {
	ctx, span := traces.StartSpan(ctx, "detect.record",
		traces.Detector(string(typ)),
		traces.Verdict(string(result)),
	)
	defer span.End()

	rec, err := s.ledger.Record(ctx, typ, label, result)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(traces.ScanID(rec.ID))
	return rec, nil
}

// Ledger exposes the underlying ledger for read paths.
func (s *Service) Ledger() *scans.Ledger {
	return s.ledger
}
