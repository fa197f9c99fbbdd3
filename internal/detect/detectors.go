package detect

import (
	"github.com/trustlens/trustlens/internal/rules"
	"github.com/trustlens/trustlens/internal/scans"
)

// detectors holds the three rule-based evaluators. image, voice and
// malware are valid record types but have no evaluator here.
var detectors = map[scans.DetectorType]Detector{
	scans.DetectorSMS: {
		Type:  scans.DetectorSMS,
		Table: rules.SMSRules,
		Post:  []Heuristic{URLCount, ExcessiveCaps, PhoneNumber},
	},
	scans.DetectorLoanAPK: {
		Type:  scans.DetectorLoanAPK,
		Pre:   []Heuristic{KnownFakeApp},
		Table: rules.LoanRules,
		Post:  []Heuristic{ShortFinancialName, PercentClaim, NoKYC, Guarantee},
	},
	scans.DetectorPhishing: {
		Type:  scans.DetectorPhishing,
		Pre:   []Heuristic{KnownFakeApp},
		Table: rules.PhishingRules,
		Post:  []Heuristic{ShortFinancialName, PercentClaim, NoKYC, Guarantee},
	},
}

// For returns the evaluator for a detector type, if one exists.
func For(t scans.DetectorType) (Detector, bool) {
	d, ok := detectors[t]
	return d, ok
}
