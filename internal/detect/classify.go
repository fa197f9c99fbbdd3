package detect

import "github.com/trustlens/trustlens/internal/scans"

// Score bounds and default tier thresholds. Thresholds are inclusive on
// the lower bound of each tier.
const (
	MinScore = 0
	MaxScore = 10

	DefaultSuspiciousThreshold = 3
	DefaultDangerousThreshold  = 6
)

// Classifier maps a raw score to a clamped score and verdict tier.
type Classifier struct {
	suspicious int
	dangerous  int
}

// NewClassifier creates a classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		suspicious: DefaultSuspiciousThreshold,
		dangerous:  DefaultDangerousThreshold,
	}
}

// WithThresholds overrides the tier thresholds.
func (c *Classifier) WithThresholds(suspicious, dangerous int) *Classifier {
	c.suspicious = suspicious
	c.dangerous = dangerous
	return c
}

// Classify clamps raw into [MinScore, MaxScore] and assigns a tier.
// Pure function; any integer input is valid.
func (c *Classifier) Classify(raw int) (int, scans.Verdict) {
	score := raw
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	switch {
	case score >= c.dangerous:
		return score, scans.VerdictDangerous
	case score >= c.suspicious:
		return score, scans.VerdictSuspicious
	default:
		return score, scans.VerdictSafe
	}
}

// Classify applies the default thresholds.
func Classify(raw int) (int, scans.Verdict) {
	return defaultClassifier.Classify(raw)
}

var defaultClassifier = NewClassifier()
