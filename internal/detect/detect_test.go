package detect

import (
	"reflect"
	"testing"

	"github.com/trustlens/trustlens/internal/scans"
)

func TestEvaluateDeterministic(t *testing.T) {
	d, ok := For(scans.DetectorSMS)
	if !ok {
		t.Fatal("sms detector missing")
	}
	input := "URGENT: your account suspended, click http://bit.ly/x now"
	s1, r1 := d.Evaluate(input)
	s2, r2 := d.Evaluate(input)
	if s1 != s2 {
		t.Errorf("scores differ: %d vs %d", s1, s2)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("reason order differs: %v vs %v", r1, r2)
	}
}

func TestEvaluateSentinel(t *testing.T) {
	d, _ := For(scans.DetectorSMS)
	score, reasons := d.Evaluate("Hi, are we still meeting for lunch at 1pm?")
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(reasons) != 1 || reasons[0] != NoFindings {
		t.Errorf("reasons = %v, want sentinel only", reasons)
	}
}

func TestScamSMSScenario(t *testing.T) {
	d, _ := For(scans.DetectorSMS)
	score, reasons := d.Evaluate("Your account is suspended, click http://bit.ly/x now, OTP required")

	want := []string{
		"Account suspension threat",
		"Urgent click-bait language",
		"OTP phishing attempt",
		"Shortened URL (hides real destination)",
	}
	for _, w := range want {
		if !containsReason(reasons, w) {
			t.Errorf("missing reason %q in %v", w, reasons)
		}
	}

	clamped, verdict := Classify(score)
	if clamped < 6 {
		t.Errorf("clamped score = %d, want >= 6", clamped)
	}
	if verdict != scans.VerdictDangerous {
		t.Errorf("verdict = %s, want dangerous", verdict)
	}
}

func TestFakeLoanAppScenario(t *testing.T) {
	d, _ := For(scans.DetectorLoanAPK)
	score, reasons := d.Evaluate("EasyCash Loan - instant cash, no KYC required, 100% guaranteed")

	want := []string{
		`Matches known fake loan app pattern: "instant cash"`,
		"Uses urgency language",
		"Claims no KYC required (regulatory red flag)",
		"Uses guarantee language (common in scams)",
	}
	for _, w := range want {
		if !containsReason(reasons, w) {
			t.Errorf("missing reason %q in %v", w, reasons)
		}
	}

	clamped, verdict := Classify(score)
	if clamped != 10 {
		t.Errorf("clamped score = %d, want 10", clamped)
	}
	if verdict != scans.VerdictDangerous {
		t.Errorf("verdict = %s, want dangerous", verdict)
	}
}

func TestPhishingUrgencyAndCurrency(t *testing.T) {
	d, _ := For(scans.DetectorPhishing)
	score, reasons := d.Evaluate("quick paisa offer at example.com")

	want := []string{
		"Uses urgency language",
		"Currency reference in name",
	}
	for _, w := range want {
		if !containsReason(reasons, w) {
			t.Errorf("missing reason %q in %v", w, reasons)
		}
	}
	if _, verdict := Classify(score); verdict != scans.VerdictSuspicious {
		t.Errorf("verdict = %s, want suspicious", verdict)
	}
}

func TestPhishingShortFinancialName(t *testing.T) {
	d, _ := For(scans.DetectorPhishing)
	score, reasons := d.Evaluate("cash")
	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
	if !containsReason(reasons, "Very short app name with financial keyword") {
		t.Errorf("missing short-name reason in %v", reasons)
	}
}

func TestPlayStoreLinkMitigates(t *testing.T) {
	d, _ := For(scans.DetectorPhishing)
	withStore, _ := d.Evaluate("https://play.google.com/store/apps/details?id=com.bank")
	if withStore >= 0 {
		t.Errorf("official store link score = %d, want negative", withStore)
	}
}

func TestKnownFakeFirstMatchOnly(t *testing.T) {
	// "fast loan" and "easy cash" both appear; only the first listed
	// fragment may fire.
	score, reason := KnownFakeApp("fast loan easy cash app")
	if score != 5 {
		t.Fatalf("weight = %d, want 5", score)
	}
	if reason != `Matches known fake loan app pattern: "fast loan"` {
		t.Errorf("reason = %q", reason)
	}
}

func TestClassifyClamping(t *testing.T) {
	lowScore, lowTier := Classify(-5)
	zeroScore, zeroTier := Classify(0)
	if lowScore != zeroScore || lowTier != zeroTier {
		t.Errorf("Classify(-5) = (%d, %s), Classify(0) = (%d, %s)", lowScore, lowTier, zeroScore, zeroTier)
	}
	highScore, highTier := Classify(15)
	capScore, capTier := Classify(10)
	if highScore != capScore || highTier != capTier {
		t.Errorf("Classify(15) = (%d, %s), Classify(10) = (%d, %s)", highScore, highTier, capScore, capTier)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := -1
	for raw := -3; raw <= 13; raw++ {
		_, tier := Classify(raw)
		sev := tier.Severity()
		if sev < prev {
			t.Fatalf("severity decreased at raw score %d", raw)
		}
		prev = sev
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		raw  int
		want scans.Verdict
	}{
		{0, scans.VerdictSafe},
		{2, scans.VerdictSafe},
		{3, scans.VerdictSuspicious},
		{5, scans.VerdictSuspicious},
		{6, scans.VerdictDangerous},
		{10, scans.VerdictDangerous},
	}
	for _, c := range cases {
		if _, got := Classify(c.raw); got != c.want {
			t.Errorf("Classify(%d) tier = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	c := NewClassifier().WithThresholds(2, 4)
	if _, tier := c.Classify(2); tier != scans.VerdictSuspicious {
		t.Errorf("tier = %s, want suspicious", tier)
	}
	if _, tier := c.Classify(4); tier != scans.VerdictDangerous {
		t.Errorf("tier = %s, want dangerous", tier)
	}
}

func containsReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if r == want {
			return true
		}
	}
	return false
}
