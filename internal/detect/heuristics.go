package detect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/trustlens/trustlens/internal/rules"
)

var (
	urlRe       = regexp.MustCompile(`https?://\S+`)
	phoneRe     = regexp.MustCompile(`\+?\d{10,}`)
	financialRe = regexp.MustCompile(`(?i)loan|cash`)
	percentRe   = regexp.MustCompile(`\d{2,}%`)
	noKYCRe     = regexp.MustCompile(`(?i)no.*kyc|without.*kyc|kyc.*not.*required`)
	guaranteeRe = regexp.MustCompile(`(?i)guarantee|100%|assured`)
)

// URLCount reports embedded URLs as a single aggregate signal. Weight is 1
// regardless of how many URLs appear; the count is surfaced in the reason.
func URLCount(input string) (int, string) {
	n := len(urlRe.FindAllString(input, -1))
	if n == 0 {
		return 0, ""
	}
	return 1, fmt.Sprintf("Contains %d URL(s)", n)
}

// ExcessiveCaps triggers when two or more words longer than three
// characters are fully upper-case.
func ExcessiveCaps(input string) (int, string) {
	count := 0
	for _, w := range strings.Fields(input) {
		if utf8.RuneCountInString(w) > 3 && w == strings.ToUpper(w) {
			count++
		}
	}
	if count < 2 {
		return 0, ""
	}
	return 1, "Excessive use of CAPITAL LETTERS"
}

// PhoneNumber triggers on a 10+ digit sequence resembling a callback number.
func PhoneNumber(input string) (int, string) {
	if !phoneRe.MatchString(input) {
		return 0, ""
	}
	return 1, "Contains phone number (potential callback scam)"
}

// ShortFinancialName triggers on very short app names built around a
// financial keyword, e.g. "Loan" or "Cash4".
func ShortFinancialName(input string) (int, string) {
	trimmed := strings.TrimSpace(input)
	if utf8.RuneCountInString(trimmed) >= 5 || !financialRe.MatchString(trimmed) {
		return 0, ""
	}
	return 1, "Very short app name with financial keyword"
}

// PercentClaim triggers on interest/discount percentage claims like "90%".
func PercentClaim(input string) (int, string) {
	if !percentRe.MatchString(input) {
		return 0, ""
	}
	return 2, "Contains percentage claims in name/link"
}

// NoKYC triggers on claims that no identity verification is required.
func NoKYC(input string) (int, string) {
	if !noKYCRe.MatchString(input) {
		return 0, ""
	}
	return 3, "Claims no KYC required (regulatory red flag)"
}

// Guarantee triggers on assured-outcome language.
func Guarantee(input string) (int, string) {
	if !guaranteeRe.MatchString(input) {
		return 0, ""
	}
	return 2, "Uses guarantee language (common in scams)"
}

// KnownFakeApp matches the input against the reported fake loan app name
// fragments. First match wins; at most one signal fires per input.
func KnownFakeApp(input string) (int, string) {
	lower := strings.ToLower(input)
	for _, frag := range rules.KnownFakeApps {
		if strings.Contains(lower, frag) {
			return 5, fmt.Sprintf("Matches known fake loan app pattern: %q", frag)
		}
	}
	return 0, ""
}
