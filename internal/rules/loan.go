package rules

// Urgency and currency signals fire on app names and bare URLs alike, so
// both the loan and phishing tables carry them.
var (
	urgencyRule  = Rule{Pattern(`instant|fast|quick|flash|easy`), 2, "Uses urgency language"}
	currencyRule = Rule{Pattern(`rupee|₹|paisa`), 1, "Currency reference in name"}
)

// AppNameRules scores a loan app's display name.
var AppNameRules = Table{
	{Pattern(`loan`), 1, `Contains "loan" keyword`},
	{Pattern(`cash`), 1, `Contains "cash" keyword`},
	urgencyRule,
	currencyRule,
}

// LinkRules scores download links and URLs. The Play Store rule is the
// only negative weight in the tables; an official listing lowers risk.
var LinkRules = Table{
	{Pattern(`\.apk$`), 3, "Direct APK download (not from Play Store)"},
	{Pattern(`bit\.ly|tinyurl|shorturl`), 3, "Uses URL shortener"},
	{Pattern(`t\.me|telegram|whatsapp`), 2, "Distributed via messaging apps"},
	{Pattern(`drive\.google\.com.*\.apk`), 3, "APK hosted on Google Drive"},
	{Pattern(`mediafire|mega\.nz|dropbox.*\.apk`), 3, "APK on file-sharing site"},
	{Pattern(`play\.google\.com`), -2, "Available on Google Play Store"},
}

// LoanRules is the full loan-app table: name rules first, then link
// rules, preserving declaration order for reason output.
var LoanRules = append(append(Table{}, AppNameRules...), LinkRules...)

// PhishingRules covers bare URLs and link text: urgency and currency cues
// first, then the link rules.
var PhishingRules = append(Table{urgencyRule, currencyRule}, LinkRules...)

// KnownFakeApps lists name fragments of reported predatory loan apps.
// Matched case-insensitively as substrings before any table runs.
var KnownFakeApps = []string{
	"instant cash", "fast loan", "rupee click", "cash bus", "loan zone",
	"okash", "opesa", "kashway", "happy loan", "easy cash",
	"money click", "snap it loan", "go cash", "flash rupee", "koko loan",
	"loan spot", "credit bus", "cash papa", "loan cube", "cash elephant",
	"money vela", "dhani loan", "creditmantri fake", "paisabazaar fake", "loan trick",
	"quick rupee", "fast cash", "instant rupee", "gold loan app", "mini loan",
}
