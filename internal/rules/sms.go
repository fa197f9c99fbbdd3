package rules

// SMSRules scores SMS/scam text.
var SMSRules = Table{
	{Pattern(`your.*account.*blocked|account.*suspend`), 3, "Account suspension threat"},
	{Pattern(`click.*link|click.*now|tap.*here|visit.*now`), 2, "Urgent click-bait language"},
	{Pattern(`otp|one.time.password`), 3, "OTP phishing attempt"},
	{Pattern(`kyc.*expir|update.*kyc|complete.*kyc`), 3, "Fake KYC update request"},
	{Pattern(`won|winner|prize|reward|lottery|jackpot`), 3, "Prize/lottery scam language"},
	{Pattern(`₹\s*\d{4,}|rs\.?\s*\d{4,}|lakh|crore`), 2, "Large monetary amount mentioned"},
	{Pattern(`bit\.ly|tinyurl|shorturl|goo\.gl`), 2, "Shortened URL (hides real destination)"},
	{Pattern(`urgent|immediate|within.*hour|expire.*today`), 2, "Creates false urgency"},
	{Pattern(`pan.*card|aadhar|aadhaar`), 2, "Requests government ID details"},
	{Pattern(`credit.*card.*number|cvv|expiry.*date`), 3, "Requests financial card details"},
	{Pattern(`bank.*transfer|upi.*id|send.*money`), 2, "Asks for money transfer"},
	{Pattern(`dear.*customer|valued.*customer`), 1, "Generic customer greeting (impersonation)"},
	{Pattern(`whatsapp.*support|call.*helpline`), 2, "Fake support contact"},
	{Pattern(`free.*recharge|cashback.*offer`), 2, "Too-good-to-be-true offer"},
	{Pattern(`deliver.*fail|package.*held|customs`), 2, "Fake delivery notification"},
	{Pattern(`verify.*identity|confirm.*detail`), 2, "Identity verification phishing"},
}
