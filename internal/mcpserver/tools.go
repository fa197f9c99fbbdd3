package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the TrustLens MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolScanText = mcp.NewTool("scan_text",
	mcp.WithDescription(
		"Scan an SMS or text message for scam and fraud indicators. "+
			"Returns a risk score from 0 to 10, a verdict (safe/suspicious/dangerous), "+
			"and the specific patterns that were flagged."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The message text to scan")),
	mcp.WithBoolean("record",
		mcp.Description("Also append this scan to the history ledger (default false)")),
)

var ToolScanAppLink = mcp.NewTool("scan_app_link",
	mcp.WithDescription(
		"Scan a loan app name or APK download link for predatory-lending and fake-app "+
			"indicators. Checks against known fake loan app patterns, suspicious hosting "+
			"(shorteners, messaging apps, file lockers), and bait wording like guaranteed "+
			"approval or no-KYC claims."),
	mcp.WithString("input",
		mcp.Required(),
		mcp.Description("App name or download URL to scan (e.g. 'InstantCash Pro' or 'http://bit.ly/loan.apk')")),
	mcp.WithBoolean("record",
		mcp.Description("Also append this scan to the history ledger (default false)")),
)

var ToolCheckURL = mcp.NewTool("check_url",
	mcp.WithDescription(
		"Check a URL for phishing indicators. Runs local pattern checks and, when the "+
			"server has threat intelligence configured, a Safe Browsing lookup. "+
			"Returns a verdict and the reasons behind it."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("The URL to check (e.g. 'https://example.com/login')")),
	mcp.WithBoolean("record",
		mcp.Description("Also append this scan to the history ledger (default false)")),
)

var ToolGetDashboardSummary = mcp.NewTool("get_dashboard_summary",
	mcp.WithDescription(
		"Get the TrustLens dashboard summary: total scans, threats found, the overall "+
			"safety score (0-100), and daily scan activity for the past week."),
)

var ToolListRecentScans = mcp.NewTool("list_recent_scans",
	mcp.WithDescription(
		"List recent scans from the history ledger, newest first. "+
			"Each entry shows what was scanned, the detector used, and the verdict."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of scans to return (default 10)")),
)
