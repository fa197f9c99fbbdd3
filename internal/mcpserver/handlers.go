package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *TrustLensClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *TrustLensClient) *Handlers {
	return &Handlers{client: client}
}

// HandleScanText scans a text message with the SMS detector.
func (h *Handlers) HandleScanText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	return h.scan(ctx, "sms", text, req.GetBool("record", false))
}

// HandleScanAppLink scans a loan app name or download link.
func (h *Handlers) HandleScanAppLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := req.GetString("input", "")
	if input == "" {
		return mcp.NewToolResultError("input is required"), nil
	}
	return h.scan(ctx, "loan_apk", input, req.GetBool("record", false))
}

// HandleCheckURL checks a URL with the phishing detector.
func (h *Handlers) HandleCheckURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("url", "")
	if target == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	return h.scan(ctx, "phishing", target, req.GetBool("record", false))
}

func (h *Handlers) scan(ctx context.Context, detector, input string, record bool) (*mcp.CallToolResult, error) {
	raw, err := h.client.Scan(ctx, detector, input, "", record)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
	}

	text, err := formatAssessment(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse scan result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleGetDashboardSummary returns the dashboard headline figures.
func (h *Handlers) HandleGetDashboardSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.GetSummary(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get summary: %v", err)), nil
	}

	text, err := formatSummary(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse summary: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleListRecentScans lists recent scan history.
func (h *Handlers) HandleListRecentScans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	raw, err := h.client.ListScans(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list scans: %v", err)), nil
	}

	text, err := formatScanList(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse scans: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// --- Formatting helpers ---

func formatAssessment(raw json.RawMessage) (string, error) {
	var resp struct {
		Type     string   `json:"type"`
		Score    int      `json:"score"`
		Result   string   `json:"result"`
		Reasons  []string `json:"reasons"`
		Recorded bool     `json:"recorded"`
		Intel    *struct {
			Flagged bool     `json:"flagged"`
			Threats []string `json:"threats"`
		} `json:"intel"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Verdict: %s (score %d/10)\n", strings.ToUpper(resp.Result), resp.Score)
	sb.WriteString("\nFindings:\n")
	for _, r := range resp.Reasons {
		fmt.Fprintf(&sb, "  - %s\n", r)
	}
	if resp.Intel != nil && resp.Intel.Flagged {
		fmt.Fprintf(&sb, "\nThreat intelligence: flagged (%s)\n", strings.Join(resp.Intel.Threats, ", "))
	}
	if resp.Recorded {
		sb.WriteString("\nSaved to scan history.\n")
	}
	return sb.String(), nil
}

func formatSummary(raw json.RawMessage) (string, error) {
	var resp struct {
		Summary struct {
			Total       int `json:"total"`
			Threats     int `json:"threats"`
			Dangerous   int `json:"dangerous"`
			SafetyScore int `json:"safetyScore"`
		} `json:"summary"`
		ByVerdict  map[string]int `json:"by_verdict"`
		TimeSeries []struct {
			Label   string `json:"label"`
			Scans   int    `json:"scans"`
			Threats int    `json:"threats"`
		} `json:"time_series"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("TrustLens Dashboard:\n")
	fmt.Fprintf(&sb, "  Safety score: %d/100\n", resp.Summary.SafetyScore)
	fmt.Fprintf(&sb, "  Total scans:  %d\n", resp.Summary.Total)
	fmt.Fprintf(&sb, "  Threats:      %d (%d dangerous)\n", resp.Summary.Threats, resp.Summary.Dangerous)

	if len(resp.TimeSeries) > 0 {
		sb.WriteString("\nLast 7 days:\n")
		for _, d := range resp.TimeSeries {
			fmt.Fprintf(&sb, "  %s: %d scan(s), %d threat(s)\n", d.Label, d.Scans, d.Threats)
		}
	}
	return sb.String(), nil
}

func formatScanList(raw json.RawMessage) (string, error) {
	var resp struct {
		Scans []struct {
			ID        string `json:"id"`
			Type      string `json:"type"`
			Label     string `json:"label"`
			Result    string `json:"result"`
			Timestamp int64  `json:"timestamp"`
		} `json:"scans"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}

	if len(resp.Scans) == 0 {
		return "No scans recorded yet.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing %d of %d scan(s), newest first:\n\n", len(resp.Scans), resp.Total)
	for i, s := range resp.Scans {
		when := time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04")
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, strings.ToUpper(s.Result), s.Label)
		fmt.Fprintf(&sb, "   Detector: %s | %s\n", s.Type, when)
		if i < len(resp.Scans)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
