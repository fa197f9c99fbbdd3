package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trustlens/trustlens/internal/detect"
	"github.com/trustlens/trustlens/internal/logging"
	"github.com/trustlens/trustlens/internal/metrics"
	"github.com/trustlens/trustlens/internal/scans"
	"github.com/trustlens/trustlens/internal/stats"
	"github.com/trustlens/trustlens/internal/validation"
)

// Version info (set via ldflags)
var (
	Version = "dev"
	Commit  = "unknown"
)

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	healthy, statuses := s.checks.CheckAll(ctx)

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":  state,
		"version": Version,
		"checks":  statuses,
		"ledger":  gin.H{"size": s.ledger.Len(), "capacity": scans.Capacity},
	})
}

func (s *Server) livenessHandler(c *gin.Context) {
	if !s.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) infoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "TrustLens API",
		"version": Version,
		"commit":  Commit,
		"detectors": []scans.DetectorType{
			scans.DetectorSMS,
			scans.DetectorLoanAPK,
			scans.DetectorPhishing,
		},
		"endpoints": gin.H{
			"scan":       "POST /v1/scan",
			"scans":      "GET|POST /v1/scans",
			"summary":    "GET /v1/dashboard/summary",
			"timeseries": "GET /v1/dashboard/timeseries",
			"websocket":  "GET /ws",
			"health":     "GET /health",
			"metrics":    "GET /metrics",
		},
	})
}

// -----------------------------------------------------------------------------
// Scanning
// -----------------------------------------------------------------------------

type scanRequest struct {
	Type  string `json:"type" binding:"required"`
	Input string `json:"input"`
	Label string `json:"label"`
}

// scanHandler runs a detector over the supplied input and returns the
// assessment. With ?record=true the scan is also appended to the history
// ledger and broadcast to WebSocket subscribers.
func (s *Server) scanHandler(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	if verrs := validation.Validate(
		validation.Required("type", req.Type),
		validation.MaxLength("input", req.Input, validation.MaxInputLength),
		validation.MaxLength("label", req.Label, scans.MaxLabelLen),
	); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"details": verrs,
		})
		return
	}

	ctx := c.Request.Context()
	typ := scans.DetectorType(req.Type)
	input := validation.SanitizeString(req.Input, validation.MaxInputLength)

	assessment, err := s.service.Scan(ctx, typ, input)
	if err != nil {
		switch {
		case errors.Is(err, detect.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "empty_input",
				"message": "Input must not be empty",
			})
		case errors.Is(err, scans.ErrUnknownDetector):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "unknown_detector",
				"message": "No detector registered for type: " + req.Type,
			})
		default:
			logging.L(ctx).Error("scan failed", "error", err, "type", req.Type)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "scan_failed",
				"message": "Failed to run scan",
			})
		}
		return
	}

	metrics.RecordScan(string(typ), string(assessment.Verdict))

	resp := gin.H{
		"type":     typ,
		"score":    assessment.Score,
		"result":   assessment.Verdict,
		"reasons":  assessment.Reasons,
		"recorded": false,
	}
	if assessment.Intel != nil {
		resp["intel"] = assessment.Intel
	}

	if c.Query("record") == "true" {
		label := req.Label
		if label == "" {
			label = input
		}
		rec, err := s.service.Record(ctx, typ, label, assessment.Verdict)
		if err != nil {
			logging.L(ctx).Error("failed to record scan", "error", err)
		} else {
			metrics.ScansRecordedTotal.WithLabelValues(string(typ)).Inc()
			metrics.LedgerSize.Set(float64(s.ledger.Len()))
			s.realtimeHub.BroadcastScan(rec)
			resp["recorded"] = true
			resp["scan"] = rec
		}
	}

	c.JSON(http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// Scan history ledger
// -----------------------------------------------------------------------------

type recordScanRequest struct {
	Type   string `json:"type" binding:"required"`
	Label  string `json:"label" binding:"required"`
	Result string `json:"result" binding:"required"`
}

// recordScanHandler appends a pre-classified scan to the history ledger.
// Clients that run detection on-device use this to sync their history.
func (s *Server) recordScanHandler(c *gin.Context) {
	var req recordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	if verrs := validation.Validate(
		validation.Required("type", req.Type),
		validation.ValidDetectorType("type", req.Type),
		validation.Required("label", req.Label),
		validation.Required("result", req.Result),
		validation.ValidVerdict("result", req.Result),
	); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"details": verrs,
		})
		return
	}

	ctx := c.Request.Context()
	label := validation.SanitizeString(req.Label, scans.MaxLabelLen)

	rec, err := s.ledger.Record(ctx, scans.DetectorType(req.Type), label, scans.Verdict(req.Result))
	if err != nil {
		logging.L(ctx).Error("failed to record scan", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "record_failed",
			"message": "Failed to record scan",
		})
		return
	}

	metrics.ScansRecordedTotal.WithLabelValues(req.Type).Inc()
	metrics.LedgerSize.Set(float64(s.ledger.Len()))
	s.realtimeHub.BroadcastScan(rec)

	c.JSON(http.StatusCreated, gin.H{"scan": rec})
}

// listScansHandler returns recent scans, newest first
func (s *Server) listScansHandler(c *gin.Context) {
	limit := scans.Capacity
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	records := s.ledger.List(limit)
	c.JSON(http.StatusOK, gin.H{
		"scans": records,
		"count": len(records),
		"total": s.ledger.Len(),
	})
}

// -----------------------------------------------------------------------------
// Dashboard aggregates
// -----------------------------------------------------------------------------

func (s *Server) summaryHandler(c *gin.Context) {
	records := s.ledger.List(0)
	summary := stats.Summarize(records)

	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"by_type":     stats.ByType(records),
		"by_verdict":  stats.ByVerdict(records),
		"time_series": stats.TimeSeries(records, stats.DefaultWindowDays, time.Now()),
	})
}

func (s *Server) timeSeriesHandler(c *gin.Context) {
	days := stats.DefaultWindowDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 90 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_days",
				"message": "days must be between 1 and 90",
			})
			return
		}
		days = n
	}

	series := stats.TimeSeries(s.ledger.List(0), days, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"days":   days,
		"series": series,
	})
}
