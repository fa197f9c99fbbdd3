// Package stats derives dashboard figures from a ledger snapshot.
//
// Everything here is a pure reduction over at most 100 records, recomputed
// per call. No incremental state is maintained.
package stats

import (
	"math"
	"time"

	"github.com/trustlens/trustlens/internal/scans"
)

// DefaultWindowDays is the dashboard's default time series window.
const DefaultWindowDays = 7

// Summary is the point-in-time dashboard headline.
type Summary struct {
	Total       int `json:"total"`
	Threats     int `json:"threats"`
	Dangerous   int `json:"dangerous"`
	SafetyScore int `json:"safetyScore"`
}

// DayBucket is one calendar day of scan activity.
type DayBucket struct {
	Day     string `json:"day"`
	Label   string `json:"label"`
	Scans   int    `json:"scans"`
	Threats int    `json:"threats"`
}

// Summarize computes headline counts over a snapshot. An empty history
// reports a safety score of 100.
func Summarize(records []*scans.Record) Summary {
	s := Summary{Total: len(records)}
	safe := 0
	for _, r := range records {
		switch r.Result {
		case scans.VerdictSafe:
			safe++
		case scans.VerdictDangerous:
			s.Dangerous++
			s.Threats++
		default:
			s.Threats++
		}
	}
	if s.Total == 0 {
		s.SafetyScore = 100
		return s
	}
	s.SafetyScore = int(math.Round(100 * float64(safe) / float64(s.Total)))
	return s
}

// TimeSeries buckets records into the most recent days calendar days of
// now's location, oldest to newest, today included. Days with no records
// report zero rather than being omitted.
func TimeSeries(records []*scans.Record, days int, now time.Time) []DayBucket {
	if days < 1 {
		days = DefaultWindowDays
	}

	buckets := make([]DayBucket, 0, days)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.Add(24 * time.Hour)

		b := DayBucket{
			Day:   start.Format("2006-01-02"),
			Label: start.Format("Mon"),
		}
		for _, r := range records {
			ts := r.Timestamp.In(now.Location())
			if ts.Before(start) || !ts.Before(end) {
				continue
			}
			b.Scans++
			if r.Result != scans.VerdictSafe {
				b.Threats++
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// ByType groups a snapshot by detector type.
func ByType(records []*scans.Record) map[scans.DetectorType]int {
	out := make(map[scans.DetectorType]int)
	for _, r := range records {
		out[r.Type]++
	}
	return out
}

// ByVerdict groups a snapshot by verdict tier.
func ByVerdict(records []*scans.Record) map[scans.Verdict]int {
	out := make(map[scans.Verdict]int)
	for _, r := range records {
		out[r.Result]++
	}
	return out
}
