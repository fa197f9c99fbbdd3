// Package scans defines the scan record model and the capped scan history
// ledger that backs the dashboard.
//
// Flow:
//  1. A detector evaluates user input and produces a verdict
//  2. The caller records the outcome in the ledger
//  3. The ledger keeps the 100 most recent records, newest first
//  4. Dashboard aggregation reads consistent snapshots
package scans

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrUnknownDetector = errors.New("unknown detector type")
	ErrUnknownVerdict  = errors.New("unknown verdict")
)

// DetectorType identifies which detector produced a scan record.
type DetectorType string

const (
	DetectorImage    DetectorType = "image"
	DetectorVoice    DetectorType = "voice"
	DetectorPhishing DetectorType = "phishing"
	DetectorMalware  DetectorType = "malware"
	DetectorLoanAPK  DetectorType = "loan_apk"
	DetectorSMS      DetectorType = "sms"
)

// Valid reports whether t is one of the known detector types.
func (t DetectorType) Valid() bool {
	switch t {
	case DetectorImage, DetectorVoice, DetectorPhishing, DetectorMalware, DetectorLoanAPK, DetectorSMS:
		return true
	}
	return false
}

// Verdict is the three-tier outcome of a scan, ordered by severity.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictDangerous  Verdict = "dangerous"
)

// Valid reports whether v is one of the known verdict tiers.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictSafe, VerdictSuspicious, VerdictDangerous:
		return true
	}
	return false
}

// Severity returns the verdict's rank in the safe < suspicious < dangerous
// ordering. Unknown verdicts rank below safe.
func (v Verdict) Severity() int {
	switch v {
	case VerdictSafe:
		return 0
	case VerdictSuspicious:
		return 1
	case VerdictDangerous:
		return 2
	}
	return -1
}

// MaxLabelLen is the maximum stored length of a record label. Longer input
// excerpts are truncated at insertion time.
const MaxLabelLen = 50

// Record is one immutable logged scan outcome. ID and Timestamp are assigned
// by the ledger at insertion; records are never updated afterwards.
type Record struct {
	ID        string
	Type      DetectorType
	Label     string
	Result    Verdict
	Timestamp time.Time
}

// recordJSON is the wire/storage layout: timestamps are epoch milliseconds,
// matching the persisted history format.
type recordJSON struct {
	ID        string       `json:"id"`
	Type      DetectorType `json:"type"`
	Label     string       `json:"label"`
	Result    Verdict      `json:"result"`
	Timestamp int64        `json:"timestamp"`
}

// MarshalJSON encodes the record with an epoch-millisecond timestamp.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:        r.ID,
		Type:      r.Type,
		Label:     r.Label,
		Result:    r.Result,
		Timestamp: r.Timestamp.UnixMilli(),
	})
}

// UnmarshalJSON decodes the epoch-millisecond storage layout.
func (r *Record) UnmarshalJSON(data []byte) error {
	var rj recordJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	r.ID = rj.ID
	r.Type = rj.Type
	r.Label = rj.Label
	r.Result = rj.Result
	r.Timestamp = time.UnixMilli(rj.Timestamp)
	return nil
}

// Store persists scan records. Implementations must return records newest
// first from Load and List.
type Store interface {
	// Load returns the persisted records, newest first, capped at the
	// ledger capacity. A missing or unreadable backing store loads as
	// empty rather than failing.
	Load(ctx context.Context) ([]*Record, error)
	// Insert persists a single new record.
	Insert(ctx context.Context, r *Record) error
	// Prune discards all but the newest keep records.
	Prune(ctx context.Context, keep int) error
}
