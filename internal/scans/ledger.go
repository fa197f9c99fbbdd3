package scans

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/trustlens/trustlens/internal/idgen"
)

// Capacity is the maximum number of records the ledger retains. Inserting
// beyond capacity evicts the oldest records.
const Capacity = 100

// Ledger is the capped, newest-first scan history. All mutations go through
// Record under a single lock, so cap eviction and ordering are never
// observable in a half-applied state. The in-memory view is authoritative;
// the store is persistence only, and store failures never lose the in-memory
// write.
type Ledger struct {
	mu      sync.RWMutex
	store   Store
	records []*Record
}

// NewLedger creates a ledger backed by store, loading any persisted history.
// A store that fails to load yields an empty ledger, never an error.
func NewLedger(ctx context.Context, store Store) *Ledger {
	l := &Ledger{store: store}
	if store != nil {
		if loaded, err := store.Load(ctx); err == nil {
			if len(loaded) > Capacity {
				loaded = loaded[:Capacity]
			}
			l.records = loaded
		}
	}
	return l
}

// Record appends a new scan outcome. The ledger assigns the ID and
// timestamp; the label is truncated to MaxLabelLen characters. The returned
// error reports persistence problems only — the record is always committed
// in memory first.
func (l *Ledger) Record(ctx context.Context, typ DetectorType, label string, result Verdict) (*Record, error) {
	if !typ.Valid() {
		return nil, ErrUnknownDetector
	}
	if !result.Valid() {
		return nil, ErrUnknownVerdict
	}

	r := &Record{
		ID:        idgen.WithPrefix("scan_"),
		Type:      typ,
		Label:     truncateLabel(label),
		Result:    result,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	l.records = append([]*Record{r}, l.records...)
	if len(l.records) > Capacity {
		l.records = l.records[:Capacity]
	}
	l.mu.Unlock()

	if l.store == nil {
		return r, nil
	}
	if err := l.store.Insert(ctx, r); err != nil {
		return r, fmt.Errorf("persist scan record: %w", err)
	}
	if err := l.store.Prune(ctx, Capacity); err != nil {
		return r, fmt.Errorf("prune scan store: %w", err)
	}
	return r, nil
}

// List returns a snapshot of up to limit records, newest first. limit <= 0
// returns the full history.
func (l *Ledger) List(limit int) []*Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Record, n)
	for i := 0; i < n; i++ {
		cp := *l.records[i]
		out[i] = &cp
	}
	return out
}

// Len returns the current number of records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

func truncateLabel(label string) string {
	label = strings.TrimSpace(label)
	runes := []rune(label)
	if len(runes) > MaxLabelLen {
		return string(runes[:MaxLabelLen])
	}
	return label
}
