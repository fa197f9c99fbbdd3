package scans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLedgerCapEvictsOldest(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())

	for i := 0; i < 150; i++ {
		if _, err := l.Record(context.Background(), DetectorSMS, fmt.Sprintf("scan %d", i), VerdictSafe); err != nil {
			t.Fatal(err)
		}
	}

	records := l.List(0)
	if len(records) != Capacity {
		t.Fatalf("ledger length = %d, want %d", len(records), Capacity)
	}
	// Newest first: the head is insert 149, the tail insert 50.
	if records[0].Label != "scan 149" {
		t.Errorf("head label = %q, want scan 149", records[0].Label)
	}
	if records[len(records)-1].Label != "scan 50" {
		t.Errorf("tail label = %q, want scan 50", records[len(records)-1].Label)
	}
}

func TestLedgerAssignsIDAndTimestamp(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	before := time.Now()
	rec, err := l.Record(context.Background(), DetectorPhishing, "https://example.com", VerdictSuspicious)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rec.ID, "scan_") {
		t.Errorf("id = %q, want scan_ prefix", rec.ID)
	}
	if rec.Timestamp.Before(before) || rec.Timestamp.After(time.Now()) {
		t.Errorf("timestamp %v outside insert window", rec.Timestamp)
	}
}

func TestLedgerTruncatesLabel(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	long := strings.Repeat("x", 120)
	rec, err := l.Record(context.Background(), DetectorSMS, long, VerdictSafe)
	if err != nil {
		t.Fatal(err)
	}
	if len([]rune(rec.Label)) != MaxLabelLen {
		t.Errorf("label length = %d, want %d", len([]rune(rec.Label)), MaxLabelLen)
	}
}

func TestLedgerRejectsInvalidEnums(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	if _, err := l.Record(context.Background(), "carrier_pigeon", "x", VerdictSafe); !errors.Is(err, ErrUnknownDetector) {
		t.Errorf("error = %v, want ErrUnknownDetector", err)
	}
	if _, err := l.Record(context.Background(), DetectorSMS, "x", "fine_probably"); !errors.Is(err, ErrUnknownVerdict) {
		t.Errorf("error = %v, want ErrUnknownVerdict", err)
	}
}

func TestLedgerListSnapshotIsolation(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	if _, err := l.Record(context.Background(), DetectorSMS, "original", VerdictSafe); err != nil {
		t.Fatal(err)
	}

	snap := l.List(0)
	snap[0].Label = "mutated"

	if l.List(0)[0].Label != "original" {
		t.Error("mutating a snapshot leaked into the ledger")
	}
}

func TestLedgerListLimit(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	for i := 0; i < 10; i++ {
		if _, err := l.Record(context.Background(), DetectorSMS, fmt.Sprintf("scan %d", i), VerdictSafe); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(l.List(3)); got != 3 {
		t.Errorf("List(3) length = %d", got)
	}
	if got := len(l.List(50)); got != 10 {
		t.Errorf("List(50) length = %d", got)
	}
}

func TestLedgerConcurrentRecord(t *testing.T) {
	l := NewLedger(context.Background(), NewMemoryStore())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _ = l.Record(context.Background(), DetectorSMS, "concurrent", VerdictSafe)
			}
		}()
	}
	wg.Wait()
	if l.Len() != Capacity {
		t.Errorf("ledger length = %d, want %d after 200 inserts", l.Len(), Capacity)
	}
}

func TestLedgerLoadsExistingHistory(t *testing.T) {
	store := NewMemoryStore()
	seed := NewLedger(context.Background(), store)
	for i := 0; i < 5; i++ {
		if _, err := seed.Record(context.Background(), DetectorLoanAPK, fmt.Sprintf("app %d", i), VerdictDangerous); err != nil {
			t.Fatal(err)
		}
	}

	reloaded := NewLedger(context.Background(), store)
	if reloaded.Len() != 5 {
		t.Fatalf("reloaded length = %d, want 5", reloaded.Len())
	}
	if reloaded.List(1)[0].Label != "app 4" {
		t.Error("reloaded ledger lost newest-first ordering")
	}
}
