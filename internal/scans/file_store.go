package scans

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultHistoryFile is the default persistence filename. The name carries
// over from the storage key used by earlier client-local deployments.
const DefaultHistoryFile = "trustlense-scan-history.json"

// FileStore persists the scan history as a single JSON array, rewritten on
// every insert. With the ledger capped at 100 records the rewrite is cheap.
// A missing or corrupted file degrades to an empty history.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed scan store at path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultHistoryFile
	}
	return &FileStore{path: path}
}

func (f *FileStore) Load(ctx context.Context) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) Insert(ctx context.Context, r *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, _ := f.read()
	cp := *r
	records = append([]*Record{&cp}, records...)
	return f.write(records)
}

func (f *FileStore) Prune(ctx context.Context, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	records, _ := f.read()
	if keep < 0 || len(records) <= keep {
		return nil
	}
	return f.write(records[:keep])
}

// read loads and sorts the persisted records. Unreadable or malformed data
// is treated as an empty history, never an error.
func (f *FileStore) read() ([]*Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// write atomically replaces the history file via rename.
func (f *FileStore) write(records []*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scan history: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".scan-history-*")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write scan history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close scan history: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace scan history: %w", err)
	}
	return nil
}
