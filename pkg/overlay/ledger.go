package overlay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Ledger remembers the checksum of the content the engine last wrote to
// each destination, so later applies can tell overlay-owned bytes apart
// from user edits.
type Ledger interface {
	Lookup(destination string) (LedgerEntry, bool)
	Record(destination string, entry LedgerEntry)
	Save() error
}

// LedgerEntry is what the engine knows about one destination.
type LedgerEntry struct {
	Checksum  string    `json:"checksum"`
	Profile   string    `json:"profile,omitempty"`
	WrittenAt time.Time `json:"written_at"`
}

const ledgerVersion = 1

type ledgerFile struct {
	Version int                    `json:"version"`
	Entries map[string]LedgerEntry `json:"entries"`
}

// FileLedger is a Ledger persisted as JSON. A FileLedger with an empty
// path lives only in memory.
type FileLedger struct {
	fs      types.FS
	path    string
	mu      sync.Mutex
	entries map[string]LedgerEntry
	dirty   bool
}

// NewMemoryLedger returns a ledger that is never written to disk.
func NewMemoryLedger() *FileLedger {
	return &FileLedger{entries: make(map[string]LedgerEntry)}
}

// LoadLedger reads the ledger at path. A missing file is an empty ledger;
// a corrupt one is an error so ownership is never guessed.
func LoadLedger(fsys types.FS, path string) (*FileLedger, error) {
	l := &FileLedger{fs: fsys, path: path, entries: make(map[string]LedgerEntry)}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "reading overlay ledger").
			WithDetail("path", path)
	}

	var f ledgerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "parsing overlay ledger").
			WithDetail("path", path)
	}
	if f.Version > ledgerVersion {
		return nil, errors.Newf(errors.ErrIOFailure, "overlay ledger version %d is newer than supported %d",
			f.Version, ledgerVersion).WithDetail("path", path)
	}
	for k, v := range f.Entries {
		l.entries[k] = v
	}
	return l, nil
}

// Lookup returns the entry for destination.
func (l *FileLedger) Lookup(destination string) (LedgerEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[filepath.Clean(destination)]
	return e, ok
}

// Record stores entry for destination.
func (l *FileLedger) Record(destination string, entry LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := filepath.Clean(destination)
	if prev, ok := l.entries[key]; ok && prev.Checksum == entry.Checksum && prev.Profile == entry.Profile {
		return
	}
	l.entries[key] = entry
	l.dirty = true
}

// Destinations lists recorded destinations in sorted order.
func (l *FileLedger) Destinations() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for k := range l.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Save writes the ledger atomically when it changed since the last save.
func (l *FileLedger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" || !l.dirty {
		return nil
	}

	data, err := json.MarshalIndent(ledgerFile{Version: ledgerVersion, Entries: l.entries}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "encoding overlay ledger")
	}
	if err := l.fs.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "creating ledger directory").
			WithDetail("path", l.path)
	}
	if err := filesystem.WriteFileAtomic(l.fs, l.path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "writing overlay ledger").
			WithDetail("path", l.path)
	}
	l.dirty = false
	return nil
}
