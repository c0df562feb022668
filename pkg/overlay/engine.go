package overlay

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/internal/hashutil"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// DefaultBackupSuffix is appended to a destination to name its backup.
const DefaultBackupSuffix = ".bak"

// Engine applies overlay pairs.
type Engine struct {
	FS     types.FS
	Guard  *paths.Guard
	Ledger Ledger
	// Home is the base for home/** pairs and ~ in replacement destinations
	Home string
	// BackupSuffix defaults to ".bak"
	BackupSuffix string
	// MaxBackups bounds .bak plus its numbered rotations; values below 1
	// keep a single .bak
	MaxBackups int
	// Profile is recorded in the ledger next to each written checksum. A
	// destination last written for a different profile is backed up
	// before it is replaced.
	Profile string
	Clock   clockwork.Clock
}

// NewEngine returns an Engine with default backup settings.
func NewEngine(fsys types.FS, guard *paths.Guard, ledger Ledger, home string) *Engine {
	return &Engine{
		FS:           fsys,
		Guard:        guard,
		Ledger:       ledger,
		Home:         home,
		BackupSuffix: DefaultBackupSuffix,
		MaxBackups:   1,
		Clock:        clockwork.NewRealClock(),
	}
}

// action is the decision made for a pair before anything is written.
type action struct {
	status Status
	data   []byte
	perm   os.FileMode
	backup bool
}

// Apply overlays pairs in order. Cancellation is observed between pairs
// only; files already written stay written. The ledger is saved once at
// the end, including after cancellation.
func (e *Engine) Apply(ctx context.Context, pairs []Pair) *Result {
	logger := e.logger()
	result := &Result{}

	for i, pair := range pairs {
		if ctx.Err() != nil {
			result.Cancelled = true
			logger.Info().Int("remaining", len(pairs)-i).Msg("overlay cancelled between files")
			break
		}
		fr := e.applyPair(context.WithoutCancel(ctx), pair)
		logPair(logger, fr)
		result.Files = append(result.Files, fr)
	}

	if e.Ledger != nil {
		if err := e.Ledger.Save(); err != nil {
			logger.Error().Err(err).Msg("overlay ledger not saved")
			result.LedgerErr = err
		}
	}
	return result
}

// Preview reports what Apply would do for profile without touching the
// filesystem or the engine's state.
func (e *Engine) Preview(profile string, pairs []Pair) *Result {
	result := &Result{}
	for _, pair := range pairs {
		fr := FileResult{Pair: pair}
		act, err := e.decide(pair, profile)
		if err != nil {
			fr.Status, fr.Err = StatusFailed, err
		} else {
			fr.Status = act.status
			if act.backup {
				fr.Backup = e.backupPath(pair.Destination)
			}
		}
		result.Files = append(result.Files, fr)
	}
	return result
}

// applyPair runs to completion once started; ctx carries values only.
func (e *Engine) applyPair(ctx context.Context, pair Pair) FileResult {
	fr := FileResult{Pair: pair}

	act, err := e.decide(pair, e.Profile)
	if err != nil {
		fr.Status, fr.Err = StatusFailed, err
		return fr
	}

	if act.status == StatusUnchanged {
		e.record(pair.Destination, act.data)
		fr.Status = StatusUnchanged
		return fr
	}

	if err := e.FS.MkdirAll(filepath.Dir(pair.Destination), 0755); err != nil {
		fr.Status, fr.Err = StatusFailed, pairErr(err, pair, "creating destination directory")
		return fr
	}

	if act.backup {
		bak, err := e.backup(ctx, pair.Destination)
		if err != nil {
			fr.Status, fr.Err = StatusFailed, pairErr(err, pair, "backing up destination")
			return fr
		}
		fr.Backup = bak
	}

	if err := filesystem.WriteFileAtomic(e.FS, pair.Destination, act.data, act.perm); err != nil {
		fr.Status, fr.Err = StatusFailed, pairErr(err, pair, "writing destination")
		return fr
	}
	e.record(pair.Destination, act.data)

	fr.Status = act.status
	return fr
}

// decide validates the pair and works out whether a write and a backup are
// needed when applying profile. It performs no writes.
func (e *Engine) decide(pair Pair, profile string) (action, error) {
	if e.Guard != nil {
		if err := e.Guard.Check(pair.Destination); err != nil {
			return action{}, err
		}
		if err := e.Guard.Check(e.backupPath(pair.Destination)); err != nil {
			return action{}, err
		}
	}

	info, err := e.FS.Stat(pair.Source)
	if err != nil {
		return action{}, pairErr(err, pair, "reading source")
	}
	if info.IsDir() {
		return action{}, pairErr(os.ErrInvalid, pair, "source is a directory")
	}
	data, err := e.FS.ReadFile(pair.Source)
	if err != nil {
		return action{}, pairErr(err, pair, "reading source")
	}
	act := action{data: data, perm: info.Mode().Perm(), status: StatusWritten}
	if act.perm == 0 {
		act.perm = 0644
	}

	dinfo, err := e.FS.Stat(pair.Destination)
	switch {
	case os.IsNotExist(err):
		return act, nil
	case err != nil:
		return action{}, pairErr(err, pair, "inspecting destination")
	case dinfo.IsDir():
		return action{}, pairErr(os.ErrExist, pair, "destination is a directory")
	}

	current, err := e.FS.ReadFile(pair.Destination)
	if err != nil {
		return action{}, pairErr(err, pair, "reading destination")
	}
	if bytes.Equal(current, data) {
		act.status = StatusUnchanged
		return act, nil
	}

	if e.owned(pair.Destination, current, profile) {
		return act, nil
	}
	if bak, err := e.FS.ReadFile(e.backupPath(pair.Destination)); err == nil && bytes.Equal(bak, current) {
		return act, nil
	}
	act.backup = true
	act.status = StatusBackedUp
	return act, nil
}

// owned reports whether current is exactly what the overlay last wrote
// there for profile.
func (e *Engine) owned(dest string, current []byte, profile string) bool {
	if e.Ledger == nil {
		return false
	}
	entry, ok := e.Ledger.Lookup(dest)
	return ok && entry.Profile == profile && entry.Checksum == hashutil.Checksum(current)
}

func (e *Engine) record(dest string, data []byte) {
	if e.Ledger == nil {
		return
	}
	e.Ledger.Record(dest, LedgerEntry{
		Checksum:  hashutil.Checksum(data),
		Profile:   e.Profile,
		WrittenAt: e.now(),
	})
}

// backup copies the destination to its .bak after rotating older backups
// out of the way.
func (e *Engine) backup(ctx context.Context, dest string) (string, error) {
	bak := e.backupPath(dest)
	if err := e.rotate(bak); err != nil {
		return "", err
	}
	if err := filesystem.CopyFile(ctx, e.FS, dest, bak); err != nil {
		return "", err
	}
	return bak, nil
}

// rotate shifts bak -> bak.1 -> bak.2 ... keeping at most MaxBackups
// files. With MaxBackups <= 1 the single .bak is simply replaced.
func (e *Engine) rotate(bak string) error {
	keep := e.MaxBackups
	if keep <= 1 {
		return nil
	}

	oldest := numbered(bak, keep-1)
	if ok, _ := filesystem.Exists(e.FS, oldest); ok {
		if err := e.FS.Remove(oldest); err != nil {
			return err
		}
	}
	for i := keep - 2; i >= 0; i-- {
		from := numbered(bak, i)
		ok, err := filesystem.Exists(e.FS, from)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := e.FS.Rename(from, numbered(bak, i+1)); err != nil {
			return err
		}
	}
	return nil
}

func numbered(bak string, n int) string {
	if n == 0 {
		return bak
	}
	return bak + "." + strconv.Itoa(n)
}

func (e *Engine) backupPath(dest string) string {
	suffix := e.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return dest + suffix
}

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e *Engine) logger() zerolog.Logger {
	return logging.GetLogger("overlay").With().Str("profile", e.Profile).Logger()
}

func logPair(logger zerolog.Logger, fr FileResult) {
	switch fr.Status {
	case StatusFailed:
		logger.Warn().Err(fr.Err).Str("source", fr.Source).Str("destination", fr.Destination).Msg("overlay skipped file")
	case StatusBackedUp:
		logger.Info().Str("destination", fr.Destination).Str("backup", fr.Backup).Msg("overlaid with backup")
	case StatusWritten:
		logger.Debug().Str("destination", fr.Destination).Msg("overlaid")
	default:
		logger.Trace().Str("destination", fr.Destination).Msg("already up to date")
	}
}

func pairErr(err error, pair Pair, msg string) error {
	return errors.Wrap(err, errors.ErrIOFailure, msg).
		WithDetail("source", pair.Source).
		WithDetail("destination", pair.Destination)
}
