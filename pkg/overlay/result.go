package overlay

// Status is the outcome for one pair.
type Status string

const (
	// StatusWritten means the destination was created or replaced without
	// needing a backup
	StatusWritten Status = "written"
	// StatusBackedUp means prior user content was saved to .bak first
	StatusBackedUp Status = "backed_up"
	// StatusUnchanged means the destination already held the content
	StatusUnchanged Status = "unchanged"
	StatusFailed    Status = "failed"
)

// FileResult records what happened to one pair.
type FileResult struct {
	Pair
	Status Status `json:"status"`
	Backup string `json:"backup,omitempty"`
	Err    error  `json:"-"`
}

// Result aggregates an overlay batch.
type Result struct {
	Files     []FileResult
	Cancelled bool
	LedgerErr error
}

// Count returns how many files ended with status s.
func (r *Result) Count(s Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Errors returns the per-file failures in batch order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Backups lists the backup files created by the batch.
func (r *Result) Backups() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, f := range r.Files {
		if f.Backup != "" && f.Status == StatusBackedUp {
			out = append(out, f.Backup)
		}
	}
	return out
}
