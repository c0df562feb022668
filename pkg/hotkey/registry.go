package hotkey

import (
	"sort"
	"sync"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// Registrar is the OS-level hotkey registration capability. Register
// returns an error when the shortcut cannot be bound.
type Registrar interface {
	Register(shortcut Shortcut, callback func()) error
}

// Binding ties a canonical shortcut to the profile it triggers.
type Binding struct {
	Shortcut  Shortcut
	ProfileID string
}

// Conflict reports a shortcut claimed by more than one profile.
type Conflict struct {
	Shortcut string
	Profiles []string
}

// Registry tracks shortcut ownership and detects duplicates by exact
// canonical string collision.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// Bind normalizes raw and assigns it to profileID. Rebinding the same
// shortcut to the same profile is a no-op.
func (r *Registry) Bind(profileID, raw string) (Binding, error) {
	s, err := Normalize(raw)
	if err != nil {
		return Binding{}, err
	}
	key := s.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bindings[key]; ok && existing.ProfileID != profileID {
		return Binding{}, errors.Newf(errors.ErrHotkeyConflict,
			"shortcut %s already bound to %s", key, existing.ProfileID).
			WithDetail("shortcut", key).
			WithDetail("profile", existing.ProfileID)
	}

	b := Binding{Shortcut: s, ProfileID: profileID}
	r.bindings[key] = b
	return b, nil
}

// Lookup returns the profile bound to a shortcut in any accepted spelling.
func (r *Registry) Lookup(raw string) (string, bool) {
	key, err := Canonical(raw)
	if err != nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[key]
	return b.ProfileID, ok
}

// Bindings returns all bindings sorted by canonical shortcut.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Shortcut.String() < out[j].Shortcut.String()
	})
	return out
}

// BindAll binds the hotkeys of every descriptor in order. The first
// profile to claim a shortcut keeps it; later claims are returned as
// errors alongside the conflicts they form.
func (r *Registry) BindAll(descriptors []types.ProfileDescriptor) ([]Conflict, []error) {
	logger := logging.GetLogger("hotkey.registry")

	owners := make(map[string][]string)
	var errs []error
	for _, d := range descriptors {
		if d.Profile.Hotkey == "" {
			continue
		}
		b, err := r.Bind(d.ID, d.Profile.Hotkey)
		if err != nil {
			logger.Warn().Err(err).Str("profile", d.ID).Msg("hotkey not bound")
			errs = append(errs, err)
			if errors.IsErrorCode(err, errors.ErrHotkeyConflict) {
				key := errors.DetailString(err, "shortcut")
				if len(owners[key]) == 0 {
					owners[key] = []string{errors.DetailString(err, "profile")}
				}
				owners[key] = append(owners[key], d.ID)
			}
			continue
		}
		logger.Debug().Str("profile", d.ID).Str("shortcut", b.Shortcut.String()).Msg("hotkey bound")
	}

	var conflicts []Conflict
	for key, profiles := range owners {
		conflicts = append(conflicts, Conflict{Shortcut: key, Profiles: profiles})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Shortcut < conflicts[j].Shortcut })
	return conflicts, errs
}

// RegisterAll hands every binding to the OS registrar. trigger is called
// with the bound profile ID when a shortcut fires.
func (r *Registry) RegisterAll(reg Registrar, trigger func(profileID string)) []error {
	var errs []error
	for _, b := range r.Bindings() {
		profileID := b.ProfileID
		if err := reg.Register(b.Shortcut, func() { trigger(profileID) }); err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrHotkeyConflict,
				"registering %s for %s", b.Shortcut, profileID).
				WithDetail("shortcut", b.Shortcut.String()).
				WithDetail("profile", profileID))
		}
	}
	return errs
}
