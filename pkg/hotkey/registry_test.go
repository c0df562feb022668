// Test Type: Unit Test
// Description: Tests for hotkey binding registry and conflict detection

package hotkey_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BindAndLookup(t *testing.T) {
	r := hotkey.NewRegistry()

	b, err := r.Bind("work", "Cmd+Ctrl+1")
	require.NoError(t, err)
	assert.Equal(t, "ctrl+cmd+1", b.Shortcut.String())

	id, ok := r.Lookup("ctrl+command+1")
	assert.True(t, ok)
	assert.Equal(t, "work", id)

	_, err = r.Bind("work", "ctrl+cmd+1")
	assert.NoError(t, err, "rebinding to the same profile is allowed")

	_, ok = r.Lookup("ctrl+cmd+2")
	assert.False(t, ok)
	_, ok = r.Lookup("cmd+cmd")
	assert.False(t, ok)
}

func TestRegistry_Conflict(t *testing.T) {
	r := hotkey.NewRegistry()
	_, err := r.Bind("work", "cmd+ctrl+1")
	require.NoError(t, err)

	_, err = r.Bind("play", "Control+Command+1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHotkeyConflict))
	assert.Equal(t, "ctrl+cmd+1", errors.DetailString(err, "shortcut"))
	assert.Equal(t, "work", errors.DetailString(err, "profile"))
}

func TestRegistry_BindAll(t *testing.T) {
	descriptors := []types.ProfileDescriptor{
		types.NewDescriptor("/p/work", types.Profile{Hotkey: "cmd+ctrl+1"}),
		types.NewDescriptor("/p/play", types.Profile{Hotkey: "ctrl+cmd+1"}),
		types.NewDescriptor("/p/night", types.Profile{Hotkey: "ctrl+cmd+1"}),
		types.NewDescriptor("/p/focus", types.Profile{Hotkey: "opt+f"}),
		types.NewDescriptor("/p/plain", types.Profile{}),
		types.NewDescriptor("/p/broken", types.Profile{Hotkey: "cmd+"}),
	}

	r := hotkey.NewRegistry()
	conflicts, errs := r.BindAll(descriptors)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "ctrl+cmd+1", conflicts[0].Shortcut)
	assert.Equal(t, []string{"work", "play", "night"}, conflicts[0].Profiles)
	assert.Len(t, errs, 3)

	bindings := r.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "ctrl+cmd+1", bindings[0].Shortcut.String())
	assert.Equal(t, "work", bindings[0].ProfileID)
	assert.Equal(t, "opt+f", bindings[1].Shortcut.String())
}

type fakeRegistrar struct {
	registered map[string]func()
	reject     string
}

func (f *fakeRegistrar) Register(s hotkey.Shortcut, cb func()) error {
	if s.String() == f.reject {
		return stderrors.New("taken by another application")
	}
	f.registered[s.String()] = cb
	return nil
}

func TestRegistry_RegisterAll(t *testing.T) {
	r := hotkey.NewRegistry()
	_, err := r.Bind("work", "cmd+1")
	require.NoError(t, err)
	_, err = r.Bind("play", "cmd+2")
	require.NoError(t, err)

	reg := &fakeRegistrar{registered: map[string]func(){}, reject: "cmd+2"}
	var fired []string
	errs := r.RegisterAll(reg, func(id string) { fired = append(fired, id) })

	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrHotkeyConflict))
	assert.Equal(t, "play", errors.DetailString(errs[0], "profile"))

	reg.registered["cmd+1"]()
	assert.Equal(t, []string{"work"}, fired)
}
