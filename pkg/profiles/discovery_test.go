// Test Type: Unit Test
// Description: Tests for profile discovery and wallpaper detection

package profiles_test

import (
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Profile("zeta").Manifest(`{"order": 1}`)
	env.Profile("alpha").Manifest(`{"order": 2, "name": "Alpha"}`)
	env.Profile("beta").Manifest(`{"order": 1, "name": "Beta"}`)
	env.Profile("broken").Manifest(`{"terminal": {"kind": "nope"}}`)
	env.Profile(".hidden").Manifest(`{}`)
	env.WriteFile(env.ProfilesRoot+"/README.md", "not a profile")

	d, err := profiles.Discover(env.FS, env.ProfilesRoot)
	require.NoError(t, err)

	var ids []string
	for _, p := range d.Profiles {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"beta", "zeta", "alpha"}, ids)

	require.Len(t, d.Invalid, 1)
	assert.Contains(t, d.Invalid[0].Dir, "broken")

	found, ok := d.Find("alpha")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", found.DisplayName)
	_, ok = d.Find("broken")
	assert.False(t, ok)
}

func TestDiscover_MissingRoot(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := profiles.Discover(env.FS, "/nowhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSource_Load(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Profile("work").Manifest(`{"name": "Work"}`)
	src := profiles.NewSource(env.FS, env.ProfilesRoot)

	d, err := src.Load("work")
	require.NoError(t, err)
	assert.Equal(t, "Work", d.DisplayName)

	for _, id := range []string{"", "..", "../work", "a/b"} {
		_, err := src.Load(id)
		assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound), id)
	}
}

func TestDetectWallpaper(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{name: "none", files: []string{"notes.txt"}, expected: ""},
		{name: "first_image", files: []string{"b.png", "a.JPG", "notes.txt"}, expected: "a.JPG"},
		{name: "preferred_prefix", files: []string{"a.png", "wallpaper.heic"}, expected: "wallpaper.heic"},
		{name: "bg_prefix", files: []string{"aa.png", "bg-night.webp", "background.png"}, expected: "background.png"},
		{name: "case_insensitive_prefix", files: []string{"a.png", "Wallpaper.PNG"}, expected: "Wallpaper.PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			p := env.Profile("p")
			for _, f := range tt.files {
				p.File(f, "x")
			}
			// images below the top level are ignored
			p.Home("wallpaper.png", "x")

			assert.Equal(t, tt.expected, profiles.DetectWallpaper(env.FS, p.Dir))
		})
	}
}
