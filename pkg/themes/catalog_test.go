// Test Type: Unit Test
// Description: Tests for the on-disk theme catalog

package themes_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/testutil"
	"github.com/arthur-debert/dotprofile/pkg/themes"
	"github.com/arthur-debert/dotprofile/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solarized = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Ansi 0 Color</key>
	<dict>
		<key>Blue Component</key>
		<real>0.19</real>
	</dict>
	<key>Background Color</key>
	<dict>
		<key>Blue Component</key>
		<real>0.21</real>
	</dict>
</dict>
</plist>
`

func setupCatalog(t *testing.T) (*testutil.TestEnvironment, *themes.DirCatalog) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	root := filepath.Join(env.HomeDir, "themes")
	env.WriteFile(filepath.Join(root, "iterm2", "Solarized Dark.itermcolors"), solarized)
	env.WriteFile(filepath.Join(root, "iterm2", "Broken.itermcolors"), "<plist><array/></plist>")
	env.WriteFile(filepath.Join(root, "iterm2", "notes.txt"), "ignored")
	env.WriteFile(filepath.Join(root, "kitty", "tokyo.conf"), "background #1a1b26\n")
	env.WriteFile(filepath.Join(root, "kitty", "Alpha.conf"), "background #000\n")
	return env, themes.NewDirCatalog(env.FS, root)
}

func TestDirCatalog_List(t *testing.T) {
	_, c := setupCatalog(t)

	list, err := c.List(types.TerminalKitty)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "tokyo", list[1].Name)

	list, err = c.List(types.TerminalITerm2)
	require.NoError(t, err)
	require.Len(t, list, 1, "invalid plist and foreign extensions are skipped")
	assert.Equal(t, "Solarized Dark", list[0].Name)

	list, err = c.List(types.TerminalWezTerm)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = c.List("hyper")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDirCatalog_Lookup(t *testing.T) {
	_, c := setupCatalog(t)

	theme, err := c.Lookup(types.TerminalITerm2, "solarized dark")
	require.NoError(t, err)
	assert.Equal(t, "Solarized Dark", theme.Name)
	assert.Equal(t, types.TerminalITerm2, theme.Kind)

	_, err = c.Lookup(types.TerminalITerm2, "Broken")
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))

	_, err = c.Lookup(types.TerminalKitty, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))
}

func TestValidatePlist(t *testing.T) {
	require.NoError(t, themes.ValidatePlist([]byte(solarized)))

	bad := []string{
		"not xml <",
		"<dict></dict>",
		"<plist><array/></plist>",
		"<plist><dict><key>a</key></dict></plist>",
		"<plist><dict><string>a</string><string>b</string></dict></plist>",
	}
	for _, data := range bad {
		err := themes.ValidatePlist([]byte(data))
		assert.True(t, errors.IsErrorCode(err, errors.ErrThemeInvalid), data)
	}
}
