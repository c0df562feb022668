package testutil

import (
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/stretchr/testify/require"
)

// ProfileBuilder lays out a profile directory for tests.
type ProfileBuilder struct {
	env  *TestEnvironment
	Name string // Directory name, also the profile ID
	Dir  string // Full path to the profile directory
}

// File adds a profile-relative file.
func (b *ProfileBuilder) File(rel, content string) *ProfileBuilder {
	b.env.t.Helper()
	b.env.WriteFile(filepath.Join(b.Dir, rel), content)
	return b
}

// Executable adds a profile-relative file with the executable bit set.
func (b *ProfileBuilder) Executable(rel, content string) *ProfileBuilder {
	b.env.t.Helper()
	path := filepath.Join(b.Dir, rel)
	require.NoError(b.env.t, b.env.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(b.env.t, b.env.FS.WriteFile(path, []byte(content), 0755))
	return b
}

// Manifest writes profile.json.
func (b *ProfileBuilder) Manifest(json string) *ProfileBuilder {
	return b.File("profile.json", json)
}

// Home adds a file under home/, overlaid to the same relative path in
// the user's home directory.
func (b *ProfileBuilder) Home(rel, content string) *ProfileBuilder {
	return b.File(filepath.Join(paths.HomeDirName, rel), content)
}

// Template adds a file under templates/home/.
func (b *ProfileBuilder) Template(rel, content string) *ProfileBuilder {
	return b.File(filepath.Join(paths.TemplatesDirName, paths.HomeDirName, rel), content)
}

// Variables writes variables.json.
func (b *ProfileBuilder) Variables(json string) *ProfileBuilder {
	return b.File(paths.VariablesFile, json)
}

// CommonDotfiles provides common dotfile content for testing
var CommonDotfiles = map[string]string{
	".vimrc":     "\" vim configuration\nset number\n",
	".zshrc":     "# zsh configuration\nexport PS1=\"$ \"\n",
	".gitconfig": "[user]\n    name = Test User\n    email = test@example.com\n",
}
