// Package topics serves long-form help topics through a cobra help command.
//
// Topics are files in an fs.FS (usually embedded). A topic's name is its path
// relative to the root, without extension, so "overlay/backups.md" is the
// topic "overlay/backups". `<cmd> help <topic>` prints the topic when no
// command of that name exists.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// DefaultExtensions are the file extensions loaded when Options has none.
var DefaultExtensions = []string{".md", ".txt"}

// Topic is one loaded help file.
type Topic struct {
	Name    string
	Path    string
	Ext     string
	Content string
}

// Options configures a Manager.
type Options struct {
	Extensions []string
	Renderer   Renderer
}

// Manager holds the topics loaded from a filesystem.
type Manager struct {
	topics   map[string]Topic
	renderer Renderer
}

// Load walks fsys and collects every file with a configured extension.
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	r := opts.Renderer
	if r == nil {
		r = PlainRenderer{}
	}
	m := &Manager{topics: make(map[string]Topic), renderer: r}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !hasExt(exts, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read topic %s: %w", p, err)
		}
		name := strings.TrimSuffix(p, ext)
		if _, dup := m.topics[name]; dup {
			return fmt.Errorf("topic %q defined more than once", name)
		}
		m.topics[name] = Topic{Name: name, Path: p, Ext: ext, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Get returns the named topic.
func (m *Manager) Get(name string) (Topic, bool) {
	t, ok := m.topics[strings.ToLower(name)]
	return t, ok
}

// Names lists topic names sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for n := range m.topics {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic for display.
func (m *Manager) Render(t Topic) string {
	return m.renderer.Render(t.Content, t.Ext)
}

// Install replaces root's help command with one that also knows topics.
// Command help keeps precedence over a topic of the same name.
func Install(root *cobra.Command, m *Manager) {
	defaultHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command|topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf("Help provides help for any command or topic.\n"+
			"Type %s help [path to command] for full details.", root.Name()),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var out []string
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() && strings.HasPrefix(c.Name(), toComplete) {
					out = append(out, c.Name())
				}
			}
			for _, n := range m.Names() {
				if strings.HasPrefix(n, toComplete) {
					out = append(out, n)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				defaultHelp(root, nil)
				return nil
			}
			if target, rest, err := root.Find(args); err == nil && target != root && len(rest) == 0 {
				defaultHelp(target, nil)
				return nil
			}
			if t, ok := m.Get(strings.Join(args, "/")); ok {
				_, err := fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
				return err
			}
			return fmt.Errorf("unknown help topic %q; run '%s help topics' for the list",
				strings.Join(args, " "), root.Name())
		},
	}

	listCmd := &cobra.Command{
		Use:   "topics",
		Short: "List help topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, "Help topics:"); err != nil {
				return err
			}
			for _, n := range m.Names() {
				if _, err := fmt.Fprintf(out, "  %s\n", n); err != nil {
					return err
				}
			}
			return nil
		},
	}
	helpCmd.AddCommand(listCmd)

	root.SetHelpCommand(helpCmd)
}
