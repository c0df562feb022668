// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/ui/display"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss and pterm
type Renderer struct {
	output io.Writer
	// Width wraps markdown; zero lets glamour decide
	Width int
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w, Width: 80}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ProfileList:
		return r.profileList(v)
	case *display.ProfileDetail:
		return r.profileDetail(v)
	case *display.ApplyResult:
		return r.applyResult(v)
	case *display.PlanResult:
		return r.plan(v)
	case *display.RenderResult:
		return r.render(v)
	case *display.HotkeyTable:
		return r.hotkeys(v)
	case *display.Shortcut:
		return r.println(titleStyle.Render(v.Canonical))
	case *display.CaptureResult:
		return r.capture(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	line := errorIndicator + " " + errorStyle.Render(err.Error())
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line += " " + mutedStyle.Render("["+string(code)+"]")
	}
	return r.println(line)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(infoStyle.Render(msg))
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

func (r *Renderer) table(rows [][]string) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	return r.println(out)
}

func (r *Renderer) profileList(v *display.ProfileList) error {
	if err := r.println(titleStyle.Render("Profiles") + " " + pathStyle.Render(v.Root)); err != nil {
		return err
	}
	if len(v.Profiles) == 0 {
		if err := r.println(mutedStyle.Render("  no profiles found")); err != nil {
			return err
		}
	} else {
		rows := [][]string{{"", "ID", "Name", "Hotkey", "Terminal"}}
		for _, p := range v.Profiles {
			marker := ""
			if p.Active {
				marker = activeIndicator
			}
			rows = append(rows, []string{marker, p.ID, p.Name, p.Hotkey, p.Terminal})
		}
		if err := r.table(rows); err != nil {
			return err
		}
	}
	for _, inv := range v.Invalid {
		if err := r.println(warningIndicator + " " + pathStyle.Render(inv.Dir) + " " + inv.Error); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) profileDetail(v *display.ProfileDetail) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Name) + " " + mutedStyle.Render("("+v.ID+")") + "\n")
	field := func(name, value string) {
		if value != "" {
			b.WriteString(labelStyle.Render(name) + value + "\n")
		}
	}
	field("Directory", pathStyle.Render(v.Dir))
	field("Order", fmt.Sprint(v.Order))
	field("Hotkey", v.Hotkey)
	field("Wallpaper", v.Wallpaper)
	field("Terminal", v.Terminal)
	field("IDE", v.IDE)
	field("Extensions", strings.Join(v.Extensions, ", "))
	field("System theme", v.SystemTheme)
	field("Startup script", v.StartupScript)
	if err := r.println(boxStyle.Render(strings.TrimRight(b.String(), "\n"))); err != nil {
		return err
	}

	if len(v.Files) > 0 {
		if err := r.files(v.Files); err != nil {
			return err
		}
	}
	if v.Readme != "" {
		return r.println(r.markdown(v.Readme))
	}
	return nil
}

// markdown renders md with glamour, falling back to the raw text.
func (r *Renderer) markdown(md string) string {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (r *Renderer) applyResult(v *display.ApplyResult) error {
	header := titleStyle.Render("apply "+v.Profile) + " " + outcomeStyle(v.Outcome).Render(v.Outcome)
	if v.Interrupted != "" {
		header += mutedStyle.Render(" at " + v.Interrupted)
	}
	header += mutedStyle.Render(fmt.Sprintf(" · %s · %s", v.Trigger, v.Duration))
	if err := r.println(header); err != nil {
		return err
	}
	if v.Cause != "" {
		if err := r.println("  " + errorStyle.Render(v.Cause)); err != nil {
			return err
		}
	}

	for _, s := range v.Steps {
		indicator := successIndicator
		switch {
		case s.Error != "":
			indicator = errorIndicator
		case s.Skipped:
			indicator = skippedIndicator
		}
		line := fmt.Sprintf("  %s %-26s %s", indicator, s.State, mutedStyle.Render(s.Duration))
		if err := r.println(line); err != nil {
			return err
		}
	}

	if len(v.Files) > 0 {
		if err := r.files(v.Files); err != nil {
			return err
		}
	}
	if v.ExitCode != nil {
		if err := r.println(mutedStyle.Render(fmt.Sprintf("startup script exited %d", *v.ExitCode))); err != nil {
			return err
		}
	}
	for _, e := range v.Errors {
		if err := r.println(errorIndicator + " " + e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) plan(v *display.PlanResult) error {
	if err := r.println(titleStyle.Render("apply "+v.Profile) + " " + warningStyle.Render("dry run")); err != nil {
		return err
	}
	if len(v.Files) == 0 {
		return r.println(mutedStyle.Render("  nothing to overlay"))
	}
	return r.files(v.Files)
}

func (r *Renderer) render(v *display.RenderResult) error {
	if v.Skipped {
		return r.println(mutedStyle.Render(v.Profile + " has no templates"))
	}
	if err := r.println(titleStyle.Render("render " + v.Profile)); err != nil {
		return err
	}
	for _, t := range v.Templates {
		line := successIndicator + " " + pathStyle.Render(t.Output)
		switch {
		case t.Error != "":
			line = errorIndicator + " " + pathStyle.Render(t.Source) + " " + errorStyle.Render(t.Error)
		case len(t.Unresolved) > 0:
			line = warningIndicator + " " + pathStyle.Render(t.Output) + " " +
				warningStyle.Render("unresolved: "+strings.Join(t.Unresolved, ", "))
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) hotkeys(v *display.HotkeyTable) error {
	if len(v.Bindings) == 0 {
		if err := r.println(mutedStyle.Render("no hotkeys registered")); err != nil {
			return err
		}
	} else {
		rows := [][]string{{"Shortcut", "Profile"}}
		for _, b := range v.Bindings {
			rows = append(rows, []string{b.Shortcut, b.Profile})
		}
		if err := r.table(rows); err != nil {
			return err
		}
	}
	for _, c := range v.Conflicts {
		line := warningIndicator + " " + warningStyle.Render(c.Shortcut) + " claimed by " + strings.Join(c.Profiles, ", ")
		if err := r.println(line); err != nil {
			return err
		}
	}
	for _, e := range v.Errors {
		if err := r.println(errorIndicator + " " + e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) capture(v *display.CaptureResult) error {
	header := successIndicator + " " + titleStyle.Render(fmt.Sprintf("captured %d file(s)", len(v.Files))) +
		" into " + pathStyle.Render(v.Dir)
	if err := r.println(header); err != nil {
		return err
	}
	for _, f := range v.Files {
		if err := r.println("  " + pathStyle.Render(f.Source) + mutedStyle.Render(" → ") + f.Destination); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) files(files []display.FileRow) error {
	rows := [][]string{{"Status", "Destination", "Note"}}
	for _, f := range files {
		note := f.Backup
		if f.Error != "" {
			note = errorStyle.Render(f.Error)
		} else if note != "" {
			note = "backup " + note
		}
		rows = append(rows, []string{outcomeStyle(f.Status).Render(f.Status), f.Destination, note})
	}
	return r.table(rows)
}
