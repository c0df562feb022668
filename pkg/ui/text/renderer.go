// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/dotprofile/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
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
		_, err := fmt.Fprintln(r.output, v.Canonical)
		return err
	case *display.CaptureResult:
		return r.capture(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) profileList(v *display.ProfileList) error {
	if len(v.Profiles) == 0 {
		fmt.Fprintf(r.output, "No profiles in %s\n", v.Root)
	} else {
		tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
		for _, p := range v.Profiles {
			marker := " "
			if p.Active {
				marker = "*"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", marker, p.ID, p.Name, p.Hotkey, p.Terminal)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(v.Invalid) > 0 {
		fmt.Fprintln(r.output, "\nInvalid profiles:")
		for _, inv := range v.Invalid {
			fmt.Fprintf(r.output, "  %s: %s\n", inv.Dir, inv.Error)
		}
	}
	return nil
}

func (r *Renderer) profileDetail(v *display.ProfileDetail) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", name, value)
		}
	}
	field("Profile", v.ID)
	field("Name", v.Name)
	field("Directory", v.Dir)
	field("Order", fmt.Sprint(v.Order))
	field("Hotkey", v.Hotkey)
	field("Wallpaper", v.Wallpaper)
	field("Terminal", v.Terminal)
	field("IDE", v.IDE)
	field("Extensions", strings.Join(v.Extensions, ", "))
	field("System theme", v.SystemTheme)
	field("Startup script", v.StartupScript)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(v.Files) > 0 {
		fmt.Fprintln(r.output, "\nFiles:")
		r.files(v.Files)
	}
	if v.Readme != "" {
		fmt.Fprintf(r.output, "\n%s\n", strings.TrimRight(v.Readme, "\n"))
	}
	return nil
}

func (r *Renderer) applyResult(v *display.ApplyResult) error {
	header := fmt.Sprintf("apply %s: %s", v.Profile, v.Outcome)
	if v.Interrupted != "" {
		header += " at " + v.Interrupted
	}
	fmt.Fprintf(r.output, "%s (%s, %s)\n", header, v.Trigger, v.Duration)
	if v.Cause != "" {
		fmt.Fprintf(r.output, "  %s\n", v.Cause)
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, s := range v.Steps {
		status := "done"
		switch {
		case s.Error != "":
			status = "failed"
		case s.Skipped:
			status = "skipped"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.State, status, s.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(v.Files) > 0 {
		fmt.Fprintln(r.output, "Files:")
		r.files(v.Files)
	}
	if v.ExitCode != nil {
		fmt.Fprintf(r.output, "Startup script exited %d\n", *v.ExitCode)
	}
	if len(v.Errors) > 0 {
		fmt.Fprintln(r.output, "Errors:")
		for _, e := range v.Errors {
			fmt.Fprintf(r.output, "  - %s\n", e)
		}
	}
	return nil
}

func (r *Renderer) plan(v *display.PlanResult) error {
	fmt.Fprintf(r.output, "apply %s (dry run)\n", v.Profile)
	if len(v.Files) == 0 {
		fmt.Fprintln(r.output, "  nothing to overlay")
		return nil
	}
	r.files(v.Files)
	return nil
}

func (r *Renderer) render(v *display.RenderResult) error {
	if v.Skipped {
		fmt.Fprintf(r.output, "%s has no templates\n", v.Profile)
		return nil
	}
	fmt.Fprintf(r.output, "render %s\n", v.Profile)
	for _, t := range v.Templates {
		switch {
		case t.Error != "":
			fmt.Fprintf(r.output, "  failed    %s: %s\n", t.Source, t.Error)
		case len(t.Unresolved) > 0:
			fmt.Fprintf(r.output, "  rendered  %s (unresolved: %s)\n", t.Output, strings.Join(t.Unresolved, ", "))
		default:
			fmt.Fprintf(r.output, "  rendered  %s\n", t.Output)
		}
	}
	return nil
}

func (r *Renderer) hotkeys(v *display.HotkeyTable) error {
	if len(v.Bindings) == 0 {
		fmt.Fprintln(r.output, "No hotkeys registered")
	}
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, b := range v.Bindings {
		fmt.Fprintf(tw, "%s\t%s\n", b.Shortcut, b.Profile)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, c := range v.Conflicts {
		fmt.Fprintf(r.output, "conflict: %s claimed by %s\n", c.Shortcut, strings.Join(c.Profiles, ", "))
	}
	for _, e := range v.Errors {
		fmt.Fprintf(r.output, "error: %s\n", e)
	}
	return nil
}

func (r *Renderer) capture(v *display.CaptureResult) error {
	fmt.Fprintf(r.output, "captured %d file(s) into %s\n", len(v.Files), v.Dir)
	for _, f := range v.Files {
		fmt.Fprintf(r.output, "  %s -> %s\n", f.Source, f.Destination)
	}
	return nil
}

func (r *Renderer) files(files []display.FileRow) {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, f := range files {
		line := fmt.Sprintf("  %s\t%s", f.Status, f.Destination)
		switch {
		case f.Error != "":
			line += "\t" + f.Error
		case f.Backup != "":
			line += "\tbackup " + f.Backup
		}
		fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()
}
