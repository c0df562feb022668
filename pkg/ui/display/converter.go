package display

import (
	"sort"
	"time"

	"github.com/arthur-debert/dotprofile/pkg/apply"
	"github.com/arthur-debert/dotprofile/pkg/hotkey"
	"github.com/arthur-debert/dotprofile/pkg/overlay"
	"github.com/arthur-debert/dotprofile/pkg/profiles"
	"github.com/arthur-debert/dotprofile/pkg/template"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// NewProfileRow flattens a descriptor.
func NewProfileRow(d types.ProfileDescriptor, active string) ProfileRow {
	row := ProfileRow{
		ID:        d.ID,
		Name:      d.DisplayName,
		Order:     d.Profile.Order,
		Hotkey:    d.Profile.Hotkey,
		Wallpaper: d.Profile.Wallpaper,
		Active:    active != "" && d.ID == active,
	}
	if t := d.Profile.Terminal; t != nil {
		row.Terminal = string(t.Kind)
		if t.Theme != "" {
			row.Terminal += " (" + t.Theme + ")"
		}
	}
	return row
}

// NewProfileList converts a discovery pass.
func NewProfileList(root string, disc *profiles.Discovery, active string) *ProfileList {
	list := &ProfileList{Root: root, Profiles: []ProfileRow{}}
	if disc == nil {
		return list
	}
	for _, d := range disc.Profiles {
		list.Profiles = append(list.Profiles, NewProfileRow(d, active))
	}
	for _, inv := range disc.Invalid {
		list.Invalid = append(list.Invalid, InvalidRow{Dir: inv.Dir, Error: errString(inv.Err)})
	}
	return list
}

// NewProfileDetail converts a descriptor and its planned overlay.
func NewProfileDetail(d types.ProfileDescriptor, plan *overlay.Result, readme string) *ProfileDetail {
	p := d.Profile
	detail := &ProfileDetail{
		ProfileRow:    NewProfileRow(d, ""),
		Dir:           d.Dir,
		SystemTheme:   string(p.SystemTheme),
		StartupScript: p.StartupScript,
		Files:         fileRows(plan),
		Readme:        readme,
	}
	if p.IDE != nil {
		detail.IDE = string(p.IDE.Kind)
		if p.IDE.Theme != "" {
			detail.IDE += " (" + p.IDE.Theme + ")"
		}
		detail.Extensions = append([]string(nil), p.IDE.Extensions...)
	}
	if len(p.Replacements) > 0 {
		detail.Replacements = make(map[string]string, len(p.Replacements))
		for _, r := range p.Replacements {
			detail.Replacements[r.Source] = r.Destination
		}
	}
	return detail
}

// NewApplyResult converts an apply report.
func NewApplyResult(rep *apply.Report) *ApplyResult {
	res := &ApplyResult{
		RunID:       rep.RunID,
		Profile:     rep.ProfileID,
		Trigger:     string(rep.Trigger),
		Outcome:     string(rep.Outcome),
		FinalState:  string(rep.FinalState),
		Interrupted: string(rep.Interrupted),
		Started:     rep.Started,
		Duration:    formatDuration(rep.Duration()),
		Steps:       []StepRow{},
		Files:       fileRows(rep.Overlay),
		Cause:       errString(rep.Cause),
	}
	for _, s := range rep.Steps {
		res.Steps = append(res.Steps, StepRow{
			State:    string(s.State),
			Skipped:  s.Skipped,
			Error:    errString(s.Err),
			Duration: formatDuration(s.Duration),
		})
	}
	if rep.Templates != nil {
		res.Templates = templateRows(rep.Templates)
	}
	if rep.ExitCode >= 0 {
		code := rep.ExitCode
		res.ExitCode = &code
	}
	for _, err := range rep.Errors {
		res.Errors = append(res.Errors, err.Error())
	}
	return res
}

// NewPlanResult converts an overlay preview.
func NewPlanResult(d types.ProfileDescriptor, plan *overlay.Result) *PlanResult {
	return &PlanResult{Profile: d.ID, DryRun: true, Files: fileRows(plan)}
}

// NewRenderResult converts a template pass.
func NewRenderResult(profileID string, res *template.Result) *RenderResult {
	out := &RenderResult{Profile: profileID, Templates: []TemplateRow{}}
	if res == nil {
		return out
	}
	out.Skipped = res.Skipped
	out.Templates = templateRows(res)
	return out
}

// NewHotkeyTable converts registry state.
func NewHotkeyTable(bindings []hotkey.Binding, conflicts []hotkey.Conflict, errs []error) *HotkeyTable {
	table := &HotkeyTable{Bindings: []HotkeyRow{}}
	for _, b := range bindings {
		table.Bindings = append(table.Bindings, HotkeyRow{Shortcut: b.Shortcut.String(), Profile: b.ProfileID})
	}
	for _, c := range conflicts {
		ps := append([]string(nil), c.Profiles...)
		sort.Strings(ps)
		table.Conflicts = append(table.Conflicts, ConflictRow{Shortcut: c.Shortcut, Profiles: ps})
	}
	for _, err := range errs {
		table.Errors = append(table.Errors, err.Error())
	}
	return table
}

// NewCaptureResult converts a capture.
func NewCaptureResult(res *profiles.CaptureResult) *CaptureResult {
	out := &CaptureResult{
		Profile: res.Descriptor.ID,
		Dir:     res.Descriptor.Dir,
		Files:   []FileRow{},
	}
	for _, f := range res.Files {
		out.Files = append(out.Files, FileRow{
			Source:      f.From,
			Destination: f.To,
			Origin:      "capture",
			Status:      "copied",
		})
	}
	return out
}

func fileRows(res *overlay.Result) []FileRow {
	rows := []FileRow{}
	if res == nil {
		return rows
	}
	for _, f := range res.Files {
		rows = append(rows, FileRow{
			Source:      f.Source,
			Destination: f.Destination,
			Origin:      string(f.Origin),
			Status:      string(f.Status),
			Backup:      f.Backup,
			Error:       errString(f.Err),
		})
	}
	return rows
}

func templateRows(res *template.Result) []TemplateRow {
	rows := []TemplateRow{}
	for _, f := range res.Files {
		rows = append(rows, TemplateRow{
			Source:     f.Source,
			Output:     f.Output,
			Unresolved: f.Unresolved,
			Error:      errString(f.Err),
		})
	}
	return rows
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
