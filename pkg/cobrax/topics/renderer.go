package topics

import "github.com/charmbracelet/glamour"

// Renderer formats topic content by file extension.
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer returns content untouched.
type PlainRenderer struct{}

func (PlainRenderer) Render(content, _ string) string { return content }

// GlamourRenderer renders markdown topics for the terminal.
type GlamourRenderer struct {
	// Style is a glamour style path; empty or "auto" detects the background.
	Style string
	Width int
}

func (r GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	var opts []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		opts = append(opts, glamour.WithStylePath(r.Style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
