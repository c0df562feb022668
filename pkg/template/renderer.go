package template

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/filesystem"
	"github.com/arthur-debert/dotprofile/pkg/logging"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// FileResult describes one rendered template.
type FileResult struct {
	Source     string
	Output     string
	Unresolved []string
	Err        error
}

// Result aggregates a render pass.
type Result struct {
	Files []FileResult
	// Skipped is true when the profile has no templates/home directory
	Skipped bool
	// VariablesErr is set when variables.json could not be used; the
	// templates were then rendered with the built-ins only
	VariablesErr error
}

// Rendered counts successfully written outputs.
func (r *Result) Rendered() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Errors returns the variables failure, if any, then the per-file failures.
func (r *Result) Errors() []error {
	var errs []error
	if r.VariablesErr != nil {
		errs = append(errs, r.VariablesErr)
	}
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Renderer materializes templates/home/** into home/** for a profile.
type Renderer struct {
	FS types.FS
	// Builtins are merged under the profile's variables.json values
	Builtins map[string]string
}

// NewRenderer returns a Renderer over fsys.
func NewRenderer(fsys types.FS, builtins map[string]string) *Renderer {
	return &Renderer{FS: fsys, Builtins: builtins}
}

// RenderTemplates renders every regular file below templates/home into the
// matching path below home. A missing templates/home is a no-op. Failures
// on one file are recorded and do not stop the others, and an unusable
// variables.json is recorded as well. The returned error is only set for a
// cancelled context or an unreadable templates tree.
func (r *Renderer) RenderTemplates(ctx context.Context, profileDir string) (*Result, error) {
	logger := logging.GetLogger("template").With().Str("profile", profileDir).Logger()
	result := &Result{}

	srcRoot := filepath.Join(profileDir, paths.TemplatesDirName, paths.HomeDirName)
	if _, err := r.FS.Stat(srcRoot); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("no templates/home, nothing to render")
			result.Skipped = true
			return result, nil
		}
		return result, errors.Wrap(err, errors.ErrIOFailure, "reading templates directory").
			WithDetail("path", srcRoot)
	}

	fileVars, err := LoadVariables(r.FS, profileDir)
	if err != nil {
		logger.Warn().Err(err).Msg("variables.json unusable, rendering with built-ins only")
		if !errors.IsErrorCode(err, errors.ErrTemplateRender) {
			err = errors.Wrap(err, errors.ErrTemplateRender, "loading variables")
		}
		result.VariablesErr = err
		fileVars = nil
	}
	vars := Merge(r.Builtins, fileVars)

	dstRoot := filepath.Join(profileDir, paths.HomeDirName)
	walkErr := filesystem.WalkFiles(r.FS, srcRoot, func(path, rel string, info os.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		fr := r.renderFile(path, filepath.Join(dstRoot, rel), info.Mode().Perm(), vars)
		if fr.Err != nil {
			logger.Warn().Err(fr.Err).Str("template", rel).Msg("template skipped")
		} else if len(fr.Unresolved) > 0 {
			logger.Debug().Str("template", rel).Strs("unresolved", fr.Unresolved).Msg("tokens left in place")
		}
		result.Files = append(result.Files, fr)
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return result, errors.Wrap(ctx.Err(), errors.ErrCancelled, "rendering cancelled")
		}
		return result, errors.Wrap(walkErr, errors.ErrIOFailure, "walking templates").
			WithDetail("path", srcRoot)
	}

	logger.Info().Int("rendered", result.Rendered()).Int("failed", len(result.Errors())).Msg("templates rendered")
	return result, nil
}

func (r *Renderer) renderFile(src, dst string, perm os.FileMode, vars map[string]string) FileResult {
	fr := FileResult{Source: src, Output: dst}

	data, err := r.FS.ReadFile(src)
	if err != nil {
		fr.Err = renderErr(err, src, dst, "reading template")
		return fr
	}

	text := string(data)
	rendered := Render(text, vars)
	for _, name := range Tokens(text) {
		if _, ok := vars[name]; !ok {
			fr.Unresolved = append(fr.Unresolved, name)
		}
	}

	if err := r.FS.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		fr.Err = renderErr(err, src, dst, "creating output directory")
		return fr
	}
	if perm == 0 {
		perm = 0644
	}
	if err := filesystem.WriteFileAtomic(r.FS, dst, []byte(rendered), perm); err != nil {
		fr.Err = renderErr(err, src, dst, "writing rendered output")
	}
	return fr
}

func renderErr(err error, src, dst, msg string) error {
	return errors.Wrap(err, errors.ErrTemplateRender, msg).
		WithDetail("source", src).
		WithDetail("destination", dst)
}
