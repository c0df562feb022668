package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are printed.
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText per DetectFormat
	FormatAuto Format = iota
	// FormatTerminal is styled output for an interactive terminal
	FormatTerminal
	// FormatText is unstyled output for pipes, files and NO_COLOR users
	FormatText
	// FormatJSON prints one JSON document per command, for scripts
	FormatJSON
)

// Formats lists the values accepted by --format, in help order.
var Formats = []Format{FormatAuto, FormatTerminal, FormatText, FormatJSON}

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// aliases are accepted by ParseFormat but never printed.
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat reads a --format value, ignoring case.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("valid", "auto, term, text, json")
}

// DetectFormat resolves FormatAuto for w. Styling is used only when w is
// a terminal that can show color and NO_COLOR is unset; anything that is
// not an *os.File, such as a buffer, gets text.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if fd := f.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
