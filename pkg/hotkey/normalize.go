package hotkey

import (
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
)

// Modifier is a canonical modifier key.
type Modifier int

// Canonical modifier order.
const (
	Control Modifier = iota
	Option
	Shift
	Command
)

var modifierNames = [...]string{
	Control: "ctrl",
	Option:  "opt",
	Shift:   "shift",
	Command: "cmd",
}

func (m Modifier) String() string { return modifierNames[m] }

var modifierAliases = map[string]Modifier{
	"control": Control,
	"ctrl":    Control,
	"option":  Option,
	"opt":     Option,
	"alt":     Option,
	"shift":   Shift,
	"command": Command,
	"cmd":     Command,
}

var namedKeys = map[string]string{
	"space":  "space",
	"tab":    "tab",
	"return": "return",
	"enter":  "enter",
	"escape": "escape",
	"esc":    "escape",
	"delete": "delete",
	"up":     "up",
	"down":   "down",
	"left":   "left",
	"right":  "right",
}

const punctuation = "`-=[]\\;',./"

// Shortcut is a parsed, canonical shortcut.
type Shortcut struct {
	Modifiers []Modifier
	Key       string
}

// String returns the canonical representation, e.g. "ctrl+cmd+1".
func (s Shortcut) String() string {
	parts := make([]string, 0, len(s.Modifiers)+1)
	for _, m := range s.Modifiers {
		parts = append(parts, m.String())
	}
	parts = append(parts, s.Key)
	return strings.Join(parts, "+")
}

// Has reports whether the shortcut uses modifier m.
func (s Shortcut) Has(m Modifier) bool {
	for _, have := range s.Modifiers {
		if have == m {
			return true
		}
	}
	return false
}

// Normalize parses a +-joined, case-insensitive shortcut. The result has
// modifiers in canonical order and exactly one key. Empty tokens, unknown
// tokens, repeated modifiers and anything other than one key are rejected
// with INVALID_SHORTCUT.
func Normalize(raw string) (Shortcut, error) {
	if strings.TrimSpace(raw) == "" {
		return Shortcut{}, invalid(raw, "shortcut is empty")
	}

	var seen [len(modifierNames)]bool
	var keys []string

	for _, token := range strings.Split(raw, "+") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return Shortcut{}, invalid(raw, "empty token")
		}
		if m, ok := modifierAliases[token]; ok {
			if seen[m] {
				return Shortcut{}, invalid(raw, "modifier "+m.String()+" repeated")
			}
			seen[m] = true
			continue
		}
		key, ok := canonicalKey(token)
		if !ok {
			return Shortcut{}, invalid(raw, "unknown key "+token)
		}
		keys = append(keys, key)
	}

	switch len(keys) {
	case 0:
		return Shortcut{}, invalid(raw, "no key, only modifiers")
	case 1:
	default:
		return Shortcut{}, invalid(raw, "more than one key: "+strings.Join(keys, ", "))
	}

	s := Shortcut{Key: keys[0]}
	for m := Control; m <= Command; m++ {
		if seen[m] {
			s.Modifiers = append(s.Modifiers, m)
		}
	}
	return s, nil
}

// Canonical is Normalize returning only the canonical string.
func Canonical(raw string) (string, error) {
	s, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

func canonicalKey(token string) (string, bool) {
	if named, ok := namedKeys[token]; ok {
		return named, true
	}
	if len(token) == 1 {
		c := token[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || strings.IndexByte(punctuation, c) >= 0 {
			return token, true
		}
		return "", false
	}
	if token[0] == 'f' {
		switch token[1:] {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
			return token, true
		}
	}
	return "", false
}

func invalid(raw, reason string) error {
	return errors.Newf(errors.ErrInvalidShortcut, "invalid shortcut %q: %s", raw, reason).
		WithDetail("shortcut", raw)
}
