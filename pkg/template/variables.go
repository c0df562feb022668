package template

import (
	"bytes"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/arthur-debert/dotprofile/pkg/paths"
	"github.com/arthur-debert/dotprofile/pkg/types"
)

// LoadVariables reads variables.json from the profile root and stringifies
// every value. A missing file yields an empty map.
func LoadVariables(fsys types.FS, profileDir string) (map[string]string, error) {
	path := filepath.Join(profileDir, paths.VariablesFile)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrIOFailure, "reading variables").
			WithDetail("path", path)
	}

	vars, err := ParseVariables(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateRender, "parsing variables.json").
			WithDetail("path", path)
	}
	return vars, nil
}

// ParseVariables decodes a JSON object and stringifies its values: strings
// are used as is, numbers keep their written form, booleans become
// true/false, null becomes empty and arrays or objects become compact JSON.
func ParseVariables(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(raw))
	for k, v := range raw {
		s, err := Stringify(v)
		if err != nil {
			return nil, err
		}
		vars[k] = s
	}
	return vars, nil
}

// Stringify converts a decoded JSON value into its substitution text.
func Stringify(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// BuiltinVariables returns the variables every profile can use without
// declaring them.
func BuiltinVariables(d types.ProfileDescriptor) map[string]string {
	vars := map[string]string{
		"PROFILE": d.DisplayName,
		"SHELL":   os.Getenv("SHELL"),
	}
	if home, err := paths.GetHomeDirectory(); err == nil {
		vars["HOME"] = home
	}
	if u, err := user.Current(); err == nil {
		vars["USER"] = u.Username
	} else {
		vars["USER"] = os.Getenv("USER")
	}
	if host, err := os.Hostname(); err == nil {
		vars["HOSTNAME"] = host
	}
	return vars
}

// Merge layers maps left to right; later keys win.
func Merge(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
