package template

import (
	"regexp"
)

// tokenPattern matches {{name}} where name is anything up to the first
// closing braces on the same line. Names are looked up exactly as written.
var tokenPattern = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Render replaces every {{name}} token that has a value in vars. Unknown
// tokens are kept byte for byte.
func Render(text string, vars map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return token
	})
}

// Tokens lists the variable names referenced by text, in order of first
// appearance.
func Tokens(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
