package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the defaults file with every value
// commented out, ready to be saved as a starting config.toml.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsTOML())
}

// GenerateEffectiveContent renders cfg as TOML.
func GenerateEffectiveContent(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg.ToMap())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [apply], [watch]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
