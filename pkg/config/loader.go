package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for configuration environment variables. A
// double underscore separates the section from the key:
// DOTPROFILE_WATCH__DEBOUNCE=1s sets watch.debounce.
const EnvPrefix = "DOTPROFILE_"

// Load builds the configuration from embedded defaults, the optional
// config file, the environment and finally overrides keyed by dotted path
// ("profiles.root"). A missing config file is not an error.
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load config from %s", configFile).
					WithDetail("path", configFile)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access %s", configFile)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k)
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	applyPlatformDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (c *Config) Validate() error {
	check := func(name string, ok bool, format string, args ...interface{}) error {
		if ok {
			return nil
		}
		return errors.Newf(errors.ErrConfigParse, "%s: %s", name, fmt.Sprintf(format, args...)).
			WithDetail("key", name)
	}

	checks := []error{
		check("apply.recency_window", c.Apply.RecencyWindow >= 0, "must not be negative"),
		check("apply.startup_timeout", c.Apply.StartupTimeout > 0, "must be positive"),
		check("watch.debounce", c.Watch.Debounce > 0, "must be positive"),
		check("watch.reapply_interval", c.Watch.ReapplyInterval >= 0, "must not be negative"),
		check("overlay.max_backups", c.Overlay.MaxBackups >= 1, "must be at least 1, got %d", c.Overlay.MaxBackups),
		check("overlay.backup_suffix", strings.HasPrefix(c.Overlay.BackupSuffix, ".") && len(c.Overlay.BackupSuffix) > 1,
			"must start with a dot, got %q", c.Overlay.BackupSuffix),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
