// Package config loads bridge settings from an optional YAML file and
// GDBRIDGE_* environment variables.
package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/godot-bridge/errors"
	"github.com/wippyai/godot-bridge/lifecycle"
)

// EnvPrefix prefixes every environment override, e.g. GDBRIDGE_LOG_LEVEL.
const EnvPrefix = "GDBRIDGE"

// FileEnv names the variable holding an explicit config file path.
const FileEnv = "GDBRIDGE_CONFIG"

// Config holds bridge settings.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Variant   VariantConfig   `mapstructure:"variant" yaml:"variant"`
	Extension ExtensionConfig `mapstructure:"extension" yaml:"extension"`
}

// LogConfig controls the zap logger installed by the entry point.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
	// HostSink forwards warnings and errors to the host's print functions.
	HostSink bool `mapstructure:"host_sink" yaml:"host_sink"`
}

// VariantConfig controls the Variant bridge.
type VariantConfig struct {
	// Size is the native Variant size in bytes. Only 24 (single precision)
	// is accepted by the layout check.
	Size int `mapstructure:"size" yaml:"size"`
	// DisableDestroy suppresses native Variant destruction. Diagnostic only.
	DisableDestroy bool `mapstructure:"disable_destroy" yaml:"disable_destroy"`
}

// ExtensionConfig controls entry point registration.
type ExtensionConfig struct {
	MinimumLevel string `mapstructure:"minimum_level" yaml:"minimum_level"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.host_sink", true)
	v.SetDefault("variant.size", 24)
	v.SetDefault("variant.disable_destroy", false)
	v.SetDefault("extension.minimum_level", "scene")
}

// Default returns the built-in settings.
func Default() Config {
	v := viper.New()
	defaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration. An explicit GDBRIDGE_CONFIG file must exist;
// otherwise gdbridge.yaml in the working directory is read when present.
func Load() (Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv(FileEnv)
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("gdbridge")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !stderrors.As(err, &notFound) {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that cannot be checked by type alone.
func (c Config) Validate() error {
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	if _, err := c.MinimumLevel(); err != nil {
		return err
	}
	if c.Variant.Size <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, "variant.size must be positive")
	}
	return nil
}

// ZapLevel parses log.level.
func (c Config) ZapLevel() (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}
	return l, nil
}

// MinimumLevel parses extension.minimum_level.
func (c Config) MinimumLevel() (lifecycle.Level, error) {
	l, err := lifecycle.LevelByName(strings.ToLower(c.Extension.MinimumLevel))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "extension.minimum_level")
	}
	return l, nil
}
