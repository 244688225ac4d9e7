// Package config loads the payment builder settings from defaults, config.yaml,
// PAYMENT_BUILDER_* environment variables and command-line flags using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "PAYMENT_BUILDER"

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig holds the input field separator.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ParseConfig holds the normalizer error policy.
type ParseConfig struct {
	Policy string `mapstructure:"policy" yaml:"policy"`
}

// InputConfig describes where batch input files are found.
type InputConfig struct {
	Directory  string   `mapstructure:"directory" yaml:"directory"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// OutputConfig describes where generated messages are written.
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Suffix    string `mapstructure:"suffix" yaml:"suffix"`
}

// BatchConfig holds directory processing settings. Zero workers means one per CPU.
type BatchConfig struct {
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Report  string `mapstructure:"report" yaml:"report"`
}

// Config is the complete application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Parse  ParseConfig  `mapstructure:"parse" yaml:"parse"`
	Input  InputConfig  `mapstructure:"input" yaml:"input"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Batch  BatchConfig  `mapstructure:"batch" yaml:"batch"`
}

// FlagKeys maps command-line flag names to the configuration keys they override.
var FlagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"delimiter":  "csv.delimiter",
	"policy":     "parse.policy",
	"workers":    "batch.workers",
	"report":     "batch.report",
}

// Load builds the configuration with the precedence defaults, config file, environment,
// then flags. An explicit configFile must exist; otherwise config.yaml is searched for
// in $HOME/.payment-builder, .payment-builder and the working directory, and may be
// absent. Only flags listed in FlagKeys and present in flags are bound.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.payment-builder")
		v.AddConfigPath(".payment-builder")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// bindFlags binds the FlagKeys flags found in flags. Viper only lets a flag win
// over the environment when the user changed it.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// setDefaults registers every key so that AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)

	v.SetDefault("csv.delimiter", normalizer.DefaultDelimiter)
	v.SetDefault("parse.policy", normalizer.PolicyStrict.String())

	v.SetDefault("input.directory", "input")
	v.SetDefault("input.extensions", []string{".csv"})

	v.SetDefault("output.directory", "output")
	v.SetDefault("output.suffix", "_pain013.xml")

	v.SetDefault("batch.workers", 0)
	v.SetDefault("batch.report", "")
}

// validateConfig rejects values the container cannot be built from.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if !logging.ValidFormat(config.Log.Format) {
		return fmt.Errorf("invalid log format: %s (must be '%s' or '%s')", config.Log.Format, logging.FormatText, logging.FormatJSON)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if _, err := normalizer.ParsePolicy(config.Parse.Policy); err != nil {
		return err
	}

	if len(config.Input.Extensions) == 0 {
		return fmt.Errorf("input.extensions must list at least one extension")
	}
	for _, ext := range config.Input.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("input extension must start with '.', got: %s", ext)
		}
	}

	if config.Output.Suffix == "" {
		return fmt.Errorf("output.suffix cannot be empty")
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers cannot be negative, got: %d", config.Batch.Workers)
	}

	return nil
}

// Policy returns the parsed error policy. Config values are validated on load, so an
// invalid policy only occurs for hand-built configs and falls back to strict.
func (c *Config) Policy() normalizer.Policy {
	p, err := normalizer.ParsePolicy(c.Parse.Policy)
	if err != nil {
		return normalizer.PolicyStrict
	}
	return p
}

// DelimiterRune returns the configured delimiter as a rune for CSV writers.
func (c *Config) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return []rune(normalizer.DefaultDelimiter)[0]
	}
	return []rune(c.CSV.Delimiter)[0]
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
