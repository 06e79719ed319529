// Package config loads evbind settings.
//
// Settings are layered with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (EVBIND_*)  │
//	├─────────────────────────────┤
//	│  2. Config File (--config)  │  ← yaml, toml or json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Environment variables are the upper-cased key with dots replaced by
// underscores, e.g. EVBIND_LOG_LEVEL for log.level.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"github.com/dshills/evbind/internal/logging"
	"github.com/dshills/evbind/internal/report"
)

// Error is the class of configuration errors.
var Error = errs.Class("config")

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "EVBIND"

// Setting keys.
const (
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyLogFile      = "log.file"
	KeyBindStrict   = "bind.strict"
	KeyReportFormat = "report.format"
)

// FlagConfig is the name of the flag holding the config file path.
const FlagConfig = "config"

// flagKeys maps flag names to setting keys.
var flagKeys = map[string]string{
	"log-level":  KeyLogLevel,
	"log-format": KeyLogFormat,
	"log-file":   KeyLogFile,
	"strict":     KeyBindStrict,
	"format":     KeyReportFormat,
}

// Config is the complete evbind configuration.
type Config struct {
	Log    Log    `mapstructure:"log"`
	Bind   Bind   `mapstructure:"bind"`
	Report Report `mapstructure:"report"`
}

// Log configures the process logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Bind configures binding passes.
type Bind struct {
	// Strict rejects the whole pass when any binding error is found.
	Strict bool `mapstructure:"strict"`
}

// Report configures report output.
type Report struct {
	Format string `mapstructure:"format"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Log:    Log{Level: "info", Format: logging.FormatConsole},
		Report: Report{Format: string(report.FormatText)},
	}
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to a configuration file (yaml, toml or json)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-format", d.Log.Format, "log format (console, json)")
	fs.String("log-file", d.Log.File, "write logs to a rotated file instead of stderr")
	fs.Bool("strict", d.Bind.Strict, "reject the binding pass on any binding error")
	fs.StringP("format", "f", d.Report.Format, "report format (text, json, yaml, toml)")
}

// Load reads the configuration from defaults, the config file named by the
// config flag, the environment and fs, in increasing priority. Flags of fs
// that were not set on the command line do not override lower layers.
// A nil fs loads defaults, file-less, and the environment only.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, Error.Wrap(err)
				}
			}
		}

		if f := fs.Lookup(FlagConfig); f != nil && f.Value.String() != "" {
			v.SetConfigFile(os.ExpandEnv(f.Value.String()))
			if err := v.ReadInConfig(); err != nil {
				return Config{}, Error.New("reading %s: %v", v.ConfigFileUsed(), err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Error.Wrap(err)
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyBindStrict, d.Bind.Strict)
	v.SetDefault(KeyReportFormat, d.Report.Format)
}

// Validate checks every setting and reports all invalid ones at once.
func (c Config) Validate() error {
	var group errs.Group
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		group.Add(Error.New("%s: %v", KeyLogLevel, err))
	}
	switch c.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		group.Add(Error.New("%s: invalid log format %q (must be console or json)", KeyLogFormat, c.Log.Format))
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		group.Add(Error.New("%s: %v", KeyReportFormat, err))
	}
	return group.Err()
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.File = c.Log.File
	return lc
}

// ReportFormat returns the parsed report format, defaulting to text.
func (c Config) ReportFormat() report.Format {
	f, err := report.ParseFormat(c.Report.Format)
	if err != nil {
		return report.FormatText
	}
	return f
}
