// Package config loads tracefft settings from flags, TRACEFFT_* environment
// variables and an optional tracefft.{yaml,toml,json} file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-trace/data/reader"
)

// Keys double as flag names. Environment variables use the TRACEFFT_ prefix
// with dashes replaced by underscores, e.g. TRACEFFT_MAX_FREQ.
const (
	KeyComments      = "comments"
	KeyDelimiter     = "delimiter"
	KeyTranspose     = "transpose"
	KeyUnit          = "unit"
	KeyFormat        = "format"
	KeyMaxFreq       = "max-freq"
	KeySummary       = "summary"
	KeyFirstInterval = "first-interval"
	KeyLogLevel      = "log-level"

	EnvPrefix  = "TRACEFFT"
	configName = "tracefft"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// ReaderContext identifies the command in reader errors.
const ReaderContext = "tracefft"

var ErrInvalid = errors.New("config: invalid value")

// Config holds resolved command settings.
type Config struct {
	CommentMarker string
	Delimiter     string
	Transpose     bool
	Unit          string
	Format        string
	MaxFreq       float64
	Summary       bool
	FirstInterval bool
	LogLevel      string
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyComments, "%")
	v.SetDefault(KeyDelimiter, `\t`)
	v.SetDefault(KeyTranspose, true)
	v.SetDefault(KeyUnit, "")
	v.SetDefault(KeyFormat, FormatTable)
	v.SetDefault(KeyMaxFreq, 0.0)
	v.SetDefault(KeySummary, false)
	v.SetDefault(KeyFirstInterval, false)
	v.SetDefault(KeyLogLevel, "info")
}

// Load resolves the configuration from v. When configFile is empty a
// tracefft config file in the working directory is used if present.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
		}
	}

	cfg := Config{
		CommentMarker: v.GetString(KeyComments),
		Delimiter:     UnescapeDelimiter(v.GetString(KeyDelimiter)),
		Transpose:     v.GetBool(KeyTranspose),
		Unit:          v.GetString(KeyUnit),
		Format:        strings.ToLower(v.GetString(KeyFormat)),
		MaxFreq:       v.GetFloat64(KeyMaxFreq),
		Summary:       v.GetBool(KeySummary),
		FirstInterval: v.GetBool(KeyFirstInterval),
		LogLevel:      v.GetString(KeyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the enumerated and numeric settings.
func (c Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("%w: format %q (want table, csv or json)", ErrInvalid, c.Format)
	}

	if c.MaxFreq < 0 {
		return fmt.Errorf("%w: max-freq must be >= 0, got %v", ErrInvalid, c.MaxFreq)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level %q", ErrInvalid, c.LogLevel)
	}

	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}

	return lvl
}

// ReaderConfig maps the settings onto a reader configuration.
func (c Config) ReaderConfig() reader.Config {
	return reader.Config{
		CommentMarker: c.CommentMarker,
		Delimiter:     c.Delimiter,
		Transpose:     c.Transpose,
		Context:       ReaderContext,
	}
}

// UnescapeDelimiter turns the textual forms accepted on the command line into
// the delimiter string: Go escapes such as `\t`, the names "tab", "comma"
// and "space", and "whitespace" for any run of whitespace.
func UnescapeDelimiter(s string) string {
	switch strings.ToLower(s) {
	case "tab":
		return "\t"
	case "comma":
		return ","
	case "space":
		return " "
	case "whitespace":
		return ""
	}

	if strings.Contains(s, `\`) {
		if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
			return u
		}
	}

	return s
}
