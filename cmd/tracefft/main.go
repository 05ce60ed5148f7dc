// Command tracefft prints the frequency spectrum of time-domain trace files.
//
// Usage:
//
//	tracefft [flags] FILE.txt...
//
// Each file is read as tab-delimited text with "%" comments; the first
// column is the x axis (time or stage position) and the second the signal.
// Settings can also come from TRACEFFT_* environment variables or a
// tracefft.yaml file in the working directory.
//
// Examples:
//
//	tracefft scan.txt
//	tracefft --unit mm --max-freq 5 scan1.txt scan2.txt
//	tracefft --format json --summary scan.txt
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-trace/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	var configFile string

	cmd := &cobra.Command{
		Use:   "tracefft [flags] FILE...",
		Short: "Compute the frequency spectrum of time-domain trace files",
		Long: `tracefft reads delimited trace files (x in column 0, signal in column 1),
transforms the signal and prints the non-negative half of its spectrum.
Only files ending in .txt are processed; others are skipped with a warning.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}

			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Level())

			return run(cmd.OutOrStdout(), args, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ./tracefft.{yaml,toml,json} if present)")
	addSettingFlags(cmd.Flags())

	return cmd
}

// addSettingFlags registers one flag per config key. Flag names equal the
// viper keys so BindPFlags maps them directly.
func addSettingFlags(f *pflag.FlagSet) {
	f.String(config.KeyComments, "%", "comment marker; text after it on a line is ignored")
	f.String(config.KeyDelimiter, `\t`, `field delimiter (\t, tab, comma, space, whitespace or literal text)`)
	f.Bool(config.KeyTranspose, true, "read x and y from columns 0 and 1; false reads them from the first two data lines")
	f.String(config.KeyUnit, "", "x-axis unit for calibration: OD, mm, t or ps")
	f.String(config.KeyFormat, config.FormatTable, "output format: table, csv or json")
	f.Float64(config.KeyMaxFreq, 0, "drop bins above this frequency (0 keeps all)")
	f.Bool(config.KeySummary, false, "append peak/centroid/bandwidth statistics")
	f.Bool(config.KeyFirstInterval, false, "derive the sample spacing from the first two x values only")
	f.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
