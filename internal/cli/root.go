// Package cli implements the asrar command line.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/daemon"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// skipConfigLoad marks commands that must run even when the config file is
// broken, so that it can be rewritten.
const skipConfigLoad = "asrar/skip-config-load"

var (
	cfgPath string
	verbose bool
	jsonOut bool
	variant string

	cfg    daemon.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "asrar",
	Short: "Abjad numerology and planetary timing",
	Long: `asrar computes abjad letter values of Arabic names, reduces them to
core numbers and elements, resolves planetary hours, and scores elemental
compatibility and balance.

Configuration is read from ~/.asrar/config.toml (or $ASRAR_HOME).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cmd.Annotations[skipConfigLoad] != "" {
			cfg = daemon.DefaultConfig()
		} else if cfg, err = daemon.Load(cfgPath); err != nil {
			return err
		}

		level, _ := cfg.LogLevel()
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default: ~/.asrar/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "Letter table (default from config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ─── Shared Helpers ─────────────────────────────────────────────────────────

func newCalculator() (*calculator.Calculator, error) {
	return daemon.NewCalculator(cfg, logger)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseWeekday accepts 0–6 (Sunday = 0) or an English day name.
func parseWeekday(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, domain.CheckRange("weekday", n, 0, 6)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return int(d), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", domain.ErrInvalidInput, s)
}

func parseBirth(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: birth must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return &t, nil
}

func formatChain(chain []int) string {
	parts := make([]string, len(chain))
	for i, n := range chain {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " → ")
}
