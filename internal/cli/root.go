// Package cli is the terminal front-end of the options screener
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/config"
	"github.com/jwaldner/options-screener/internal/logger"
)

// app carries what every subcommand needs
type app struct {
	cfg     *config.Config
	out     io.Writer
	api     api.ScreenerAPI
	perf    *api.PerformanceWrapper
	apiURL  string
	timeout time.Duration
	asJSON  bool
	level   string
}

// NewRootCmd builds the command tree. Output goes to out.
func NewRootCmd(cfg *config.Config, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out}

	rootCmd := &cobra.Command{
		Use:           "screener",
		Short:         "Options chains and multi-ticker screening from the terminal",
		Long:          `screener queries the options backend and prints options chains, expirations, screener results and price history as tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.InitWithConfig(a.level, ""); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			a.perf = api.NewPerformanceWrapper(api.NewClient(a.apiURL, a.timeout), cfg.SlowRequestThreshold())
			a.api = a.perf
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.perf != nil {
				a.perf.Close()
			}
		},
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", cfg.API.BaseURL, "Base URL of the options backend")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", cfg.Timeout(), "Backend request timeout")
	rootCmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print the raw JSON response instead of tables")
	rootCmd.PersistentFlags().StringVar(&a.level, "log-level", "warn", "Log level: error, warn, info, debug or verbose")

	rootCmd.AddCommand(
		newOptionsCmd(a),
		newExpirationsCmd(a),
		newScreenCmd(a),
		newHistoryCmd(a),
	)

	return rootCmd
}

// printJSON writes v as indented JSON
func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("printJSON: %w", err)
	}
	return nil
}

// userError turns a backend failure into the message the user should see
func userError(prefix string, err error) error {
	log.Debugf("backend error: %v", err)
	if prefix == "" {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	return fmt.Errorf("%s: %s", prefix, api.UserMessage(err))
}
