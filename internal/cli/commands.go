package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/config"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/screener"
	"github.com/jwaldner/options-screener/internal/services"
	"github.com/jwaldner/options-screener/internal/utils"
)

func newOptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options TICKER",
		Short: "Print the calls and puts of one expiration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := models.OptionsFilters{Ticker: services.NormalizeTicker(args[0])}
			if filters.Ticker == "" {
				return services.ErrTickerRequired
			}

			flags := cmd.Flags()
			if flags.Changed("expiration") {
				exp, _ := flags.GetString("expiration")
				if _, err := utils.ParseDate(exp); err != nil {
					return services.ErrInvalidExpiration
				}
				filters.Expiration = exp
			}
			if flags.Changed("min-volume") {
				v, _ := flags.GetInt("min-volume")
				filters.MinVolume = &v
			}
			if flags.Changed("min-oi") {
				v, _ := flags.GetInt("min-oi")
				filters.MinOpenInterest = &v
			}
			if flags.Changed("max-spread") {
				v, _ := flags.GetFloat64("max-spread")
				filters.MaxBidAskSpread = &v
			}
			if flags.Changed("greeks") {
				v, _ := flags.GetBool("greeks")
				filters.IncludeGreeks = &v
			}

			data, err := a.api.FetchOptionsData(cmd.Context(), filters)
			if err != nil {
				return userError("Error", err)
			}

			if a.asJSON {
				return a.printJSON(data)
			}
			renderOptions(a.out, data)
			return nil
		},
	}

	cmd.Flags().String("expiration", "", "Expiration date (YYYY-MM-DD), defaults to the backend's nearest")
	cmd.Flags().Int("min-volume", 0, "Minimum contract volume")
	cmd.Flags().Int("min-oi", 0, "Minimum open interest")
	cmd.Flags().Float64("max-spread", 0, "Maximum bid-ask spread in percent")
	cmd.Flags().Bool("greeks", false, "Ask the backend to include Greeks")
	return cmd
}

func newExpirationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expirations TICKER",
		Short: "List the available expiration dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := services.NormalizeTicker(args[0])
			if ticker == "" {
				return services.ErrTickerRequired
			}

			expirations, err := a.api.FetchExpirations(cmd.Context(), ticker)
			if err != nil {
				return userError("Error", err)
			}

			if a.asJSON {
				return a.printJSON(models.ExpirationsResponse{Expirations: expirations})
			}
			renderExpirations(a.out, ticker, expirations)
			return nil
		},
	}
}

func newScreenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen TICKER...",
		Short: "Screen several tickers and print the matches grouped by ticker",
		Long:  `Screen several tickers. Tickers may be given as separate arguments or comma separated. With --csv the results are written to a file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := &services.ScreenerForm{Tickers: services.NewTickerList()}
			for _, arg := range args {
				form.Tickers.AddAll(arg)
			}

			flags := cmd.Flags()
			form.MinVolume, _ = flags.GetInt("min-volume")
			form.MinOpenInterest, _ = flags.GetInt("min-oi")
			form.MaxBidAskSpread, _ = flags.GetFloat64("max-spread")
			optionType, _ := flags.GetString("type")
			form.OptionType = strings.ToLower(strings.TrimSpace(optionType))

			if err := form.Validate(); err != nil {
				return err
			}

			results, view, err := screener.NewRunner(a.api).Run(cmd.Context(), form.Filters())
			if err != nil {
				return userError("Screener error", err)
			}

			if csvPath, _ := flags.GetString("csv"); csvPath != "" {
				return writeCSVFile(a, csvPath, form.Tickers.Len(), results)
			}
			if a.asJSON {
				return a.printJSON(models.ScreenerResponse{Results: results})
			}
			renderScreener(a.out, view)
			return nil
		},
	}

	cmd.Flags().Int("min-volume", a.cfg.Screener.MinVolume, "Minimum contract volume")
	cmd.Flags().Int("min-oi", a.cfg.Screener.MinOpenInterest, "Minimum open interest")
	cmd.Flags().Float64("max-spread", a.cfg.Screener.MaxBidAskSpread, "Maximum bid-ask spread in percent")
	cmd.Flags().String("type", a.cfg.Screener.OptionType, "Option type: calls, puts or both")
	cmd.Flags().String("csv", "", "Write results to this CSV file, or to a generated name inside it when it is a directory")
	return cmd
}

// writeCSVFile exports to path, or to a configured file name when path is a directory
func writeCSVFile(a *app, path string, tickerCount int, results []models.ScreenerResult) error {
	dir, name := "", path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		dir = path
		name = config.FormatCSVFilename(a.cfg.CSV.FilenameFormat, time.Now(), tickerCount)
	}

	written, err := screener.ExportToCsv(dir, name, results)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %d results to %s\n", len(results), written)
	return nil
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history TICKER",
		Short: "Print the recent daily closes with summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := services.NormalizeTicker(args[0])
			if ticker == "" {
				return services.ErrTickerRequired
			}

			bars, err := a.api.FetchHistoricalData(cmd.Context(), ticker)
			if err != nil {
				return userError("Error", err)
			}

			if a.asJSON {
				return a.printJSON(models.HistoricalDataResponse{Data: bars})
			}

			summary, err := chart.Summarize(bars)
			if err != nil {
				return err
			}
			renderHistory(a.out, ticker, bars, summary)
			return nil
		},
	}
}
