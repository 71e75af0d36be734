package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/jwaldner/options-screener/internal/chart"
	"github.com/jwaldner/options-screener/internal/format"
	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/screener"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func renderOptions(w io.Writer, data *models.OptionsData) {
	fmt.Fprintf(w, "%s  Current Price: %s  Expiration: %s\n", data.Ticker, format.Price(data.CurrentPrice), format.Expiration(data.Expiration))
	renderOptionsTable(w, "Calls", data.Calls)
	renderOptionsTable(w, "Puts", data.Puts)
}

func renderOptionsTable(w io.Writer, title string, rows []models.OptionContract) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, format.EmptyTable(title))
		return
	}

	table := newTable(w, []string{"Contract", "Strike", "Last", "Bid", "Ask", "Spread", "Volume", "OI", "IV", "Delta", "Moneyness"})
	for _, opt := range rows {
		table.Append([]string{
			opt.ContractSymbol,
			format.Dollars(opt.Strike),
			format.Dollars(opt.LastPrice),
			format.Dollars(opt.Bid),
			format.Dollars(opt.Ask),
			format.Spread(opt.BidAskSpread, opt.BidAskSpreadPercent),
			format.Integer(opt.Volume),
			format.Integer(opt.OpenInterest),
			format.IV(opt.ImpliedVolatility),
			format.Delta(opt.Delta),
			format.MoneynessLabel(opt.Moneyness),
		})
	}
	table.Render()
}

func renderExpirations(w io.Writer, ticker string, expirations []string) {
	if len(expirations) == 0 {
		fmt.Fprintf(w, "No expirations found for %s\n", ticker)
		return
	}

	table := newTable(w, []string{"Expiration", "Date"})
	for _, exp := range expirations {
		table.Append([]string{format.Expiration(exp), exp})
	}
	table.Render()
}

func renderScreener(w io.Writer, view *screener.View) {
	if view.Empty() {
		fmt.Fprintln(w, screener.NoResultsMessage)
		return
	}

	fmt.Fprintln(w, view.Summary())
	for _, group := range view.Groups {
		fmt.Fprintf(w, "\n%s\n", group.Header())

		table := newTable(w, []string{"Type", "Expiration", "Strike", "Last", "Bid", "Ask", "Vol", "OI", "IV", "Stock Price"})
		for _, r := range group.Results {
			table.Append([]string{
				r.Type,
				format.Expiration(r.Expiration),
				format.Dollars(r.Strike),
				format.Dollars(r.LastPrice),
				format.Dollars(r.Bid),
				format.Dollars(r.Ask),
				format.Integer(r.Volume),
				format.Integer(r.OpenInterest),
				format.Percent(r.ImpliedVolatility),
				format.Dollars(r.CurrentPrice),
			})
		}
		table.Render()
	}
}

func renderHistory(w io.Writer, ticker string, bars []models.CandlestickData, summary chart.Summary) {
	if summary.Empty {
		fmt.Fprintln(w, chart.EmptyMessage)
		return
	}

	fmt.Fprintln(w, chart.Title(ticker))
	fmt.Fprintf(w, "Last %s  Change %s (%s)  Range %s - %s  Mean %s  StdDev %.2f\n",
		format.Price(summary.Last),
		format.Price(summary.Change),
		format.Percent(summary.ChangePercent),
		format.Price(summary.Min),
		format.Price(summary.Max),
		format.Price(summary.Mean),
		summary.StdDev,
	)

	table := newTable(w, []string{"Date", "Open", "High", "Low", "Close"})
	for _, bar := range bars {
		table.Append([]string{
			format.Expiration(bar.Time),
			format.Price(bar.Open),
			format.Price(bar.High),
			format.Price(bar.Low),
			format.Price(bar.Close),
		})
	}
	table.Render()
}
