// Package chart prepares historical bars for the price chart
package chart

import (
	"fmt"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/models"
	"github.com/jwaldner/options-screener/internal/utils"
)

// EmptyMessage is shown in place of a chart with no data
const EmptyMessage = "No chart data available"

// Height of the chart in pixels
const Height = 400

// BusinessDay is the lightweight-charts date form of a point's time
type BusinessDay struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Point is one value of the area series
type Point struct {
	Time  BusinessDay `json:"time"`
	Value float64     `json:"value"`
}

// Series is the close-price line of a ticker
type Series struct {
	Ticker  string  `json:"ticker"`
	Points  []Point `json:"points"`
	Skipped int     `json:"skipped"`
}

// Title is the heading above the chart
func Title(ticker string) string {
	return fmt.Sprintf("%s Price Chart (30 Days)", ticker)
}

// BuildSeries converts daily bars into area series points of their close.
// Bars with an unparsable time are skipped and counted.
func BuildSeries(ticker string, data []models.CandlestickData) Series {
	series := Series{Ticker: ticker, Points: make([]Point, 0, len(data))}
	for _, bar := range data {
		t, err := utils.ParseDate(bar.Time)
		if err != nil {
			series.Skipped++
			continue
		}
		series.Points = append(series.Points, Point{
			Time:  BusinessDay{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
			Value: bar.Close,
		})
	}

	if series.Skipped > 0 {
		log.WithFields(log.Fields{
			"ticker":  ticker,
			"skipped": series.Skipped,
		}).Warn("⚠️ Skipped bars with invalid dates")
	}

	return series
}

// Empty reports whether there is nothing to draw
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Summary describes the close prices of a series
type Summary struct {
	Empty         bool    `json:"empty"`
	First         float64 `json:"first"`
	Last          float64 `json:"last"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"stdDev"`
}

// Closes returns the values of the plotted points
func (s Series) Closes() []float64 {
	closes := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		closes = append(closes, p.Value)
	}
	return closes
}

// Summarize computes close price statistics over the bars
func Summarize(data []models.CandlestickData) (Summary, error) {
	closes := make([]float64, 0, len(data))
	for _, bar := range data {
		closes = append(closes, bar.Close)
	}
	return summarizeCloses(closes)
}

func summarizeCloses(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{Empty: true}, nil
	}
	closes := stats.Float64Data(values)

	min, err := stats.Min(closes)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: failed to calculate min: %w", err)
	}

	max, err := stats.Max(closes)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: failed to calculate max: %w", err)
	}

	mean, err := stats.Mean(closes)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: failed to calculate mean: %w", err)
	}

	sd, err := stats.StandardDeviation(closes)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: failed to calculate the standard deviation: %w", err)
	}

	summary := Summary{
		First:  closes[0],
		Last:   closes[len(closes)-1],
		Min:    min,
		Max:    max,
		Mean:   mean,
		StdDev: sd,
	}
	summary.Change = summary.Last - summary.First
	if summary.First != 0 {
		summary.ChangePercent = summary.Change / summary.First * 100
	}

	return summary, nil
}

// Options mirrors the lightweight-charts chart and area series options
type Options struct {
	Height     int               `json:"height"`
	Layout     LayoutOptions     `json:"layout"`
	Grid       GridOptions       `json:"grid"`
	Crosshair  CrosshairOptions  `json:"crosshair"`
	PriceScale ScaleOptions      `json:"rightPriceScale"`
	TimeScale  TimeScaleOptions  `json:"timeScale"`
	Area       AreaSeriesOptions `json:"-"`
}

type LayoutOptions struct {
	Background struct {
		Color string `json:"color"`
	} `json:"background"`
	TextColor string `json:"textColor"`
}

type LineColor struct {
	Color string `json:"color"`
}

type GridOptions struct {
	VertLines LineColor `json:"vertLines"`
	HorzLines LineColor `json:"horzLines"`
}

type CrosshairOptions struct {
	Mode int `json:"mode"`
}

type ScaleOptions struct {
	BorderColor string `json:"borderColor"`
}

type TimeScaleOptions struct {
	BorderColor    string `json:"borderColor"`
	TimeVisible    bool   `json:"timeVisible"`
	SecondsVisible bool   `json:"secondsVisible"`
}

type AreaSeriesOptions struct {
	TopColor    string `json:"topColor"`
	BottomColor string `json:"bottomColor"`
	LineColor   string `json:"lineColor"`
	LineWidth   int    `json:"lineWidth"`
}

// DefaultOptions is the chart styling used by the options page
func DefaultOptions() Options {
	opts := Options{
		Height:     Height,
		Grid:       GridOptions{VertLines: LineColor{"#f0f0f0"}, HorzLines: LineColor{"#f0f0f0"}},
		Crosshair:  CrosshairOptions{Mode: 1},
		PriceScale: ScaleOptions{BorderColor: "#ddd"},
		TimeScale:  TimeScaleOptions{BorderColor: "#ddd", TimeVisible: true},
		Area: AreaSeriesOptions{
			TopColor:    "rgba(0, 123, 255, 0.3)",
			BottomColor: "rgba(0, 123, 255, 0.0)",
			LineColor:   "#007bff",
			LineWidth:   2,
		},
	}
	opts.Layout.Background.Color = "#ffffff"
	opts.Layout.TextColor = "#333"
	return opts
}

// Payload is everything the page script needs to draw the chart
type Payload struct {
	Title   string            `json:"title"`
	Options Options           `json:"options"`
	Area    AreaSeriesOptions `json:"area"`
	Data    []Point           `json:"data"`
	Summary Summary           `json:"summary"`
}

// NewPayload builds the chart payload for a ticker's bars
func NewPayload(ticker string, data []models.CandlestickData) (*Payload, error) {
	series := BuildSeries(ticker, data)
	summary, err := summarizeCloses(series.Closes())
	if err != nil {
		return nil, fmt.Errorf("NewPayload: %w", err)
	}

	opts := DefaultOptions()
	return &Payload{
		Title:   Title(ticker),
		Options: opts,
		Area:    opts.Area,
		Data:    series.Points,
		Summary: summary,
	}, nil
}
