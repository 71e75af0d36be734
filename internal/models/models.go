package models

// OptionsFilters is the body of POST /api/options. Unset optional fields are
// left out of the JSON so the backend applies its own defaults.
type OptionsFilters struct {
	Ticker          string   `json:"ticker"`
	Expiration      string   `json:"expiration,omitempty"`
	MinVolume       *int     `json:"minVolume,omitempty"`
	MinOpenInterest *int     `json:"minOpenInterest,omitempty"`
	MaxBidAskSpread *float64 `json:"maxBidAskSpread,omitempty"`
	IncludeGreeks   *bool    `json:"includeGreeks,omitempty"`
}

// Option type selectors accepted by the screener
const (
	OptionTypeCalls = "calls"
	OptionTypePuts  = "puts"
	OptionTypeBoth  = "both"
)

// ScreenerFilters is the body of POST /api/screener
type ScreenerFilters struct {
	Tickers         []string `json:"tickers"`
	MinVolume       *int     `json:"minVolume,omitempty"`
	MinOpenInterest *int     `json:"minOpenInterest,omitempty"`
	MaxBidAskSpread *float64 `json:"maxBidAskSpread,omitempty"`
	OptionType      string   `json:"optionType,omitempty"` // "calls", "puts" or "both"
}

// OptionContract is a single row of an options chain as computed by the backend.
// Pointer fields are optional and render as N/A when absent.
type OptionContract struct {
	ContractSymbol      string   `json:"contractSymbol"`
	Strike              float64  `json:"strike"`
	LastPrice           float64  `json:"lastPrice"`
	Bid                 float64  `json:"bid"`
	Ask                 float64  `json:"ask"`
	Volume              int64    `json:"volume"`
	OpenInterest        int64    `json:"openInterest"`
	ImpliedVolatility   *float64 `json:"impliedVolatility,omitempty"`
	Delta               *float64 `json:"delta,omitempty"`
	BidAskSpread        *float64 `json:"bidAskSpread,omitempty"`
	BidAskSpreadPercent *float64 `json:"bidAskSpreadPercent,omitempty"`
	Moneyness           string   `json:"moneyness,omitempty"`
}

// AppliedFilters echoes the filters the backend actually applied
type AppliedFilters struct {
	MinVolume       int      `json:"minVolume"`
	MinOpenInterest int      `json:"minOpenInterest"`
	MaxBidAskSpread *float64 `json:"maxBidAskSpread,omitempty"`
}

// OptionsData is the response of POST /api/options
type OptionsData struct {
	Ticker               string           `json:"ticker"`
	CurrentPrice         float64          `json:"currentPrice"`
	Expiration           string           `json:"expiration"`
	AvailableExpirations []string         `json:"availableExpirations"`
	Calls                []OptionContract `json:"calls"`
	Puts                 []OptionContract `json:"puts"`
	Filters              AppliedFilters   `json:"filters"`
}

// ScreenerResult is one matching contract from POST /api/screener
type ScreenerResult struct {
	Ticker            string  `json:"ticker" csv:"Ticker"`
	Type              string  `json:"type" csv:"Type"` // "Call" or "Put"
	Expiration        string  `json:"expiration" csv:"Expiration"`
	Strike            float64 `json:"strike" csv:"Strike"`
	LastPrice         float64 `json:"lastPrice" csv:"Last"`
	Bid               float64 `json:"bid" csv:"Bid"`
	Ask               float64 `json:"ask" csv:"Ask"`
	Volume            int64   `json:"volume" csv:"Volume"`
	OpenInterest      int64   `json:"openInterest" csv:"OpenInterest"`
	ImpliedVolatility float64 `json:"impliedVolatility" csv:"IV"`
	CurrentPrice      float64 `json:"currentPrice" csv:"StockPrice"`
}

// CandlestickData is one daily bar from GET /api/historical-data/:ticker
type CandlestickData struct {
	Time  string  `json:"time" csv:"Date"` // YYYY-MM-DD
	Open  float64 `json:"open" csv:"Open"`
	High  float64 `json:"high" csv:"High"`
	Low   float64 `json:"low" csv:"Low"`
	Close float64 `json:"close" csv:"Close"`
}

// ExpirationsResponse is the response of GET /api/expirations/:ticker
type ExpirationsResponse struct {
	Expirations []string `json:"expirations"`
}

// ScreenerResponse is the response of POST /api/screener
type ScreenerResponse struct {
	Results []ScreenerResult `json:"results"`
}

// HistoricalDataResponse is the response of GET /api/historical-data/:ticker
type HistoricalDataResponse struct {
	Data []CandlestickData `json:"data"`
}

// ErrorResponse is the body of every non-2xx backend response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WatchlistSymbol is a row of the watchlist CSV file
type WatchlistSymbol struct {
	Symbol  string `json:"symbol" csv:"symbol"`
	Company string `json:"company" csv:"company"`
	Sector  string `json:"sector" csv:"sector"`
}
