package models

// Candle is one OHLCV row of a historical series.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoricalSeries is the ordered price history for a symbol.
type HistoricalSeries struct {
	Data       []Candle `json:"data"`
	Period     string   `json:"period"`
	DataPoints int      `json:"data_points"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}
