package models

// TechnicalIndicators holds the most recent computed indicator values for a
// symbol. All computation happens upstream; these are display-only.
type TechnicalIndicators struct {
	RSI14          float64 `json:"rsi_14"`
	MACD           float64 `json:"macd"`
	SMA20          float64 `json:"sma_20"`
	SMA50          float64 `json:"sma_50"`
	BollingerUpper float64 `json:"bollinger_upper"`
	BollingerLower float64 `json:"bollinger_lower"`
	VolumeSMA      float64 `json:"volume_sma"`
	Date           string  `json:"date"`
}
