package models

// StockInfo is the company profile returned by the prediction API.
// MarketCap is null for symbols without one (funds, some OTC listings).
type StockInfo struct {
	Symbol       string   `json:"symbol"`
	CompanyName  string   `json:"company_name"`
	Sector       string   `json:"sector"`
	Industry     string   `json:"industry"`
	Exchange     string   `json:"exchange"`
	Currency     string   `json:"currency"`
	CurrentPrice float64  `json:"current_price"`
	MarketCap    *float64 `json:"market_cap"`
	Timestamp    string   `json:"timestamp"`
}
