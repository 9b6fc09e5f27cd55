package api

import (
	"sentiment-dashboard/internal/app"
	"sentiment-dashboard/internal/session"
	"sentiment-dashboard/internal/view"
	"sentiment-dashboard/models"
)

// widgetResponse is the uniform envelope for view endpoints. A widget whose
// upstream call failed renders Available=false with a degraded message;
// sibling widgets are untouched.
type widgetResponse struct {
	Available bool   `json:"available"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
}

// PredictionView is the Predictions widget: the raw result plus its
// classified band, formatted fields, and the thermometer gauge position.
type PredictionView struct {
	Result            *models.PredictionResult `json:"result"`
	Band              view.Band                `json:"band"`
	PercentDisplay    string                   `json:"percent_display"`
	ConfidenceDisplay string                   `json:"confidence_display"`
	TimestampDisplay  string                   `json:"timestamp_display"`
	Gauge             float64                  `json:"gauge"`
}

// NewPredictionView maps a prediction result to its display state.
func NewPredictionView(result *models.PredictionResult) PredictionView {
	return PredictionView{
		Result:            result,
		Band:              view.PredictionBand(result.PredictionPercent),
		PercentDisplay:    view.FormatPercent(result.PredictionPercent),
		ConfidenceDisplay: view.FormatConfidence(result.Confidence),
		TimestampDisplay:  view.FormatTimestamp(result.Timestamp),
		Gauge:             view.Thermometer(result.PredictionPercent),
	}
}

// ComparativeRow is one ranked row of the Comparative Analysis table.
type ComparativeRow struct {
	Rank           int       `json:"rank"`
	Symbol         string    `json:"symbol"`
	Band           view.Band `json:"band"`
	PercentDisplay string    `json:"percent_display"`
	Confidence     string    `json:"confidence_display"`
	Timestamp      string    `json:"timestamp_display"`
}

// NewComparativeRows maps ranked comparison entries to table rows.
func NewComparativeRows(entries []app.ComparativeEntry) []ComparativeRow {
	rows := make([]ComparativeRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ComparativeRow{
			Rank:           e.Rank,
			Symbol:         e.Symbol,
			Band:           view.PredictionBand(e.Result.PredictionPercent),
			PercentDisplay: view.FormatPercent(e.Result.PredictionPercent),
			Confidence:     view.FormatConfidence(e.Result.Confidence),
			Timestamp:      view.FormatTimestamp(e.Result.Timestamp),
		})
	}
	return rows
}

// StockInfoView is the Stock Info widget.
type StockInfoView struct {
	Info             *models.StockInfo `json:"info"`
	PriceDisplay     string            `json:"price_display"`
	MarketCapDisplay string            `json:"market_cap_display"`
}

// NewStockInfoView maps a company profile to its display state.
func NewStockInfoView(info *models.StockInfo) StockInfoView {
	return StockInfoView{
		Info:             info,
		PriceDisplay:     view.FormatPrice(info.CurrentPrice),
		MarketCapDisplay: view.FormatMarketCap(info.MarketCap),
	}
}

// IndicatorsView is the technical indicators widget with banded signals.
type IndicatorsView struct {
	Indicators *models.TechnicalIndicators `json:"indicators"`
	RSISignal  view.RSISignal              `json:"rsi_signal"`
	Momentum   view.Momentum               `json:"momentum"`
}

// NewIndicatorsView maps indicator values to their display states.
func NewIndicatorsView(ind *models.TechnicalIndicators) IndicatorsView {
	return IndicatorsView{
		Indicators: ind,
		RSISignal:  view.RSIBand(ind.RSI14),
		Momentum:   view.MACDBand(ind.MACD),
	}
}

// SentimentView is the Reddit Sentiment widget. For comprehensive payloads,
// SubredditLabels carries the per-community label after the override rule.
type SentimentView struct {
	Scope           models.SentimentScope    `json:"scope"`
	Payload         *models.SentimentPayload `json:"payload"`
	SubredditLabels map[string]string        `json:"subreddit_labels,omitempty"`
}

// NewSentimentView maps a sentiment payload to its display state.
func NewSentimentView(payload *models.SentimentPayload) SentimentView {
	sv := SentimentView{
		Scope:   payload.Scope,
		Payload: payload,
	}
	if payload.Scope == models.ScopeComprehensive && payload.Comprehensive != nil {
		labels := make(map[string]string, len(payload.Comprehensive.SubredditAnalysis))
		for name, metrics := range payload.Comprehensive.SubredditAnalysis {
			labels[name] = view.SubredditLabel(payload.Comprehensive.SentimentLabel, metrics.SentimentScore)
		}
		sv.SubredditLabels = labels
	}
	return sv
}

// HistoryView is the Charts widget: the series, derived statistics, and the
// inputs retained on the session.
type HistoryView struct {
	Series               *models.HistoricalSeries `json:"series"`
	Stats                *view.HistoryStats       `json:"stats,omitempty"`
	Inputs               session.ChartInputs      `json:"inputs"`
	PriceDisplay         string                   `json:"price_display,omitempty"`
	ChangeDisplay        string                   `json:"change_display,omitempty"`
	ChangePercentDisplay string                   `json:"change_percent_display,omitempty"`
	AvgVolumeDisplay     string                   `json:"avg_volume_display,omitempty"`
}

// NewHistoryView maps a series and its inputs to the Charts display state.
func NewHistoryView(series *models.HistoricalSeries, inputs session.ChartInputs) HistoryView {
	hv := HistoryView{
		Series: series,
		Inputs: inputs,
	}
	if stats := view.ComputeHistoryStats(series); stats != nil {
		hv.Stats = stats
		hv.PriceDisplay = view.FormatPrice(stats.CurrentPrice)
		hv.ChangeDisplay = view.FormatPrice(stats.Change)
		hv.ChangePercentDisplay = view.FormatPercent(stats.ChangePercent)
		hv.AvgVolumeDisplay = view.FormatVolume(stats.AvgVolume)
	}
	return hv
}

// ViewInfo describes one dashboard view for the tab bar.
type ViewInfo struct {
	Slug   string `json:"slug"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// NewViewList builds the tab bar for a session.
func NewViewList(active session.View) []ViewInfo {
	views := session.Views()
	out := make([]ViewInfo, 0, len(views))
	for _, v := range views {
		out = append(out, ViewInfo{
			Slug:   v.Slug(),
			Label:  v.Label(),
			Active: v == active,
		})
	}
	return out
}
