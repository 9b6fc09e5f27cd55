package view

import "sentiment-dashboard/models"

// HistoryStats summarizes a historical series for the Charts view: current
// price, absolute and percent change over the series, and mean volume.
type HistoryStats struct {
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	AvgVolume     float64 `json:"avg_volume"`
}

// ComputeHistoryStats derives display statistics from a series. Returns nil
// for a nil or empty series so the widget degrades to its unavailable state.
func ComputeHistoryStats(series *models.HistoricalSeries) *HistoryStats {
	if series == nil || len(series.Data) == 0 {
		return nil
	}

	first := series.Data[0]
	last := series.Data[len(series.Data)-1]

	var totalVolume float64
	for _, c := range series.Data {
		totalVolume += float64(c.Volume)
	}

	stats := &HistoryStats{
		CurrentPrice: last.Close,
		Change:       last.Close - first.Close,
		AvgVolume:    totalVolume / float64(len(series.Data)),
	}
	if first.Close != 0 {
		stats.ChangePercent = stats.Change / first.Close * 100
	}
	return stats
}
