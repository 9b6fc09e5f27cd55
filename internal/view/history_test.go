package view

import (
	"testing"

	"sentiment-dashboard/models"
)

func TestComputeHistoryStats(t *testing.T) {
	series := &models.HistoricalSeries{
		Data: []models.Candle{
			{Date: "2025-05-01", Close: 100, Volume: 1000},
			{Date: "2025-05-02", Close: 105, Volume: 2000},
			{Date: "2025-05-03", Close: 110, Volume: 3000},
		},
	}

	stats := ComputeHistoryStats(series)
	if stats == nil {
		t.Fatal("expected stats for a populated series")
	}
	if stats.CurrentPrice != 110 {
		t.Errorf("CurrentPrice = %v, want 110", stats.CurrentPrice)
	}
	if stats.Change != 10 {
		t.Errorf("Change = %v, want 10", stats.Change)
	}
	if stats.ChangePercent != 10 {
		t.Errorf("ChangePercent = %v, want 10", stats.ChangePercent)
	}
	if stats.AvgVolume != 2000 {
		t.Errorf("AvgVolume = %v, want 2000", stats.AvgVolume)
	}
}

func TestComputeHistoryStats_Empty(t *testing.T) {
	if stats := ComputeHistoryStats(nil); stats != nil {
		t.Error("nil series should yield nil stats")
	}
	if stats := ComputeHistoryStats(&models.HistoricalSeries{}); stats != nil {
		t.Error("empty series should yield nil stats")
	}
}

func TestComputeHistoryStats_ZeroFirstClose(t *testing.T) {
	series := &models.HistoricalSeries{
		Data: []models.Candle{
			{Close: 0, Volume: 100},
			{Close: 50, Volume: 100},
		},
	}
	stats := ComputeHistoryStats(series)
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.ChangePercent != 0 {
		t.Errorf("ChangePercent = %v, want 0 when first close is zero", stats.ChangePercent)
	}
}
