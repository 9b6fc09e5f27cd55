package view

import "testing"

func TestPredictionBand(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    Band
	}{
		{"well above strong threshold", 5.0, BandStrongBullish},
		{"just above strong threshold", 2.01, BandStrongBullish},
		{"exactly 2 is bullish", 2.0, BandBullish},
		{"small positive", 0.01, BandBullish},
		{"zero is bearish", 0.0, BandBearish},
		{"small negative", -0.01, BandBearish},
		{"exactly -2 is strong bearish", -2.0, BandStrongBearish},
		{"just above -2", -1.99, BandBearish},
		{"deep negative", -7.5, BandStrongBearish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PredictionBand(tt.percent); got != tt.want {
				t.Errorf("PredictionBand(%v) = %q, want %q", tt.percent, got, tt.want)
			}
		})
	}
}

func TestRSIBand(t *testing.T) {
	tests := []struct {
		name string
		rsi  float64
		want RSISignal
	}{
		{"above 70 overbought", 70.01, RSIOverbought},
		{"exactly 70 neutral", 70.0, RSINeutral},
		{"mid-range neutral", 50.0, RSINeutral},
		{"exactly 30 neutral", 30.0, RSINeutral},
		{"below 30 oversold", 29.99, RSIOversold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RSIBand(tt.rsi); got != tt.want {
				t.Errorf("RSIBand(%v) = %q, want %q", tt.rsi, got, tt.want)
			}
		})
	}
}

func TestMACDBand(t *testing.T) {
	if got := MACDBand(0.5); got != MomentumBullish {
		t.Errorf("MACDBand(0.5) = %q, want bullish momentum", got)
	}
	if got := MACDBand(0); got != MomentumBearish {
		t.Errorf("MACDBand(0) = %q, want bearish momentum", got)
	}
	if got := MACDBand(-1.2); got != MomentumBearish {
		t.Errorf("MACDBand(-1.2) = %q, want bearish momentum", got)
	}
}

func TestSubredditLabel(t *testing.T) {
	tests := []struct {
		name      string
		aggregate string
		score     float64
		want      string
	}{
		{"positive override", "neutral", 0.11, "bullish"},
		{"negative override", "neutral", -0.11, "bearish"},
		{"exactly +0.1 keeps aggregate", "neutral", 0.1, "neutral"},
		{"exactly -0.1 keeps aggregate", "bullish", -0.1, "bullish"},
		{"near zero keeps aggregate", "bearish", 0.05, "bearish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubredditLabel(tt.aggregate, tt.score); got != tt.want {
				t.Errorf("SubredditLabel(%q, %v) = %q, want %q", tt.aggregate, tt.score, got, tt.want)
			}
		})
	}
}

func TestThermometer(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    float64
	}{
		{"min clamps to 0", -15.0, 0.0},
		{"exactly min", -10.0, 0.0},
		{"zero maps to midpoint", 0.0, 0.5},
		{"exactly max", 10.0, 1.0},
		{"max clamps to 1", 25.0, 1.0},
		{"positive interior", 5.0, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Thermometer(tt.percent); got != tt.want {
				t.Errorf("Thermometer(%v) = %v, want %v", tt.percent, got, tt.want)
			}
		})
	}
}
