package rating

import (
	"math"
	"testing"
)

func TestGrowthRates(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{
			name:   "newest first growth",
			values: []float64{121, 110, 100},
			want:   []float64{0.1, 0.1},
		},
		{
			name:   "negative predecessor uses absolute value",
			values: []float64{50, -100},
			want:   []float64{1.5},
		},
		{
			name:   "zero predecessor skipped",
			values: []float64{120, 0, 100},
			want:   []float64{-1},
		},
		{
			name:   "single value",
			values: []float64{100},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrowthRates(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("GrowthRates(%v) = %v, want %v", tt.values, got, tt.want)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("GrowthRates(%v)[%d] = %f, want %f", tt.values, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty slice returns zero", []float64{}, 0},
		{"single value", []float64{5}, 5},
		{"mixed signs", []float64{-2, 4, 7}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.values)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Mean(%v) = %f, want %f", tt.values, got, tt.want)
			}
		})
	}
}

func TestClampFloat64(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		min   float64
		max   float64
		want  float64
	}{
		{"value below min", -5, 0, 10, 0},
		{"value above max", 15, 0, 10, 10},
		{"value in range", 5, 0, 10, 5},
		{"value at min", 0, 0, 10, 0},
		{"value at max", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampFloat64(tt.value, tt.min, tt.max)
			if got != tt.want {
				t.Errorf("ClampFloat64(%f, %f, %f) = %f, want %f", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestScaleScore(t *testing.T) {
	tests := []struct {
		name   string
		raw    int
		maxRaw int
		want   float64
	}{
		{"negative raw clamps to zero", -3, 16, 0},
		{"full marks", 8, 8, 10},
		{"partial", 3, 8, 3.75},
		{"zero max", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scaleScore(tt.raw, tt.maxRaw)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scaleScore(%d, %d) = %f, want %f", tt.raw, tt.maxRaw, got, tt.want)
			}
		})
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  ScoreLabel
	}{
		{10, LabelExcellent},
		{8, LabelExcellent},
		{7.99, LabelGood},
		{6, LabelGood},
		{4, LabelFair},
		{3.99, LabelPoor},
		{0, LabelPoor},
	}

	for _, tt := range tests {
		got := LabelFor(tt.score)
		if got != tt.want {
			t.Errorf("LabelFor(%.2f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
