package rating

import (
	"math"
	"testing"

	"github.com/ternarybob/valuelens/internal/models"
)

func moatPeriod(margin, capex, revenue, rnd float64) models.ProcessedPeriod {
	return models.ProcessedPeriod{
		GrossMargin:                 known(margin),
		CapitalExpenditures:         known(capex),
		Revenue:                     known(revenue),
		ResearchAndDevelopment:      known(rnd),
		GoodwillAndIntangibleAssets: known(10),
	}
}

func TestScoreMoat(t *testing.T) {
	tests := []struct {
		name      string
		series    []models.ProcessedPeriod
		wantRaw   int
		wantScore float64
	}{
		{
			name: "wide moat",
			series: []models.ProcessedPeriod{
				moatPeriod(0.50, -2, 100, 5),
				moatPeriod(0.50, -2, 100, 5),
				moatPeriod(0.45, -2, 100, 5),
				moatPeriod(0.40, -2, 100, 5),
			},
			wantRaw:   6,
			wantScore: 10,
		},
		{
			name: "declining but healthy margins, moderate capex",
			series: []models.ProcessedPeriod{
				moatPeriod(0.35, -7, 100, 0),
				moatPeriod(0.40, -7, 100, 0),
				moatPeriod(0.45, -7, 100, 0),
			},
			// margin +1, capex +1, intangibles +1
			wantRaw:   3,
			wantScore: 5,
		},
		{
			name: "commodity business",
			series: []models.ProcessedPeriod{
				{GrossMargin: known(0.10), CapitalExpenditures: known(-15), Revenue: known(100)},
				{GrossMargin: known(0.20), CapitalExpenditures: known(-15), Revenue: known(100)},
				{GrossMargin: known(0.25), CapitalExpenditures: known(-15), Revenue: known(100)},
			},
			wantRaw:   0,
			wantScore: 0,
		},
		{
			name: "too short for trend or capex",
			series: []models.ProcessedPeriod{
				moatPeriod(0.50, -2, 100, 5),
				moatPeriod(0.40, -2, 100, 5),
			},
			// R&D +1, intangibles +1
			wantRaw:   2,
			wantScore: 20.0 / 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreMoat(tt.series)
			if got.Raw != tt.wantRaw {
				t.Errorf("Raw = %d, want %d (details: %v)", got.Raw, tt.wantRaw, got.Details)
			}
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %f, want %f", got.Score, tt.wantScore)
			}
			if len(got.Details) != 4 {
				t.Errorf("expected a detail per factor, got %v", got.Details)
			}
		})
	}
}

func TestScoreMoat_CapexSkipsNonPositiveRevenue(t *testing.T) {
	series := []models.ProcessedPeriod{
		{CapitalExpenditures: known(-1), Revenue: known(100)},
		{CapitalExpenditures: known(-50), Revenue: known(0)},
		{CapitalExpenditures: known(-3), Revenue: known(100)},
	}
	points, _ := scoreCapitalIntensity(series)
	if points != 2 {
		t.Errorf("points = %d, want 2 (mean of 1%% and 3%%)", points)
	}
}

func TestScoreMoat_Empty(t *testing.T) {
	got := ScoreMoat(nil)
	if got.Score != 0 || len(got.Details) == 0 {
		t.Errorf("empty series should score 0 with a reason, got %+v", got)
	}
}
