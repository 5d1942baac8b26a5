package interventions

import (
	"math"
	"testing"
)

func TestProbability(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		travel      bool
		paSupport   bool
		busyWeek    bool
		lastWeekWin bool
		weeklyHours float64
		want        float64
	}{
		{"travel offset by pa support", 0.5, true, true, false, false, 4.0, 0.45},
		{"no modifiers", 0.5, false, false, false, false, 4.0, 0.50},
		{"busy week", 0.5, false, false, true, false, 4.0, 0.40},
		{"last week win", 0.5, false, false, false, true, 4.0, 0.55},
		{"heavy plan", 0.5, false, false, false, false, 6.0, 0.40},
		{"plan exactly at threshold", 0.5, false, false, false, false, 5.0, 0.50},
		{"floor clamp", 0.10, true, false, true, false, 8.0, 0.05},
		{"ceiling clamp", 0.90, false, true, false, true, 4.0, 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Probability(tt.base, tt.travel, tt.paSupport, tt.busyWeek, tt.lastWeekWin, tt.weeklyHours)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Probability() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if len(catalog) != 7 {
		t.Fatalf("catalog size = %d, want 7", len(catalog))
	}

	for _, iv := range catalog {
		if iv.Name == "" || iv.Domain == "" || iv.RecommendedBy == "" {
			t.Errorf("intervention %+v has empty identity fields", iv)
		}
		if len(iv.Effects) == 0 {
			t.Errorf("intervention %q has no effects", iv.Name)
		}
		if iv.BaseAdherence != 0.50 {
			t.Errorf("intervention %q base adherence = %v, want 0.50", iv.Name, iv.BaseAdherence)
		}
	}

	// Total plan hours sit just above the 5h adherence threshold, so the
	// heavy-plan modifier applies by default.
	if got := TotalWeeklyHours(catalog); math.Abs(got-5.1) > 1e-9 {
		t.Errorf("TotalWeeklyHours = %v, want 5.1", got)
	}
}
