// Package interventions defines the weekly intervention catalog and the
// adherence probability model.
package interventions

// Intervention is a weekly intervention with an effect vector on the
// biomarker state.
//
// Effects list the per-week change for each metric key when the member
// adheres (e.g. "apob": -0.8). TimeCostHours modulates adherence when the
// total plan exceeds 5h/week.
type Intervention struct {
	Name          string
	Domain        string
	Effects       map[string]float64
	TimeCostHours float64
	RecommendedBy string
	BaseAdherence float64
}

// Catalog returns the canonical set of interventions used in the simulation.
func Catalog() []Intervention {
	return []Intervention{
		{
			Name:          "Mediterranean-pattern meals; reduce refined carbs",
			Domain:        "Nutrition",
			Effects:       map[string]float64{"apob": -0.7, "ldl_c": -0.9, "hs_crp": -0.06, "bmi": -0.03},
			TimeCostHours: 1.5,
			RecommendedBy: "Carla",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Omega-3 (EPA/DHA) supplementation",
			Domain:        "Nutrition",
			Effects:       map[string]float64{"apob": -0.4, "hs_crp": -0.05},
			TimeCostHours: 0.1,
			RecommendedBy: "Carla",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Caffeine cutoff at 13:00",
			Domain:        "Sleep",
			Effects:       map[string]float64{"sleep_hours": +0.10, "hrv_ms": +0.5, "rhr_bpm": -0.2},
			TimeCostHours: 0.0,
			RecommendedBy: "Carla",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Morning light exposure (10-15 min)",
			Domain:        "Sleep/Stress",
			Effects:       map[string]float64{"sleep_hours": +0.08, "hrv_ms": +0.6, "rhr_bpm": -0.2},
			TimeCostHours: 0.3,
			RecommendedBy: "Advik",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Zone-2 calibration run (1x/wk)",
			Domain:        "Cardio",
			Effects:       map[string]float64{"hrv_ms": +0.7, "rhr_bpm": -0.3, "systolic_bp": -0.6, "diastolic_bp": -0.4},
			TimeCostHours: 0.8,
			RecommendedBy: "Advik",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Strength training (2x/wk) + daily 10-min mobility",
			Domain:        "PT",
			Effects:       map[string]float64{"bmi": -0.04, "systolic_bp": -0.5, "diastolic_bp": -0.3},
			TimeCostHours: 2.2,
			RecommendedBy: "Rachel",
			BaseAdherence: 0.50,
		},
		{
			Name:          "Sodium awareness (restaurant swaps when traveling)",
			Domain:        "Nutrition/Travel",
			Effects:       map[string]float64{"systolic_bp": -0.4, "diastolic_bp": -0.3},
			TimeCostHours: 0.2,
			RecommendedBy: "Carla",
			BaseAdherence: 0.50,
		},
	}
}

// TotalWeeklyHours sums the time cost of every catalog entry.
func TotalWeeklyHours(catalog []Intervention) float64 {
	var total float64
	for _, iv := range catalog {
		total += iv.TimeCostHours
	}
	return total
}

// Probability computes the weekly adherence probability from a base rate and
// fixed additive modifiers:
//
//	travel          -0.15
//	busy week       -0.10
//	PA support      +0.10
//	last week a win +0.05
//	plan > 5h/week  -0.10
//
// The result is clamped to [0.05, 0.95].
func Probability(base float64, travel, paSupport, busyWeek, lastWeekWin bool, weeklyHours float64) float64 {
	p := base
	if travel {
		p -= 0.15
	}
	if busyWeek {
		p -= 0.10
	}
	if paSupport {
		p += 0.10
	}
	if lastWeekWin {
		p += 0.05
	}
	if weeklyHours > 5.0 {
		p -= 0.10
	}
	if p < 0.05 {
		p = 0.05
	}
	if p > 0.95 {
		p = 0.95
	}
	return p
}
