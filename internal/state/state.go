// Package state tracks the member's biomarker and wearable metrics as they
// evolve week by week.
package state

import (
	"math"

	"github.com/talgya/conciergesim/internal/entropy"
)

// Biomarkers holds the evolving metric vector plus weekly bookkeeping.
//
// Values are intentionally simple and updated once per simulated week with
// deterministic drifts from adhered interventions, negative modifiers during
// travel weeks, and small Gaussian noise for realism. Every update ends with
// a clamp to plausible human ranges.
type Biomarkers struct {
	// Biomarkers (units are indicative).
	SystolicBP  float64
	DiastolicBP float64
	ApoB        float64
	LDLC        float64
	HsCRP       float64
	HbA1c       float64
	BMI         float64

	// Wearables.
	HRVMs      float64
	RHRBpm     float64
	SleepHours float64 // nightly average

	// Bookkeeping.
	WeekIndex    int
	AdherenceLog map[string]bool

	// Weekly commitment tracking.
	WeeklyHoursCommitted float64
	WeeklyHoursCompleted float64
}

// New returns a Biomarkers record at the simulation's baseline defaults.
func New() *Biomarkers {
	return &Biomarkers{
		SystolicBP:           134.0,
		DiastolicBP:          86.0,
		ApoB:                 105.0,
		LDLC:                 140.0,
		HsCRP:                2.2,
		HbA1c:                5.7,
		BMI:                  26.0,
		HRVMs:                40.0,
		RHRBpm:               66.0,
		SleepHours:           6.25,
		AdherenceLog:         make(map[string]bool),
		WeeklyHoursCommitted: 5.0,
	}
}

// ApplyEffects applies an intervention's weekly effect vector if the member
// adhered. Unknown keys are ignored, not errors; they are a forward-compatible
// extension point.
func (b *Biomarkers) ApplyEffects(effects map[string]float64, adhered bool) {
	if !adhered {
		return
	}
	for key, delta := range effects {
		b.applyDelta(key, delta)
	}
}

// ApplyTravelPenalty degrades sleep and HRV, bumps resting HR, and worsens
// BP marginally for a travel week.
func (b *Biomarkers) ApplyTravelPenalty() {
	b.applyDelta("sleep_hours", -0.20)
	b.applyDelta("hrv_ms", -1.0)
	b.applyDelta("rhr_bpm", +1.0)
	b.applyDelta("systolic_bp", +0.5)
	b.applyDelta("diastolic_bp", +0.3)
}

// noiseSpec pairs each metric with its weekly noise standard deviation.
// Applied in this fixed order so the random draw sequence is stable for a
// given seed.
var noiseSpec = []struct {
	key   string
	sigma float64
}{
	{"systolic_bp", 0.4},
	{"diastolic_bp", 0.3},
	{"apob", 0.6},
	{"ldl_c", 0.8},
	{"hs_crp", 0.10},
	{"hba1c", 0.02},
	{"bmi", 0.03},
	{"hrv_ms", 0.8},
	{"rhr_bpm", 0.5},
	{"sleep_hours", 0.10},
}

// AddNoise adds independent Gaussian noise to every metric so the weekly
// series avoids straight lines.
func (b *Biomarkers) AddNoise(src *entropy.Source) {
	for _, n := range noiseSpec {
		b.applyDelta(n.key, src.Gauss(0.0, n.sigma))
	}
}

// Clamp bounds every metric to its physiological band.
func (b *Biomarkers) Clamp() {
	b.SystolicBP = clamp(b.SystolicBP, 95.0, 170.0)
	b.DiastolicBP = clamp(b.DiastolicBP, 55.0, 110.0)
	b.ApoB = clamp(b.ApoB, 50.0, 200.0)
	b.LDLC = clamp(b.LDLC, 40.0, 250.0)
	b.HsCRP = clamp(b.HsCRP, 0.2, 10.0)
	b.HbA1c = clamp(b.HbA1c, 4.8, 7.0)
	b.BMI = clamp(b.BMI, 18.0, 35.0)
	b.HRVMs = clamp(b.HRVMs, 20.0, 120.0)
	b.RHRBpm = clamp(b.RHRBpm, 45.0, 90.0)
	b.SleepHours = clamp(b.SleepHours, 4.0, 9.0)
}

// Snapshot is a rounded read-only view of the current metrics, suitable for
// message composition.
type Snapshot struct {
	SBP   float64
	DBP   float64
	ApoB  float64
	LDLC  float64
	HsCRP float64
	HbA1c float64
	BMI   float64
	HRV   float64
	RHR   float64
	Sleep float64
}

// Snapshot returns the current metrics rounded for display.
func (b *Biomarkers) Snapshot() Snapshot {
	return Snapshot{
		SBP:   round1(b.SystolicBP),
		DBP:   round1(b.DiastolicBP),
		ApoB:  round1(b.ApoB),
		LDLC:  round1(b.LDLC),
		HsCRP: round2(b.HsCRP),
		HbA1c: round2(b.HbA1c),
		BMI:   round1(b.BMI),
		HRV:   round1(b.HRVMs),
		RHR:   round1(b.RHRBpm),
		Sleep: round2(b.SleepHours),
	}
}

// SampleWeeklyHours samples completed plan hours around 5h with small
// variance, clamps to [2, 7], and records the result. Called once per week
// before composing the weekly report.
func (b *Biomarkers) SampleWeeklyHours(src *entropy.Source) float64 {
	val := clamp(src.Gauss(5.0, 1.0), 2.0, 7.0)
	b.WeeklyHoursCompleted = round1(val)
	return b.WeeklyHoursCompleted
}

func (b *Biomarkers) applyDelta(key string, delta float64) {
	switch key {
	case "systolic_bp":
		b.SystolicBP += delta
	case "diastolic_bp":
		b.DiastolicBP += delta
	case "apob":
		b.ApoB += delta
	case "ldl_c":
		b.LDLC += delta
	case "hs_crp":
		b.HsCRP += delta
	case "hba1c":
		b.HbA1c += delta
	case "bmi":
		b.BMI += delta
	case "hrv_ms":
		b.HRVMs += delta
	case "rhr_bpm":
		b.RHRBpm += delta
	case "sleep_hours":
		b.SleepHours += delta
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
