package state

import (
	"math"
	"testing"

	"github.com/talgya/conciergesim/internal/entropy"
)

func TestNewBaselines(t *testing.T) {
	b := New()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"systolic", b.SystolicBP, 134.0},
		{"diastolic", b.DiastolicBP, 86.0},
		{"apob", b.ApoB, 105.0},
		{"ldl", b.LDLC, 140.0},
		{"hscrp", b.HsCRP, 2.2},
		{"hba1c", b.HbA1c, 5.7},
		{"bmi", b.BMI, 26.0},
		{"hrv", b.HRVMs, 40.0},
		{"rhr", b.RHRBpm, 66.0},
		{"sleep", b.SleepHours, 6.25},
		{"committed hours", b.WeeklyHoursCommitted, 5.0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s baseline = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestApplyEffects(t *testing.T) {
	b := New()
	effects := map[string]float64{"apob": -0.7, "ldl_c": -0.9}

	b.ApplyEffects(effects, false)
	if b.ApoB != 105.0 {
		t.Errorf("non-adhered effects applied: apob = %v", b.ApoB)
	}

	b.ApplyEffects(effects, true)
	if math.Abs(b.ApoB-104.3) > 1e-9 || math.Abs(b.LDLC-139.1) > 1e-9 {
		t.Errorf("adhered effects: apob = %v, ldl = %v", b.ApoB, b.LDLC)
	}
}

func metricVector(b *Biomarkers) [10]float64 {
	return [10]float64{
		b.SystolicBP, b.DiastolicBP, b.ApoB, b.LDLC, b.HsCRP,
		b.HbA1c, b.BMI, b.HRVMs, b.RHRBpm, b.SleepHours,
	}
}

func TestApplyEffectsIgnoresUnknownKeys(t *testing.T) {
	b := New()
	before := metricVector(b)
	b.ApplyEffects(map[string]float64{"vo2max": 1.0, "mood": -2.0}, true)
	if metricVector(b) != before {
		t.Errorf("unknown effect keys mutated state: %+v", b)
	}
}

func TestApplyTravelPenalty(t *testing.T) {
	b := New()
	b.ApplyTravelPenalty()

	if math.Abs(b.SleepHours-6.05) > 1e-9 {
		t.Errorf("sleep after travel = %v, want 6.05", b.SleepHours)
	}
	if math.Abs(b.HRVMs-39.0) > 1e-9 {
		t.Errorf("hrv after travel = %v, want 39.0", b.HRVMs)
	}
	if math.Abs(b.RHRBpm-67.0) > 1e-9 {
		t.Errorf("rhr after travel = %v, want 67.0", b.RHRBpm)
	}
	if math.Abs(b.SystolicBP-134.5) > 1e-9 || math.Abs(b.DiastolicBP-86.3) > 1e-9 {
		t.Errorf("bp after travel = %v/%v, want 134.5/86.3", b.SystolicBP, b.DiastolicBP)
	}
}

func TestClampBounds(t *testing.T) {
	b := New()
	b.SystolicBP = 400
	b.DiastolicBP = 1
	b.ApoB = -50
	b.HsCRP = 99
	b.HRVMs = 500
	b.SleepHours = 0
	b.Clamp()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"systolic high", b.SystolicBP, 170.0},
		{"diastolic low", b.DiastolicBP, 55.0},
		{"apob low", b.ApoB, 50.0},
		{"hscrp high", b.HsCRP, 10.0},
		{"hrv high", b.HRVMs, 120.0},
		{"sleep low", b.SleepHours, 4.0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s clamp = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestAddNoiseDeterministic(t *testing.T) {
	a, b := New(), New()
	a.AddNoise(entropy.NewSource(7))
	b.AddNoise(entropy.NewSource(7))
	if metricVector(a) != metricVector(b) {
		t.Errorf("same seed produced different noise:\n%+v\n%+v", a, b)
	}

	c := New()
	c.AddNoise(entropy.NewSource(8))
	if metricVector(a) == metricVector(c) {
		t.Error("different seeds produced identical noise")
	}
}

func TestSampleWeeklyHours(t *testing.T) {
	src := entropy.NewSource(3)
	b := New()
	for i := 0; i < 200; i++ {
		h := b.SampleWeeklyHours(src)
		if h < 2.0 || h > 7.0 {
			t.Fatalf("sampled hours %v outside [2, 7]", h)
		}
		if math.Abs(h*10-math.Round(h*10)) > 1e-9 {
			t.Fatalf("sampled hours %v not rounded to one decimal", h)
		}
		if b.WeeklyHoursCompleted != h {
			t.Fatalf("completed hours not recorded: %v != %v", b.WeeklyHoursCompleted, h)
		}
	}
}

func TestSnapshotRounding(t *testing.T) {
	b := New()
	b.SystolicBP = 133.46
	b.HsCRP = 2.237
	b.SleepHours = 6.251

	snap := b.Snapshot()
	if snap.SBP != 133.5 {
		t.Errorf("snapshot SBP = %v, want 133.5", snap.SBP)
	}
	if snap.HsCRP != 2.24 {
		t.Errorf("snapshot HsCRP = %v, want 2.24", snap.HsCRP)
	}
	if snap.Sleep != 6.25 {
		t.Errorf("snapshot Sleep = %v, want 6.25", snap.Sleep)
	}
}
