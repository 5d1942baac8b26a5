// Package scheduler generates the typed event timeline for a full run.
// Cadence is deterministic; only the time of day within documented windows
// is randomized. The scheduler mutates no state and composes no messages.
package scheduler

import (
	"sort"
	"time"

	"github.com/talgya/conciergesim/internal/entropy"
	"github.com/talgya/conciergesim/internal/simclock"
)

// Event kinds.
const (
	KindWeeklyReport        = "weekly_report"
	KindExerciseUpdate      = "exercise_update"
	KindMedicalCheckin      = "medical_checkin"
	KindNutritionUpdate     = "nutrition_update"
	KindTravelAdaptation    = "travel_adaptation"
	KindDiagnosticsSchedule = "diagnostics_schedule"
	KindDiagnosticsResults  = "diagnostics_results"
	KindMemberCuriosity     = "member_curiosity"
	KindWearableAnomaly     = "wearable_anomaly"
)

// Event is a scheduled trigger point in simulated time that may produce
// chat messages. Immutable once created.
type Event struct {
	Kind string
	Week int
	When time.Time
	Meta map[string]string
}

// nutritionWeeks get a nutrition update (roughly monthly).
var nutritionWeeks = map[int]bool{
	3: true, 7: true, 11: true, 15: true,
	19: true, 23: true, 27: true, 31: true,
}

// DiagnosticWeeks returns the diagnostics cadence: baseline at week 4, then
// every 12 weeks thereafter (16, 28, ...), up to totalWeeks.
func DiagnosticWeeks(totalWeeks int) []int {
	var weeks []int
	for w := 4; w <= totalWeeks; w += 12 {
		weeks = append(weeks, w)
	}
	return weeks
}

// randomTime returns an instant on the same date as base with a random hour
// in [hourLow, hourHigh] and a 5-minute-aligned minute.
func randomTime(src *entropy.Source, base time.Time, hourLow, hourHigh int) time.Time {
	hour := src.Between(hourLow, hourHigh)
	minute := 5 * src.Between(0, 11)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

// BuildEvents emits the full event timeline (weekly reports, exercise
// updates, diagnostics, member curiosity chats, ...) spanning totalWeeks,
// globally sorted by timestamp. State updates are not scheduled here; the
// driver owns those.
func BuildEvents(clock simclock.Clock, travel simclock.TravelPlan, totalWeeks int, src *entropy.Source) []Event {
	var events []Event

	diagWeeks := make(map[int]bool)
	for _, w := range DiagnosticWeeks(totalWeeks) {
		diagWeeks[w] = true
	}

	for w := 1; w <= totalWeeks; w++ {
		weekStart := clock.InstantFor(w, 0, 9, 0)

		// Weekly report (Ruby).
		events = append(events, Event{Kind: KindWeeklyReport, Week: w, When: randomTime(src, weekStart, 8, 20)})

		// Biweekly exercise update (Rachel) and medical check-in (Dr. Warren).
		if w%2 == 0 {
			events = append(events, Event{Kind: KindExerciseUpdate, Week: w, When: randomTime(src, weekStart, 8, 20)})
			events = append(events, Event{Kind: KindMedicalCheckin, Week: w, When: randomTime(src, weekStart, 10, 14)})
		}

		// Nutrition update roughly monthly (Carla).
		if nutritionWeeks[w] {
			events = append(events, Event{Kind: KindNutritionUpdate, Week: w, When: randomTime(src, weekStart, 11, 16)})
		}

		// Travel week adaptations.
		if dest, ok := travel.DestinationFor(w); ok {
			events = append(events, Event{
				Kind: KindTravelAdaptation,
				Week: w,
				When: randomTime(src, weekStart, 8, 20),
				Meta: map[string]string{"dest": dest},
			})
		}

		// Diagnostics: order/prep early in the week, results Friday afternoon.
		if diagWeeks[w] {
			events = append(events, Event{Kind: KindDiagnosticsSchedule, Week: w, When: randomTime(src, weekStart, 8, 11)})
			friday := weekStart.Add(4 * 24 * time.Hour)
			events = append(events, Event{Kind: KindDiagnosticsResults, Week: w, When: randomTime(src, friday, 13, 18)})
		}

		// Member curiosity chats, ~5 per week (uniform 3..7).
		weeklyCount := src.Between(3, 7)
		for i := 0; i < weeklyCount; i++ {
			day := src.Between(0, 6)
			events = append(events, Event{
				Kind: KindMemberCuriosity,
				Week: w,
				When: randomTime(src, weekStart.Add(time.Duration(day)*24*time.Hour), 8, 20),
			})
		}

		// Wearable anomalies, about once every two weeks.
		if src.Float64() < 0.5 {
			day := src.Between(1, 6)
			events = append(events, Event{
				Kind: KindWearableAnomaly,
				Week: w,
				When: randomTime(src, weekStart.Add(time.Duration(day)*24*time.Hour), 8, 20),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].When.Before(events[j].When)
	})
	return events
}
