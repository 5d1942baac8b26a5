// Package validate checks a finished conversation for structural
// completeness: every recurring event kind must appear at its expected
// cadence for the simulated horizon.
package validate

import (
	"fmt"
	"strings"

	"github.com/talgya/conciergesim/internal/content"
	"github.com/talgya/conciergesim/internal/scheduler"
)

// kindPrefixes maps an event kind to text prefixes used to classify
// messages that carry no structured kind tag. Classification prefers the
// tag; sniffing is a fallback for externally produced transcripts.
var kindPrefixes = map[string][]string{
	scheduler.KindWeeklyReport:        {"weekly report", "on the plus side", "wins:"},
	scheduler.KindExerciseUpdate:      {"exercise update", "for the next block", "phase "},
	scheduler.KindMedicalCheckin:      {"medical check", "current numbers are", "latest numbers"},
	scheduler.KindNutritionUpdate:     {"nutrition update", "i noticed", "i'm seeing"},
	scheduler.KindTravelAdaptation:    {"travel adaptation", "for united", "for south"},
	scheduler.KindDiagnosticsSchedule: {"ordering your diagnostic panel", "i’m booking this panel", "i'm booking this panel"},
	scheduler.KindDiagnosticsResults:  {"diagnostics results", "results are in", "got the results", "panel summary"},
	scheduler.KindWearableAnomaly:     {"wearable note", "night hrv", "hrv was lower", "recovery looked"},
}

func classify(m content.Message) string {
	if k := m.Kind(); k != "" {
		return k
	}
	lower := strings.ToLower(strings.TrimSpace(m.Text))
	for kind, prefixes := range kindPrefixes {
		for _, p := range prefixes {
			if strings.HasPrefix(lower, p) {
				return kind
			}
		}
	}
	if m.InitiatedByMember {
		return scheduler.KindMemberCuriosity
	}
	return ""
}

// Conversation verifies the message stream covers the expected cadence for a
// run of totalWeeks weeks. It returns nil when all checks pass, otherwise an
// error listing every failed check.
func Conversation(messages []content.Message, totalWeeks int) error {
	counts := make(map[string]int)
	memberMsgs := 0
	for _, m := range messages {
		if k := classify(m); k != "" {
			counts[k]++
		}
		if m.InitiatedByMember {
			memberMsgs++
		}
	}

	var problems []string
	check := func(kind string, got, want int, cmp string) {
		switch cmp {
		case ">=":
			if got < want {
				problems = append(problems, fmt.Sprintf("%s: got %d, want >= %d", kind, got, want))
			}
		case "==":
			if got != want {
				problems = append(problems, fmt.Sprintf("%s: got %d, want %d", kind, got, want))
			}
		}
	}

	check(scheduler.KindWeeklyReport, counts[scheduler.KindWeeklyReport], totalWeeks, ">=")
	check(scheduler.KindExerciseUpdate, counts[scheduler.KindExerciseUpdate], totalWeeks/2-1, ">=")
	check(scheduler.KindDiagnosticsSchedule, counts[scheduler.KindDiagnosticsSchedule], len(scheduler.DiagnosticWeeks(totalWeeks)), "==")
	check(scheduler.KindDiagnosticsResults, counts[scheduler.KindDiagnosticsResults], len(scheduler.DiagnosticWeeks(totalWeeks)), "==")
	check(scheduler.KindTravelAdaptation, counts[scheduler.KindTravelAdaptation], totalWeeks/4, ">=")

	if totalWeeks > 0 {
		avg := float64(memberMsgs) / float64(totalWeeks)
		if avg < 3.0 || avg > 7.0 {
			problems = append(problems, fmt.Sprintf("member-initiated average %.2f/week, want 3-7", avg))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("conversation validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
