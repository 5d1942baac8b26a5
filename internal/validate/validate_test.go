package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/talgya/conciergesim/internal/content"
	"github.com/talgya/conciergesim/internal/scheduler"
)

var baseTime = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func tagged(kind, sender string, member bool, n int) []content.Message {
	msgs := make([]content.Message, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, content.Message{
			Timestamp:         baseTime.Add(time.Duration(i) * time.Hour),
			Sender:            sender,
			Text:              "placeholder",
			InitiatedByMember: member,
			Meta:              map[string]any{"kind": kind},
		})
	}
	return msgs
}

// completeConversation builds a synthetic 34-week stream that satisfies every
// cadence check.
func completeConversation() []content.Message {
	var msgs []content.Message
	msgs = append(msgs, tagged(scheduler.KindWeeklyReport, "Ruby (Concierge)", false, 34)...)
	msgs = append(msgs, tagged(scheduler.KindExerciseUpdate, "Rachel (PT)", false, 17)...)
	msgs = append(msgs, tagged(scheduler.KindDiagnosticsSchedule, "Ruby (Concierge)", false, 3)...)
	msgs = append(msgs, tagged(scheduler.KindDiagnosticsResults, "Dr. Warren (Medical)", false, 3)...)
	msgs = append(msgs, tagged(scheduler.KindTravelAdaptation, "Ruby (Concierge)", false, 8)...)
	msgs = append(msgs, tagged(scheduler.KindMemberCuriosity, "Rohan", true, 170)...)
	return msgs
}

func TestConversationPasses(t *testing.T) {
	if err := Conversation(completeConversation(), 34); err != nil {
		t.Errorf("complete conversation failed validation: %v", err)
	}
}

func TestConversationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]content.Message) []content.Message
		wantSub string
	}{
		{
			"missing weekly reports",
			func(msgs []content.Message) []content.Message {
				var out []content.Message
				dropped := 0
				for _, m := range msgs {
					if m.Kind() == scheduler.KindWeeklyReport && dropped < 5 {
						dropped++
						continue
					}
					out = append(out, m)
				}
				return out
			},
			scheduler.KindWeeklyReport,
		},
		{
			"wrong diagnostics count",
			func(msgs []content.Message) []content.Message {
				return append(msgs, tagged(scheduler.KindDiagnosticsSchedule, "Ruby (Concierge)", false, 1)...)
			},
			scheduler.KindDiagnosticsSchedule,
		},
		{
			"too few member messages",
			func(msgs []content.Message) []content.Message {
				var out []content.Message
				kept := 0
				for _, m := range msgs {
					if m.InitiatedByMember {
						if kept >= 34 {
							continue
						}
						kept++
					}
					out = append(out, m)
				}
				return out
			},
			"member-initiated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Conversation(tt.mutate(completeConversation()), 34)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestClassifyFallsBackToText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Weekly report: all good.", scheduler.KindWeeklyReport},
		{"Results are in — ApoB 98.", scheduler.KindDiagnosticsResults},
		{"Night HRV dipped and RHR ticked up vs last week.", scheduler.KindWearableAnomaly},
	}
	for _, tt := range tests {
		m := content.Message{Timestamp: baseTime, Sender: "x", Text: tt.text}
		if got := classify(m); got != tt.want {
			t.Errorf("classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}

	// The structured tag wins over text sniffing.
	m := content.Message{
		Timestamp: baseTime,
		Sender:    "x",
		Text:      "Weekly report: all good.",
		Meta:      map[string]any{"kind": scheduler.KindNutritionUpdate},
	}
	if got := classify(m); got != scheduler.KindNutritionUpdate {
		t.Errorf("classify preferred sniffing over the tag: %q", got)
	}
}
