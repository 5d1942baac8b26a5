package textstyle

import (
	"reflect"
	"strings"
	"testing"

	"github.com/talgya/conciergesim/internal/entropy"
)

func TestNaturalList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		conj  string
		want  string
	}{
		{"empty", nil, "and", ""},
		{"single", []string{"apples"}, "and", "apples"},
		{"pair", []string{"apples", "pears"}, "and", "apples and pears"},
		{"triple", []string{"a", "b", "c"}, "and", "a, b, and c"},
		{"or conjunction", []string{"stay", "switch", "wait"}, "or", "stay, switch, or wait"},
		{"blank items skipped", []string{"a", "  ", "b"}, "and", "a and b"},
		{"all blank", []string{"", " "}, "and", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NaturalList(tt.items, tt.conj); got != tt.want {
				t.Errorf("NaturalList(%v, %q) = %q, want %q", tt.items, tt.conj, got, tt.want)
			}
		})
	}
}

func TestToSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hello there", "hello there."},
		{"done?", "done?"},
		{"great!", "great!"},
		{"already ends.", "already ends."},
		{"\"quoted\"", "quoted."},
		{"really?.", "really?"},
		{"plan: stay the course", "plan stay the course."},
		{"too   many   spaces", "too many spaces."},
	}
	for _, tt := range tests {
		if got := ToSentence(tt.in); got != tt.want {
			t.Errorf("ToSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		want    string
	}{
		{"none", nil, "No actions from me right now"},
		{"one", []string{"blocked your slots."}, "I blocked your slots"},
		{"two with leading I stripped", []string{"I sent the brief", "looped Sarah in"},
			"I sent the brief and looped Sarah in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapActions(tt.actions); got != tt.want {
				t.Errorf("MapActions(%v) = %q, want %q", tt.actions, got, tt.want)
			}
		})
	}
}

func TestDedupeLines(t *testing.T) {
	in := []string{
		"Keep dinner earlier.",
		"keep dinner earlier",
		"Keep dinner earlier!",
		"Morning light helps.",
		"",
	}
	want := []string{"Keep dinner earlier.", "Morning light helps."}
	if got := DedupeLines(in); !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeLines = %v, want %v", got, want)
	}
}

func TestEnsureTerminal(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"done", "done."},
		{"done.", "done."},
		{"done?", "done?"},
		{"done!", "done!"},
	}
	for _, tt := range tests {
		if got := EnsureTerminal(tt.in); got != tt.want {
			t.Errorf("EnsureTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTidy(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"doubled terminals and dots",
			"bp still elevated ?. keep at it..",
			"Bp still elevated? keep at it.",
		},
		{
			"duplicate lines dropped and colon fixed",
			"good week overall\ngood week overall\nnext steps:",
			"Good week overall\nNext steps.",
		},
		{
			"space before punctuation",
			"hydrate , then train .",
			"Hydrate, then train.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tidy(tt.in); got != tt.want {
				t.Errorf("Tidy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTidyIdempotent(t *testing.T) {
	inputs := []string{
		"bp still elevated ?. keep at it..",
		"good week overall\ngood week overall\nnext steps:",
		"Hi Rohan,\nNumbers look better!.\nWant me to lock that in?",
		"I blocked your slots ; sent the brief",
	}
	for _, in := range inputs {
		once := Tidy(in)
		twice := Tidy(once)
		if once != twice {
			t.Errorf("Tidy not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestWeaveReport(t *testing.T) {
	src := entropy.NewSource(11)
	wins := []string{"ApoB trending down (98.2)"}
	flags := []string{"BP still elevated (133.0/86.0)"}
	focus := []string{"morning light", "earlier dinners"}

	lines := WeaveReport(src, wins, flags, focus)
	if len(lines) == 0 {
		t.Fatal("WeaveReport returned no lines")
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "98.2") {
		t.Errorf("win value missing from report: %q", joined)
	}
	if !strings.Contains(joined, "133.0/86.0") {
		t.Errorf("flag value missing from report: %q", joined)
	}
	for _, ln := range lines {
		if strings.Contains(ln, "Wins:") || strings.Contains(ln, "Flags:") {
			t.Errorf("report line carries a label: %q", ln)
		}
	}
}

func TestWeaveReportNoWins(t *testing.T) {
	src := entropy.NewSource(2)
	lines := WeaveReport(src, nil, nil, []string{"consistency"})
	joined := strings.ToLower(strings.Join(lines, "\n"))
	if !strings.Contains(joined, "no big wins") {
		t.Errorf("empty-win report missing fallback: %q", joined)
	}
}
