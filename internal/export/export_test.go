package export

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talgya/conciergesim/internal/content"
)

func sampleMessages() []content.Message {
	base := time.Date(2025, 1, 6, 9, 5, 0, 0, time.UTC)
	return []content.Message{
		{
			Timestamp: base,
			Sender:    "Ruby (Concierge)",
			Text:      "Good week overall. Want me to lock the slots?",
			Meta:      map[string]any{"kind": "weekly_report"},
		},
		{
			Timestamp:         base.Add(2 * time.Hour),
			Sender:            "Rohan",
			Text:              "Quick one: worth trying? (Zone-2 heart-rate zones).",
			InitiatedByMember: true,
			Meta:              map[string]any{"kind": "member_curiosity"},
		},
	}
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.jsonl")
	msgs := sampleMessages()

	if err := WriteJSONL(path, msgs); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(records) != len(msgs) {
		t.Fatalf("record count = %d, want %d", len(records), len(msgs))
	}
	if records[0].Sender != "Ruby (Concierge)" {
		t.Errorf("sender = %q", records[0].Sender)
	}
	if records[0].ID == "" {
		t.Error("record missing ID")
	}
	if records[0].Timestamp != "2025-01-06T09:05:00Z" {
		t.Errorf("timestamp = %q", records[0].Timestamp)
	}
	if !records[1].InitiatedByMember {
		t.Error("member flag lost in export")
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.txt")
	msgs := sampleMessages()

	if err := WriteText(path, msgs); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	if len(lines) != len(msgs)+1 {
		t.Fatalf("line count = %d, want %d", len(lines), len(msgs)+1)
	}
	if !strings.HasPrefix(lines[0], "[1/6/25, 9:05 AM] Ruby (Concierge): ") {
		t.Errorf("chat line format: %q", lines[0])
	}
	if lines[len(lines)-1] != "--- End of conversation ---" {
		t.Errorf("missing footer, got %q", lines[len(lines)-1])
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")

	arc, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer arc.Close()

	msgs := sampleMessages()
	if err := arc.SaveMessages(msgs); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}
	if err := arc.SaveMeta("seed", "42"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}

	n, err := arc.CountMessages()
	if err != nil {
		t.Fatalf("CountMessages: %v", err)
	}
	if n != len(msgs) {
		t.Errorf("archived %d messages, want %d", n, len(msgs))
	}

	seed, err := arc.GetMeta("seed")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if seed != "42" {
		t.Errorf("seed meta = %q, want 42", seed)
	}
}
