// Package export writes a finished conversation to disk: a JSONL record
// stream for downstream tooling and a WhatsApp-style text transcript for
// humans.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/talgya/conciergesim/internal/content"
)

// Record is one exported message, JSON-stable field order.
type Record struct {
	ID                string   `json:"id"`
	Timestamp         string   `json:"timestamp"`
	Sender            string   `json:"sender"`
	Text              string   `json:"text"`
	Attachments       []string `json:"attachments,omitempty"`
	InitiatedByMember bool     `json:"initiated_by_member"`
}

// WriteJSONL writes one JSON record per message.
func WriteJSONL(path string, messages []content.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, m := range messages {
		rec := Record{
			ID:                m.ID().String(),
			Timestamp:         m.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Sender:            m.Sender,
			Text:              m.Text,
			Attachments:       m.Attachments,
			InitiatedByMember: m.InitiatedByMember,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// WriteText writes the human-readable chat transcript.
func WriteText(path string, messages []content.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, m := range messages {
		if _, err := fmt.Fprintln(w, m.ChatLine()); err != nil {
			return fmt.Errorf("write line: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, "--- End of conversation ---"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
