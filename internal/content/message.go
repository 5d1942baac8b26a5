// Package content turns scheduled events plus the current biomarker state
// into chat messages, with per-sender variation and near-duplicate
// suppression.
package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// messageNamespace seeds deterministic (v5) message IDs. Random v4 IDs would
// break byte-identical replays for a fixed seed.
var messageNamespace = uuid.MustParse("7f1ae2d4-9c3b-4d6e-8a52-c10fe4b7a911")

// Message is a single chat message. Immutable after creation.
type Message struct {
	Timestamp         time.Time
	Sender            string
	Text              string
	Attachments       []string
	InitiatedByMember bool
	Meta              map[string]any
}

// Kind returns the structured kind tag, or "" when absent.
func (m Message) Kind() string {
	if m.Meta == nil {
		return ""
	}
	k, _ := m.Meta["kind"].(string)
	return k
}

// ID derives a stable identifier from the message's timestamp, sender, and
// kind.
func (m Message) ID() uuid.UUID {
	seed := fmt.Sprintf("%s|%s|%s", m.Timestamp.Format(time.RFC3339), m.Sender, m.Kind())
	return uuid.NewSHA1(messageNamespace, []byte(seed))
}

// ChatLine renders the message as a single WhatsApp-style line, e.g.
// "[1/6/25, 9:05 AM] Ruby (Concierge): ...".
func (m Message) ChatLine() string {
	ts := m.Timestamp.Format("1/2/06, 3:04 PM")
	return fmt.Sprintf("[%s] %s: %s", ts, m.Sender, m.Text)
}
