package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

// TranscriptSchemaVersion tags every stored message. A transcript containing
// any message written under a different version is discarded wholesale on
// load rather than migrated; the chat history is a cache of the conversation,
// not a system of record.
const TranscriptSchemaVersion = 2

// dedupeWindow bounds how far apart two identical messages can sit and still
// be treated as an accidental double-send.
const dedupeWindow = time.Second

// NewMessageID builds a transcript-unique id from the send time and a random
// fragment. Ordering by id is not meaningful; SentAt stays the sort key.
func NewMessageID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// NormalizeTranscript cleans a loaded transcript: messages missing an id get
// one backfilled, and identical role+content pairs sent within dedupeWindow
// collapse to the first occurrence. If any message carries a foreign schema
// version the whole transcript is condemned and (nil, true) is returned.
// Input is expected in ascending SentAt order.
func NormalizeTranscript(messages []*entities.ChatMessage) ([]*entities.ChatMessage, bool) {
	for _, m := range messages {
		if m.SchemaVersion != TranscriptSchemaVersion {
			return nil, true
		}
	}

	cleaned := make([]*entities.ChatMessage, 0, len(messages))
	lastKept := make(map[string]time.Time)
	for _, m := range messages {
		if m.MessageID == "" {
			m.MessageID = NewMessageID(m.SentAt)
		}

		key := m.Role + "\x00" + m.Content
		if prev, ok := lastKept[key]; ok && m.SentAt.Sub(prev) < dedupeWindow {
			continue
		}
		lastKept[key] = m.SentAt
		cleaned = append(cleaned, m)
	}
	return cleaned, false
}

// sessionGreeting opens a fresh session. checkIn is true when the user has
// not checked in yet today.
func sessionGreeting(now time.Time, name string, checkIn bool) string {
	var opener string
	switch hour := now.Hour(); {
	case hour < 12:
		opener = "Good morning"
	case hour < 18:
		opener = "Good afternoon"
	default:
		opener = "Good evening"
	}
	if name != "" {
		opener += ", " + name
	}

	greeting := opener + "! Tell me what you've eaten, or ask me anything about your plan."
	if checkIn {
		greeting += " If you've weighed in today, tell me the number and I'll track it."
	}
	return greeting
}
