package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/chat"
)

func message(role, content string, sentAt time.Time) *entities.ChatMessage {
	return &entities.ChatMessage{
		MessageID:     chat.NewMessageID(sentAt),
		Role:          role,
		Content:       content,
		SchemaVersion: chat.TranscriptSchemaVersion,
		SentAt:        sentAt,
	}
}

func TestNormalizeCollapsesRapidDuplicates(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	first := message("user", "I ate chicken", base)
	duplicate := message("user", "I ate chicken", base.Add(400*time.Millisecond))

	cleaned, discard := chat.NormalizeTranscript([]*entities.ChatMessage{first, duplicate})

	require.False(t, discard)
	require.Len(t, cleaned, 1)
	assert.Equal(t, first.MessageID, cleaned[0].MessageID)
}

func TestNormalizeKeepsSlowRepeats(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cleaned, discard := chat.NormalizeTranscript([]*entities.ChatMessage{
		message("user", "I ate chicken", base),
		message("user", "I ate chicken", base.Add(1500*time.Millisecond)),
	})

	require.False(t, discard)
	assert.Len(t, cleaned, 2)
}

func TestNormalizeKeepsSameContentAcrossRoles(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cleaned, discard := chat.NormalizeTranscript([]*entities.ChatMessage{
		message("user", "okay", base),
		message("assistant", "okay", base.Add(200*time.Millisecond)),
	})

	require.False(t, discard)
	assert.Len(t, cleaned, 2)
}

func TestNormalizeBackfillsMissingIDs(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	legacy := message("user", "hello", base)
	legacy.MessageID = ""

	cleaned, discard := chat.NormalizeTranscript([]*entities.ChatMessage{legacy})

	require.False(t, discard)
	require.Len(t, cleaned, 1)
	assert.NotEmpty(t, cleaned[0].MessageID)
}

func TestNormalizeDiscardsForeignSchemaVersions(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	current := message("user", "hello", base)
	stale := message("assistant", "hi there", base.Add(2*time.Second))
	stale.SchemaVersion = chat.TranscriptSchemaVersion - 1

	cleaned, discard := chat.NormalizeTranscript([]*entities.ChatMessage{current, stale})

	assert.True(t, discard)
	assert.Nil(t, cleaned)
}

func TestNewMessageIDsDiffer(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.NotEqual(t, chat.NewMessageID(now), chat.NewMessageID(now))
}
