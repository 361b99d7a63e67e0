package db

import (
	"testing"
	"time"

	"estateinsights/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDB_AppendAndGetMessages(t *testing.T) {
	d := newTestDB(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	texts := []string{"hello", "Wakad", "Fetched insights successfully.", "baner", "⚠️ Couldn't fetch insights."}
	for i, text := range texts {
		sender := models.SenderUser
		if i%2 == 0 {
			sender = models.SenderBot
		}
		require.NoError(t, d.AppendMessage("s1", models.ChatMessage{Sender: sender, Text: text, Timestamp: now}))
	}

	msgs, err := d.GetMessages("s1")
	require.NoError(t, err)
	require.Len(t, msgs, len(texts))
	for i, msg := range msgs {
		assert.Equal(t, texts[i], msg.Text)
	}
	assert.Equal(t, models.SenderBot, msgs[0].Sender)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)
	assert.True(t, now.Equal(msgs[0].Timestamp))
}

func TestDB_SessionsAreIsolated(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.AppendMessage("a", models.ChatMessage{Sender: models.SenderUser, Text: "from a"}))
	require.NoError(t, d.AppendMessage("b", models.ChatMessage{Sender: models.SenderUser, Text: "from b"}))
	require.NoError(t, d.AppendMessage("a", models.ChatMessage{Sender: models.SenderBot, Text: "reply a"}))

	a, err := d.GetMessages("a")
	require.NoError(t, err)
	require.Len(t, a, 2)
	assert.Equal(t, "from a", a[0].Text)
	assert.Equal(t, "reply a", a[1].Text)

	b, err := d.GetMessages("b")
	require.NoError(t, err)
	require.Len(t, b, 1)
}

func TestDB_UnknownSessionIsEmpty(t *testing.T) {
	d := newTestDB(t)

	msgs, err := d.GetMessages("missing")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestDB_DeleteSession(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.AppendMessage("gone", models.ChatMessage{Sender: models.SenderUser, Text: "x"}))
	require.NoError(t, d.AppendMessage("kept", models.ChatMessage{Sender: models.SenderUser, Text: "y"}))
	require.NoError(t, d.DeleteSession("gone"))

	gone, err := d.GetMessages("gone")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := d.GetMessages("kept")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
