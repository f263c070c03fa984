package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/internal/constant"
)

func TestNewSessionDefaults(t *testing.T) {
	sess := New("sess-1", "visitor-1")

	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, constant.DefaultModel, sess.Model)
	assert.Equal(t, constant.DefaultEmbeddingDim, sess.EmbeddingDim)
	assert.True(t, sess.IncludeHistory)
	assert.False(t, sess.ErrorFlag)

	require.Len(t, sess.Turns, 1)
	assert.Equal(t, constant.ChatRoleAssistant, sess.Turns[0].Role)
	assert.Equal(t, constant.InitialAssistantMessage, sess.Turns[0].Text)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := New("sess-2", "")
	sess.Append(constant.ChatRoleUser, "What do you do?", "", constant.IntentGeneralBackground)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.Len(t, got.Turns, 2)
	assert.Equal(t, "What do you do?", got.Turns[1].Text)
}

func TestMemoryStoreKeepsSnapshots(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := New("sess-snap", "")
	require.NoError(t, store.Save(ctx, sess))

	// Mutating the caller's copy after Save must not leak into the store.
	sess.Append(constant.ChatRoleUser, "unsaved turn", "", "")
	sess.ErrorFlag = true

	got, err := store.Get(ctx, "sess-snap")
	require.NoError(t, err)
	assert.Len(t, got.Turns, 1)
	assert.False(t, got.ErrorFlag)

	// Mutating a fetched copy must not change what the next Get sees.
	got.Append(constant.ChatRoleUser, "also unsaved", "", "")
	got.Model = "llama2-70b-chat"

	again, err := store.Get(ctx, "sess-snap")
	require.NoError(t, err)
	assert.Len(t, again.Turns, 1)
	assert.Equal(t, constant.DefaultModel, again.Model)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, New("sess-3", "")))
	require.NoError(t, store.Delete(ctx, "sess-3"))
	require.NoError(t, store.Delete(ctx, "sess-3"))

	_, err := store.Get(ctx, "sess-3")
	assert.ErrorIs(t, err, ErrNotFound)
}
