package chat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/ollama-chat/backend/internal/model/chat"
	chatService "github.com/zhouzirui/ollama-chat/backend/internal/service/chat"
)

func TestStoreCreateSessionLabelsInOrder(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		session := store.CreateSession(ctx)
		want := fmt.Sprintf("Chat %d", i)
		require.Equal(t, want, session.Label)

		turns, err := store.GetTurns(ctx, session.Label)
		require.NoError(t, err)
		assert.Empty(t, turns)

		active, ok := store.Active(ctx)
		require.True(t, ok)
		assert.Equal(t, want, active)
	}

	sessions := store.ListSessions(ctx)
	require.Len(t, sessions, 5)
	for i, session := range sessions {
		assert.Equal(t, fmt.Sprintf("Chat %d", i+1), session.Label)
	}
}

func TestStoreNoActiveSessionInitially(t *testing.T) {
	store := chatService.NewStore()

	_, ok := store.Active(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.ListSessions(context.Background()))
}

func TestStoreAppendKeepsOrder(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()
	session := store.CreateSession(ctx)

	require.NoError(t, store.AppendUserTurn(ctx, session.Label, "hi"))
	require.NoError(t, store.AppendAgentTurn(ctx, session.Label, "hello"))

	turns, err := store.GetTurns(ctx, session.Label)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, chat.RoleUser, turns[0].Role)
	assert.Equal(t, "hi", turns[0].Text)
	assert.Equal(t, chat.RoleAgent, turns[1].Role)
	assert.Equal(t, "hello", turns[1].Text)
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()
	first := store.CreateSession(ctx)
	second := store.CreateSession(ctx)

	require.NoError(t, store.AppendUserTurn(ctx, first.Label, "only in chat 1"))
	require.NoError(t, store.AppendAgentTurn(ctx, first.Label, "reply"))

	turns, err := store.GetTurns(ctx, second.Label)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestStoreGetTurnsReturnsCopy(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()
	session := store.CreateSession(ctx)
	require.NoError(t, store.AppendUserTurn(ctx, session.Label, "original"))

	turns, err := store.GetTurns(ctx, session.Label)
	require.NoError(t, err)
	turns[0].Text = "mutated"

	again, err := store.GetTurns(ctx, session.Label)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Text)
}

func TestStoreSelectSession(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()
	first := store.CreateSession(ctx)
	store.CreateSession(ctx)

	require.NoError(t, store.SelectSession(ctx, first.Label))
	active, _ := store.Active(ctx)
	assert.Equal(t, "Chat 1", active)

	err := store.SelectSession(ctx, "Chat 9")
	require.ErrorIs(t, err, chatService.ErrInvalidSession)
	active, _ = store.Active(ctx)
	assert.Equal(t, "Chat 1", active, "failed select must not move the active session")
}

func TestStoreUnknownLabel(t *testing.T) {
	store := chatService.NewStore()
	ctx := context.Background()

	_, err := store.GetTurns(ctx, "missing")
	assert.ErrorIs(t, err, chatService.ErrInvalidSession)
	assert.ErrorIs(t, store.AppendUserTurn(ctx, "missing", "x"), chatService.ErrInvalidSession)
	assert.ErrorIs(t, store.AppendAgentTurn(ctx, "missing", "x"), chatService.ErrInvalidSession)
}
