package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturelink/backend/internal/storage"
)

func newTestChat() *ChatService {
	svc := NewChatService(storage.NewMemoryStore())
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestChatService_Send(t *testing.T) {
	svc := newTestChat()

	_, err := svc.Send(context.Background(), "a", "b", "   \n")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	msg, err := svc.Send(context.Background(), "a", "b", "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.False(t, msg.IsRead)
}

func TestChatService_BetweenAndConversations(t *testing.T) {
	ctx := context.Background()
	svc := newTestChat()

	_, err := svc.Send(ctx, "a", "b", "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "b", "a", "second")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "c", "a", "third")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "b", "c", "unrelated")
	require.NoError(t, err)

	msgs, err := svc.Between(ctx, "b", "a")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)

	convs, err := svc.Conversations(ctx, "a")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "third", convs[0].LastMessage.Content)
	assert.Equal(t, 1, convs[0].Unread)
	assert.Equal(t, "second", convs[1].LastMessage.Content)
	assert.Equal(t, "a:b", convs[1].ID)

	changed, err := svc.MarkRead(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	convs, err = svc.Conversations(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, convs[1].Unread)
}
