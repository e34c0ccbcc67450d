package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/venturelink/backend/internal/models"
	"github.com/venturelink/backend/internal/storage"
)

const MessagesCollection = "messages"

var ErrEmptyMessage = errors.New("message content is empty")

type ChatService struct {
	messages *storage.Collection[models.Message]
	now      func() time.Time
}

func NewChatService(store storage.Store) *ChatService {
	return &ChatService{
		messages: storage.NewCollection[models.Message](store, MessagesCollection),
		now:      time.Now,
	}
}

// Send stores a message from senderID to receiverID. Blank content is
// rejected.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, ErrEmptyMessage
	}
	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  s.now().UTC(),
	}
	if err := s.messages.Put(ctx, msg.ID, msg); err != nil {
		return models.Message{}, fmt.Errorf("save message: %w", err)
	}
	log.Printf("[CHAT] %s -> %s (%s)", senderID, receiverID, msg.ID)
	return msg, nil
}

// Between returns the messages exchanged by a and b, oldest first.
func (s *ChatService) Between(ctx context.Context, a, b string) ([]models.Message, error) {
	all, err := s.messages.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Message, 0)
	for _, m := range all {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sortByTimestamp(out)
	return out, nil
}

// Conversations returns one entry per chat partner of userID, the most
// recently active first.
func (s *ChatService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	all, err := s.messages.All(ctx)
	if err != nil {
		return nil, err
	}
	sortByTimestamp(all)

	byPartner := make(map[string]*models.Conversation)
	for i := range all {
		m := all[i]
		var partner string
		switch userID {
		case m.SenderID:
			partner = m.ReceiverID
		case m.ReceiverID:
			partner = m.SenderID
		default:
			continue
		}

		conv, ok := byPartner[partner]
		if !ok {
			conv = &models.Conversation{
				ID:           conversationID(userID, partner),
				Participants: []string{userID, partner},
			}
			byPartner[partner] = conv
		}
		conv.LastMessage = &m
		conv.UpdatedAt = m.Timestamp
		if m.ReceiverID == userID && !m.IsRead {
			conv.Unread++
		}
	}

	out := make([]models.Conversation, 0, len(byPartner))
	for _, conv := range byPartner {
		out = append(out, *conv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// MarkRead flags every message partnerID sent to userID as read and returns
// how many changed.
func (s *ChatService) MarkRead(ctx context.Context, userID, partnerID string) (int, error) {
	all, err := s.messages.All(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, m := range all {
		if m.SenderID != partnerID || m.ReceiverID != userID || m.IsRead {
			continue
		}
		m.IsRead = true
		if err := s.messages.Put(ctx, m.ID, m); err != nil {
			return changed, fmt.Errorf("save message: %w", err)
		}
		changed++
	}
	return changed, nil
}

func conversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func sortByTimestamp(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}
