package store

import (
	"github.com/chirpnet/chirp/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CreateConversation persists one direct message.
func (s *Store) CreateConversation(senderID string, receiverID string, content string) (*model.Conversation, error) {
	conversation := &model.Conversation{
		Id:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.Create(conversation).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create conversation")
	}
	return conversation, nil
}

// ListConversations returns one page of the message history between two
// users, newest first, plus the total message count.
func (s *Store) ListConversations(userID string, peerID string, p model.Pagination) ([]*model.Conversation, int64, error) {
	between := "(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)"

	var total int64
	if err := s.db.Model(&model.Conversation{}).
		Where(between, userID, peerID, peerID, userID).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to count conversations")
	}

	var conversations []*model.Conversation
	if err := s.db.Where(between, userID, peerID, peerID, userID).
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&conversations).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to list conversations")
	}
	return conversations, total, nil
}
