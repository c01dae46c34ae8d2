package chat

import (
	"context"

	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
)

type (
	ChatRepository interface {
		SaveMessage(ctx context.Context, message *entities.ChatMessage) error
		UpdateMessage(ctx context.Context, message *entities.ChatMessage) error
		GetMessages(ctx context.Context, userID string) ([]*entities.ChatMessage, error)
		DeleteMessages(ctx context.Context, userID string) error
	}

	chatRepository struct {
		db *gorm.DB
	}
)

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) SaveMessage(ctx context.Context, message *entities.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *chatRepository) UpdateMessage(ctx context.Context, message *entities.ChatMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *chatRepository) GetMessages(ctx context.Context, userID string) ([]*entities.ChatMessage, error) {
	var messages []*entities.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) DeleteMessages(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.ChatMessage{}).Error
}
