package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type ChatService interface {
	SaveMessage(ctx context.Context, fromUserID, toUserID uuid.UUID, text string) (*types.Message, error)
	History(ctx context.Context, userA, userB uuid.UUID) ([]*types.Message, error)
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	messageRepo repos.MessageRepo
}

func NewChatService(db *gorm.DB, log *logger.Logger, messageRepo repos.MessageRepo) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{db: db, log: serviceLog, messageRepo: messageRepo}
}

func (cs *chatService) SaveMessage(ctx context.Context, fromUserID, toUserID uuid.UUID, text string) (*types.Message, error) {
	if fromUserID == uuid.Nil || toUserID == uuid.Nil {
		return nil, fmt.Errorf("Both sender and recipient are required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("Message text is required")
	}
	msg := &types.Message{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Text:       text,
	}
	created, err := cs.messageRepo.Create(ctx, nil, []*types.Message{msg})
	if err != nil {
		return nil, fmt.Errorf("Failed to persist message: %w", err)
	}
	return created[0], nil
}

func (cs *chatService) History(ctx context.Context, userA, userB uuid.UUID) ([]*types.Message, error) {
	messages, err := cs.messageRepo.GetConversation(ctx, nil, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("Failed to load conversation: %w", err)
	}
	return messages, nil
}
