// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/repository/contract"
	"ai-copychat-be/pkg/events"
	pktNats "ai-copychat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the in-process bus into the usage audit table and
// republishes each event to NATS when a bus is configured.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	usageEventRepo contract.UsageEventRepository
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	usageEventRepo contract.UsageEventRepository,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		usageEventRepo: usageEventRepo,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	turns, err := cs.pubSub.Subscribe(ctx, constant.TopicChatTurnCompleted)
	if err != nil {
		return err
	}
	chunks, err := cs.pubSub.Subscribe(ctx, constant.TopicNoteChunkAppended)
	if err != nil {
		return err
	}

	go func() {
		for msg := range turns {
			cs.processChatTurn(ctx, msg)
		}
	}()
	go func() {
		for msg := range chunks {
			cs.processNoteChunk(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processChatTurn(ctx context.Context, msg *message.Message) {
	var payload dto.ChatTurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chat turn event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		log.Printf("[ERROR] Invalid user id in chat turn event: %v", err)
		msg.Ack()
		return
	}

	var sessionId *uuid.UUID
	if parsed, err := uuid.Parse(payload.ChatSessionId); err == nil {
		sessionId = &parsed
	}

	event := &entity.UsageEvent{
		Id:            uuid.New(),
		UserId:        userId,
		Kind:          constant.UsageEventKindChatTurn,
		ChatSessionId: sessionId,
		CreatedAt:     time.Now(),
	}
	if err := cs.usageEventRepo.Create(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to record chat turn event: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.republish(ctx, "CHAT_TURN_COMPLETED", map[string]interface{}{
		"user_id":    payload.UserId,
		"session_id": payload.ChatSessionId,
		"fallback":   payload.Fallback,
	})
	msg.Ack()
}

func (cs *consumerService) processNoteChunk(ctx context.Context, msg *message.Message) {
	var payload dto.NoteChunkAppendedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal note chunk event: %v", err)
		msg.Ack()
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		log.Printf("[ERROR] Invalid user id in note chunk event: %v", err)
		msg.Ack()
		return
	}

	event := &entity.UsageEvent{
		Id:        uuid.New(),
		UserId:    userId,
		Kind:      constant.UsageEventKindNoteChunk,
		CreatedAt: time.Now(),
	}
	if err := cs.usageEventRepo.Create(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to record note chunk event: %v", err)
		msg.Nack()
		return
	}

	cs.republish(ctx, "NOTE_CHUNK_APPENDED", map[string]interface{}{
		"user_id": payload.UserId,
		"note_id": payload.NoteId,
	})
	msg.Ack()
}

func (cs *consumerService) republish(ctx context.Context, eventType string, data map[string]interface{}) {
	if cs.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// We log error but don't fail as external publishing is auxiliary
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to republish %s event: %v", eventType, err)
	}
}
