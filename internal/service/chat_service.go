package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/internal/repository/contract"
	"ai-copychat-be/internal/repository/specification"
	"ai-copychat-be/pkg/docx"
	"ai-copychat-be/pkg/llm"

	"github.com/google/uuid"
)

// historyWindow is how many recent messages are replayed into each prompt.
const historyWindow = 10

// overviewPromptLength truncates the first prompt shown in session listings.
const overviewPromptLength = 50

type IChatService interface {
	// HandlePlainMessage runs one chat turn: persist the user message, ask
	// the model with rolling context plus recent history, persist the reply.
	// A model failure produces the fallback reply; the turn still counts
	// against the monthly quota either way.
	HandlePlainMessage(ctx context.Context, user *entity.User, session *entity.ChatSession, text string) (string, error)

	// Summarize condenses the user's recent messages and installs the result
	// as the active session's rolling context. It never spends quota, and an
	// empty history short-circuits without calling the model.
	Summarize(ctx context.Context, user *entity.User, limit int) (string, error)

	SessionsOverview(ctx context.Context, userId uuid.UUID) ([]*dto.SessionOverviewResponse, error)
	SessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error)

	// ExportSessionDocx renders the active session transcript as a Word
	// document. Returns MsgSessionEmpty semantics via empty document when
	// there is nothing to export.
	ExportSessionDocx(ctx context.Context, user *entity.User) ([]byte, string, error)

	// ExportSessionById renders one specific session the user owns; an
	// unknown or foreign session id is an error.
	ExportSessionById(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]byte, string, error)
}

type chatService struct {
	sessionRepo  contract.ChatSessionRepository
	messageRepo  contract.ChatMessageRepository
	usageService IUsageService
	llmProvider  llm.LLMProvider
	publisher    IPublisherService
	log          logger.ILogger
}

func NewChatService(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	usageService IUsageService,
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:  sessionRepo,
		messageRepo:  messageRepo,
		usageService: usageService,
		llmProvider:  llmProvider,
		publisher:    publisher,
		log:          log,
	}
}

func (s *chatService) HandlePlainMessage(ctx context.Context, user *entity.User, session *entity.ChatSession, text string) (string, error) {
	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        user.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       text,
		CreatedAt:     time.Now(),
	}
	if err := s.messageRepo.Create(ctx, userMessage); err != nil {
		return "", fmt.Errorf("failed to persist user message: %w", err)
	}

	prompt, err := s.buildPrompt(ctx, session, text)
	if err != nil {
		return "", err
	}

	fallback := false
	reply, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.log.Warn("chat", "model call failed, serving fallback", map[string]interface{}{
			"user_id": user.Id,
			"error":   fmt.Sprint(err),
		})
		reply = constant.MsgAIFallback
		fallback = true
	}

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		UserId:        user.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       reply,
		CreatedAt:     time.Now(),
	}
	if err := s.messageRepo.Create(ctx, assistantMessage); err != nil {
		return "", fmt.Errorf("failed to persist assistant message: %w", err)
	}

	// The turn is spent whether or not the model answered.
	if err := s.usageService.IncrementUsage(ctx, user); err != nil {
		return "", err
	}

	s.publishTurnCompleted(ctx, user.Id, session.Id, fallback)

	return reply, nil
}

func (s *chatService) buildPrompt(ctx context.Context, session *entity.ChatSession, text string) (string, error) {
	recent, err := s.messageRepo.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyWindow},
	)
	if err != nil {
		return "", fmt.Errorf("failed to load chat history: %w", err)
	}

	// Fetched newest-first; replayed oldest-first.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	var b strings.Builder
	b.WriteString(constant.PromptHistoryHeader)
	if strings.TrimSpace(session.Context) != "" {
		b.WriteString(session.Context)
	} else {
		b.WriteString(constant.PromptContextPlaceholder)
	}
	b.WriteString("\n")
	for _, msg := range recent {
		label := constant.PromptRoleUserLabel
		if msg.Role == constant.ChatMessageRoleAssistant {
			label = constant.PromptRoleAssistantLabel
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString(constant.PromptUserMessageHeader)
	b.WriteString(text)
	b.WriteString(constant.PromptReplyConstraint)

	return b.String(), nil
}

func (s *chatService) Summarize(ctx context.Context, user *entity.User, limit int) (string, error) {
	messages, err := s.messageRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return "", fmt.Errorf("failed to load messages for summary: %w", err)
	}
	if len(messages) == 0 {
		// An empty history still resets the rolling context to the
		// placeholder, so stale summaries do not linger.
		session, err := s.usageService.GetOrCreateActiveSession(ctx, user.Id)
		if err != nil {
			return "", err
		}
		session.Context = constant.MsgNothingToSummarize
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return "", fmt.Errorf("failed to store session context: %w", err)
		}
		return constant.MsgNothingToSummarize, nil
	}

	// Oldest-first for the prompt, both sides of the conversation labeled.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	var b strings.Builder
	b.WriteString(constant.PromptSummarizePrefix)
	for _, msg := range messages {
		label := constant.PromptRoleUserLabel
		if msg.Role == constant.ChatMessageRoleAssistant {
			label = constant.PromptRoleAssistantLabel
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	summary, err := s.llmProvider.Generate(ctx, b.String())
	if err != nil || strings.TrimSpace(summary) == "" {
		s.log.Warn("chat", "summary model call failed", map[string]interface{}{
			"user_id": user.Id,
			"error":   fmt.Sprint(err),
		})
		return constant.MsgAIFallback, nil
	}

	// The summary becomes the rolling context of the active session.
	session, err := s.usageService.GetOrCreateActiveSession(ctx, user.Id)
	if err != nil {
		return "", err
	}
	session.Context = summary
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", fmt.Errorf("failed to store session context: %w", err)
	}

	return constant.MsgSummaryCreated + summary, nil
}

func (s *chatService) SessionsOverview(ctx context.Context, userId uuid.UUID) ([]*dto.SessionOverviewResponse, error) {
	sessions, err := s.sessionRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	overview := make([]*dto.SessionOverviewResponse, 0, len(sessions))
	for _, session := range sessions {
		first, err := s.messageRepo.FindOne(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.ByRole{Role: constant.ChatMessageRoleUser},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load first prompt: %w", err)
		}

		firstPrompt := ""
		if first != nil {
			firstPrompt = truncateRunes(first.Content, overviewPromptLength)
		}

		overview = append(overview, &dto.SessionOverviewResponse{
			SessionId:   session.Id.String(),
			CreatedAt:   session.CreatedAt.Format(time.RFC3339),
			FirstPrompt: firstPrompt,
		})
	}

	return overview, nil
}

func (s *chatService) SessionHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionHistoryResponse, error) {
	session, err := s.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found")
	}

	messages, err := s.messageRepo.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load session messages: %w", err)
	}

	res := &dto.SessionHistoryResponse{
		SessionId: sessionId.String(),
		Messages:  make([]dto.SessionHistoryMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		res.Messages = append(res.Messages, dto.SessionHistoryMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return res, nil
}

func (s *chatService) ExportSessionDocx(ctx context.Context, user *entity.User) ([]byte, string, error) {
	session, err := s.usageService.GetOrCreateActiveSession(ctx, user.Id)
	if err != nil {
		return nil, "", err
	}
	return s.exportTranscript(ctx, session.Id)
}

func (s *chatService) ExportSessionById(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]byte, string, error) {
	session, err := s.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, "", fmt.Errorf("session not found")
	}
	return s.exportTranscript(ctx, session.Id)
}

func (s *chatService) exportTranscript(ctx context.Context, sessionId uuid.UUID) ([]byte, string, error) {
	messages, err := s.messageRepo.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session messages: %w", err)
	}
	if len(messages) == 0 {
		return nil, "", nil
	}

	paragraphs := make([]docx.Paragraph, 0, len(messages)*2)
	for _, msg := range messages {
		label := constant.PromptRoleUserLabel
		if msg.Role == constant.ChatMessageRoleAssistant {
			label = constant.PromptRoleAssistantLabel
		}
		paragraphs = append(paragraphs,
			docx.Paragraph{Text: label, Bold: true},
			docx.Paragraph{Text: msg.Content},
		)
	}

	document, err := docx.Build(paragraphs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build document: %w", err)
	}

	fileName := fmt.Sprintf("chat-%s.docx", time.Now().Format("2006-01-02"))
	return document, fileName, nil
}

func (s *chatService) publishTurnCompleted(ctx context.Context, userId, sessionId uuid.UUID, fallback bool) {
	payload, err := json.Marshal(dto.ChatTurnCompletedMessage{
		UserId:        userId.String(),
		ChatSessionId: sessionId.String(),
		Fallback:      fallback,
	})
	if err != nil {
		return
	}
	// Auxiliary; the turn already succeeded.
	if err := s.publisher.Publish(ctx, constant.TopicChatTurnCompleted, payload); err != nil {
		s.log.Warn("chat", "failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}
}

func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
