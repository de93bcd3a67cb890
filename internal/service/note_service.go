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

	"github.com/google/uuid"
)

type INoteService interface {
	// MakeNote opens a fresh note, retires any previously active one and
	// switches the user into note-taking mode.
	MakeNote(ctx context.Context, user *entity.User) error

	// ResumeNote re-enters note-taking mode against the existing active
	// note. Returns false when the user has no note to resume.
	ResumeNote(ctx context.Context, user *entity.User) (bool, error)

	// NoteText returns the full text of the active note: chunks joined by a
	// single space in creation order. Empty string when the note has no
	// content (or there is no active note).
	NoteText(ctx context.Context, user *entity.User) (string, error)

	// FinishNote closes the note flow: the active note is deactivated and
	// the user drops back to plain chat. Safe to call when no note is open.
	FinishNote(ctx context.Context, user *entity.User) error

	// AppendChunk stores one piece of text on the active note.
	AppendChunk(ctx context.Context, user *entity.User, text string) error
}

type noteService struct {
	noteRepo     contract.NoteRepository
	chunkRepo    contract.NoteChunkRepository
	usageService IUsageService
	publisher    IPublisherService
	log          logger.ILogger
}

func NewNoteService(
	noteRepo contract.NoteRepository,
	chunkRepo contract.NoteChunkRepository,
	usageService IUsageService,
	publisher IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepo:     noteRepo,
		chunkRepo:    chunkRepo,
		usageService: usageService,
		publisher:    publisher,
		log:          log,
	}
}

func (s *noteService) MakeNote(ctx context.Context, user *entity.User) error {
	active, err := s.noteRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.ActiveOnly{},
	)
	if err != nil {
		return fmt.Errorf("failed to load active notes: %w", err)
	}
	for _, note := range active {
		note.Active = false
		if err := s.noteRepo.Update(ctx, note); err != nil {
			return fmt.Errorf("failed to retire note: %w", err)
		}
	}

	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    user.Id,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return s.usageService.SetUserState(ctx, user, constant.UserModeNoteMaking, &note.Id)
}

func (s *noteService) ResumeNote(ctx context.Context, user *entity.User) (bool, error) {
	if user.ActiveNoteId == nil {
		return false, nil
	}
	note, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: *user.ActiveNoteId})
	if err != nil {
		return false, fmt.Errorf("failed to load note: %w", err)
	}
	if note == nil {
		return false, nil
	}

	if err := s.usageService.SetUserState(ctx, user, constant.UserModeNoteMaking, user.ActiveNoteId); err != nil {
		return false, err
	}
	return true, nil
}

func (s *noteService) NoteText(ctx context.Context, user *entity.User) (string, error) {
	if user.ActiveNoteId == nil {
		return "", nil
	}

	chunks, err := s.chunkRepo.FindAll(ctx,
		specification.ByNoteID{NoteID: *user.ActiveNoteId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return "", fmt.Errorf("failed to load note chunks: %w", err)
	}

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) != "" {
			parts = append(parts, chunk.Content)
		}
	}
	return strings.Join(parts, " "), nil
}

func (s *noteService) FinishNote(ctx context.Context, user *entity.User) error {
	if user.ActiveNoteId != nil {
		note, err := s.noteRepo.FindOne(ctx, specification.ByID{ID: *user.ActiveNoteId})
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
		if note != nil {
			note.Active = false
			if err := s.noteRepo.Update(ctx, note); err != nil {
				return fmt.Errorf("failed to finish note: %w", err)
			}
		}
	}
	if user.Mode == constant.UserModeNone && user.ActiveNoteId == nil {
		return nil
	}
	return s.usageService.SetUserState(ctx, user, constant.UserModeNone, nil)
}

func (s *noteService) AppendChunk(ctx context.Context, user *entity.User, text string) error {
	if user.ActiveNoteId == nil {
		return fmt.Errorf("no active note")
	}

	chunk := &entity.NoteChunk{
		Id:        uuid.New(),
		NoteId:    *user.ActiveNoteId,
		Content:   text,
		CreatedAt: time.Now(),
	}
	if err := s.chunkRepo.Create(ctx, chunk); err != nil {
		return fmt.Errorf("failed to append note chunk: %w", err)
	}

	payload, err := json.Marshal(dto.NoteChunkAppendedMessage{
		UserId: user.Id.String(),
		NoteId: user.ActiveNoteId.String(),
	})
	if err == nil {
		if err := s.publisher.Publish(ctx, constant.TopicNoteChunkAppended, payload); err != nil {
			s.log.Warn("note", "failed to publish chunk event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}
