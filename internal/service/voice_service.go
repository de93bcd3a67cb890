package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/pkg/llm"
	"ai-copychat-be/pkg/transcribe"
)

// ErrChunkTooLarge is returned for oversized audio chunks; transports map it
// to a client error.
var ErrChunkTooLarge = errors.New("audio chunk exceeds the size limit")

// ErrUnsupportedAudio is returned when an uploaded chunk does not carry an
// audio content type.
var ErrUnsupportedAudio = errors.New("only audio files are supported")

type IVoiceService interface {
	// HandleVoice transcribes the uploaded audio chunks, cleans the
	// transcript up with a model pass, and then treats the result exactly
	// like an inbound text message: a note chunk in note mode, a chat turn
	// otherwise.
	HandleVoice(ctx context.Context, externalId string, chunks []transcribe.Chunk) (*dto.Reply, error)
}

type voiceService struct {
	assembler     *transcribe.Assembler
	llmProvider   llm.LLMProvider
	usageService  IUsageService
	chatService   IChatService
	noteService   INoteService
	maxChunkBytes int
	log           logger.ILogger
}

func NewVoiceService(
	assembler *transcribe.Assembler,
	llmProvider llm.LLMProvider,
	usageService IUsageService,
	chatService IChatService,
	noteService INoteService,
	maxChunkBytes int,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		assembler:     assembler,
		llmProvider:   llmProvider,
		usageService:  usageService,
		chatService:   chatService,
		noteService:   noteService,
		maxChunkBytes: maxChunkBytes,
		log:           log,
	}
}

func (s *voiceService) HandleVoice(ctx context.Context, externalId string, chunks []transcribe.Chunk) (*dto.Reply, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no audio chunks submitted")
	}
	for _, chunk := range chunks {
		if len(chunk.Audio) > s.maxChunkBytes {
			return nil, fmt.Errorf("%w: %s (%d bytes)", ErrChunkTooLarge, chunk.Name, len(chunk.Audio))
		}
		if !strings.HasPrefix(chunk.ContentType, "audio/") {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedAudio, chunk.Name, chunk.ContentType)
		}
	}

	user, err := s.usageService.UpsertUser(ctx, externalId)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return mainReply(constant.MsgUserStoreError), nil
		}
		return mainReply(constant.MsgGenericError), nil
	}
	if s.usageService.QuotaExceeded(user) {
		return mainReply(constant.MsgQuotaExceeded), nil
	}

	started := time.Now()
	transcript := s.assembler.TranscribeAll(ctx, chunks)
	if transcript == "" {
		return mainReply(constant.MsgVoiceNoTranscript), nil
	}
	s.log.Info("voice", "transcription completed", map[string]interface{}{
		"chunks":      len(chunks),
		"duration_ms": time.Since(started).Milliseconds(),
	})

	transcript = s.correctTranscript(ctx, transcript)

	if user.Mode == constant.UserModeNoteMaking {
		if err := s.noteService.AppendChunk(ctx, user, transcript); err != nil {
			s.log.Error("voice", "failed to append note chunk", map[string]interface{}{"error": err.Error()})
			return noteReply(constant.MsgGenericError), nil
		}
		return noteReply(constant.MsgNoteChunkSaved), nil
	}

	session, err := s.usageService.GetOrCreateActiveSession(ctx, user.Id)
	if err != nil {
		s.log.Error("voice", "failed to resolve active session", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgSessionStoreError), nil
	}

	message, err := s.chatService.HandlePlainMessage(ctx, user, session, transcript)
	if err != nil {
		s.log.Error("voice", "failed to handle chat turn", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError), nil
	}
	return mainReply(message), nil
}

// correctTranscript runs a cleanup pass over the raw speech-to-text output.
// On failure the raw transcript is kept; correction is best effort.
func (s *voiceService) correctTranscript(ctx context.Context, transcript string) string {
	corrected, err := s.llmProvider.Generate(ctx, constant.PromptTranscriptCorrection+transcript)
	if err != nil || strings.TrimSpace(corrected) == "" {
		s.log.Warn("voice", "transcript correction failed, keeping raw text", map[string]interface{}{
			"error": fmt.Sprint(err),
		})
		return transcript
	}
	return strings.TrimSpace(corrected)
}
