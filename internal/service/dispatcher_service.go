package service

import (
	"context"
	"errors"
	"strings"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/pkg/command"
)

// IDispatcherService is the single entry point both transports use. Every
// inbound message produces exactly one Reply; failures become user-facing
// error replies, never transport errors.
type IDispatcherService interface {
	HandleMessage(ctx context.Context, inbound dto.InboundMessage) *dto.Reply
}

type dispatcherService struct {
	usageService IUsageService
	chatService  IChatService
	noteService  INoteService
	log          logger.ILogger
}

func NewDispatcherService(
	usageService IUsageService,
	chatService IChatService,
	noteService INoteService,
	log logger.ILogger,
) IDispatcherService {
	return &dispatcherService{
		usageService: usageService,
		chatService:  chatService,
		noteService:  noteService,
		log:          log,
	}
}

// labelActions maps keyboard button labels back to their action tokens, so
// transports that echo the label text (Telegram reply keyboards) behave the
// same as ones that send the token.
var labelActions = map[string]string{
	constant.BtnNewChat:    "/newchat",
	constant.BtnMakeNote:   "/makenote",
	constant.BtnYoutube:    "/youtube",
	constant.BtnSummary100: "/summary100",
	constant.BtnSummaryAll: "/summaryall",
	constant.BtnHelp:       "/help",

	constant.BtnResumeNote: command.ActionResumeNote,
	constant.BtnCopyNote:   command.ActionCopyNote,
	constant.BtnExportWord: command.ActionExportToWord,
	constant.BtnBackToMenu: command.ActionBackToMenu,
	constant.BtnNewNote:    command.ActionMakeNewNote,
}

func mainMenu() [][]dto.MenuOption {
	return [][]dto.MenuOption{
		{
			{Label: constant.BtnNewChat, Action: "/newchat"},
			{Label: constant.BtnMakeNote, Action: "/makenote"},
		},
		{
			{Label: constant.BtnSummary100, Action: "/summary100"},
			{Label: constant.BtnSummaryAll, Action: "/summaryall"},
		},
		{
			{Label: constant.BtnYoutube, Action: "/youtube"},
			{Label: constant.BtnHelp, Action: "/help"},
		},
	}
}

func noteMenu() [][]dto.MenuOption {
	return [][]dto.MenuOption{
		{
			{Label: constant.BtnResumeNote, Action: command.ActionResumeNote},
			{Label: constant.BtnCopyNote, Action: command.ActionCopyNote},
		},
		{
			{Label: constant.BtnExportWord, Action: command.ActionExportToWord},
		},
		{
			{Label: constant.BtnNewNote, Action: command.ActionMakeNewNote},
		},
		{
			{Label: constant.BtnBackToMenu, Action: command.ActionBackToMenu},
		},
	}
}

func mainReply(message string) *dto.Reply {
	return &dto.Reply{Message: message, Buttons: mainMenu()}
}

func noteReply(message string) *dto.Reply {
	return &dto.Reply{Message: message, Buttons: noteMenu()}
}

// FallbackReply is what transports send when a failure happens before the
// dispatcher could produce a reply of its own. It still carries the main
// menu so the user is never left without a keyboard.
func FallbackReply() *dto.Reply {
	return mainReply(constant.MsgGenericError)
}

func (s *dispatcherService) HandleMessage(ctx context.Context, inbound dto.InboundMessage) (reply *dto.Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("dispatcher", "panic while handling message", map[string]interface{}{
				"external_id": inbound.ExternalId,
				"panic":       r,
			})
			reply = mainReply(constant.MsgGenericError)
		}
	}()

	text := strings.TrimSpace(inbound.Text)
	if text == "" {
		return mainReply(constant.MsgEmptyMessage)
	}
	if action, ok := labelActions[text]; ok {
		text = action
	}

	user, err := s.usageService.UpsertUser(ctx, inbound.ExternalId)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return mainReply(constant.MsgUserStoreError)
		}
		return mainReply(constant.MsgGenericError)
	}

	if s.usageService.QuotaExceeded(user) {
		return mainReply(constant.MsgQuotaExceeded)
	}

	cmd := command.Classify(text)
	switch cmd.Kind {
	case command.KindStart:
		return s.handleStart(ctx, user)
	case command.KindHelp:
		return mainReply(constant.MsgHelp)
	case command.KindExternalLink:
		return mainReply(constant.MsgYoutube)
	case command.KindNewChat:
		return s.handleNewChat(ctx, user)
	case command.KindSummarize:
		return s.handleSummarize(ctx, user, cmd.Limit)
	case command.KindMakeNote:
		return s.handleMakeNote(ctx, user)
	case command.KindResumeNote:
		return s.handleResumeNote(ctx, user)
	case command.KindCopyNote:
		return s.handleCopyNote(ctx, user)
	case command.KindExportDocument:
		return s.handleExport(ctx, user)
	default:
		return s.handlePlainMessage(ctx, user, text)
	}
}

func (s *dispatcherService) handleStart(ctx context.Context, user *entity.User) *dto.Reply {
	// Returning to the menu closes any open note; it does not stay resumable.
	if err := s.noteService.FinishNote(ctx, user); err != nil {
		s.log.Error("dispatcher", "failed to finish note", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	return mainReply(constant.MsgWelcome)
}

func (s *dispatcherService) handleNewChat(ctx context.Context, user *entity.User) *dto.Reply {
	// A session reset always closes the note flow first, so a note never
	// survives across sessions.
	if err := s.noteService.FinishNote(ctx, user); err != nil {
		s.log.Error("dispatcher", "failed to finish note", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	if _, err := s.usageService.StartNewSession(ctx, user.Id); err != nil {
		s.log.Error("dispatcher", "failed to start new session", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgSessionStoreError)
	}
	return mainReply(constant.MsgNewChatStarted)
}

func (s *dispatcherService) handleSummarize(ctx context.Context, user *entity.User, limit int) *dto.Reply {
	message, err := s.chatService.Summarize(ctx, user, limit)
	if err != nil {
		s.log.Error("dispatcher", "failed to summarize", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	return mainReply(message)
}

func (s *dispatcherService) handleMakeNote(ctx context.Context, user *entity.User) *dto.Reply {
	if err := s.noteService.MakeNote(ctx, user); err != nil {
		s.log.Error("dispatcher", "failed to create note", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgNoteCreateError)
	}
	return noteReply(constant.MsgNoteCreated)
}

func (s *dispatcherService) handleResumeNote(ctx context.Context, user *entity.User) *dto.Reply {
	ok, err := s.noteService.ResumeNote(ctx, user)
	if err != nil {
		s.log.Error("dispatcher", "failed to resume note", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	if !ok {
		return mainReply(constant.MsgNoActiveNote)
	}
	return noteReply(constant.MsgNoteResume)
}

func (s *dispatcherService) handleCopyNote(ctx context.Context, user *entity.User) *dto.Reply {
	text, err := s.noteService.NoteText(ctx, user)
	if err != nil {
		s.log.Error("dispatcher", "failed to read note", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	if text == "" {
		return noteReply(constant.MsgNoteEmpty)
	}
	return noteReply(constant.MsgNoteCopyPrefix + text)
}

func (s *dispatcherService) handleExport(ctx context.Context, user *entity.User) *dto.Reply {
	document, fileName, err := s.chatService.ExportSessionDocx(ctx, user)
	if err != nil {
		s.log.Error("dispatcher", "failed to export session", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	if len(document) == 0 {
		return mainReply(constant.MsgSessionEmpty)
	}
	reply := mainReply(constant.MsgSessionExported)
	reply.Document = document
	reply.FileName = fileName
	return reply
}

func (s *dispatcherService) handlePlainMessage(ctx context.Context, user *entity.User, text string) *dto.Reply {
	if user.Mode == constant.UserModeNoteMaking {
		if err := s.noteService.AppendChunk(ctx, user, text); err != nil {
			s.log.Error("dispatcher", "failed to append note chunk", map[string]interface{}{"error": err.Error()})
			return noteReply(constant.MsgGenericError)
		}
		return noteReply(constant.MsgNoteChunkSaved)
	}

	session, err := s.usageService.GetOrCreateActiveSession(ctx, user.Id)
	if err != nil {
		s.log.Error("dispatcher", "failed to resolve active session", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgSessionStoreError)
	}

	message, err := s.chatService.HandlePlainMessage(ctx, user, session, text)
	if err != nil {
		s.log.Error("dispatcher", "failed to handle chat turn", map[string]interface{}{"error": err.Error()})
		return mainReply(constant.MsgGenericError)
	}
	return mainReply(message)
}
