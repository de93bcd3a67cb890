package service

import (
	"context"
	"testing"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatcherFixture struct {
	svc       IDispatcherService
	usage     IUsageService
	userRepo  *fakeUserRepo
	noteRepo  *fakeNoteRepo
	chunkRepo *fakeChunkRepo
	llm       *fakeLLM
}

func newDispatcherFixture() *dispatcherFixture {
	userRepo := &fakeUserRepo{}
	sessionRepo := &fakeSessionRepo{}
	messageRepo := &fakeMessageRepo{}
	noteRepo := &fakeNoteRepo{}
	chunkRepo := &fakeChunkRepo{}
	model := &fakeLLM{response: "پاسخ مدل"}
	publisher := &fakePublisher{}

	usage := NewUsageService(userRepo, sessionRepo, 400)
	chat := NewChatService(sessionRepo, messageRepo, usage, model, publisher, nopLogger{})
	note := NewNoteService(noteRepo, chunkRepo, usage, publisher, nopLogger{})

	return &dispatcherFixture{
		svc:       NewDispatcherService(usage, chat, note, nopLogger{}),
		usage:     usage,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		chunkRepo: chunkRepo,
		llm:       model,
	}
}

func handle(f *dispatcherFixture, text string) *dto.Reply {
	return f.svc.HandleMessage(context.Background(), dto.InboundMessage{
		ExternalId: "tg-1",
		Text:       text,
	})
}

func TestHandleMessageEmptyText(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, "   ")
	require.NotNil(t, reply)
	assert.Equal(t, constant.MsgEmptyMessage, reply.Message)
	assert.Zero(t, f.llm.calls())
}

func TestHandleMessageStoreFailure(t *testing.T) {
	f := newDispatcherFixture()
	f.userRepo.fail = true

	reply := handle(f, "سلام")
	assert.Equal(t, constant.MsgUserStoreError, reply.Message)
}

func TestHandleMessageQuotaGateBlocksEverything(t *testing.T) {
	f := newDispatcherFixture()

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	user.UsageCount = 400

	for _, text := range []string{"سلام", "/newchat", "/summaryall"} {
		reply := handle(f, text)
		assert.Equal(t, constant.MsgQuotaExceeded, reply.Message, "input %q must be quota gated", text)
	}
	assert.Zero(t, f.llm.calls())
}

func TestHandleMessageStartShowsMainMenu(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, "/start")
	assert.Equal(t, constant.MsgWelcome, reply.Message)
	assert.NotEmpty(t, reply.Buttons)
}

func TestHandleMessageButtonLabelActsLikeCommand(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, constant.BtnHelp)
	assert.Equal(t, constant.MsgHelp, reply.Message)
}

func TestHandleMessageUnknownSlashCommandBecomesChat(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, "/unknowncmd")
	assert.Equal(t, "پاسخ مدل", reply.Message)
	assert.Equal(t, 1, f.llm.calls(), "unknown commands degrade to conversation")
}

func TestHandleMessagePlainChatSpendsQuota(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, "سلام")
	assert.Equal(t, "پاسخ مدل", reply.Message)

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.UsageCount)
}

func TestHandleMessageNewChatResetsSession(t *testing.T) {
	f := newDispatcherFixture()

	handle(f, "سلام")
	reply := handle(f, "/newchat")
	assert.Equal(t, constant.MsgNewChatStarted, reply.Message)
}

func TestHandleMessageNoteLifecycle(t *testing.T) {
	f := newDispatcherFixture()

	// No note yet: resume declines, copy has nothing.
	reply := handle(f, "resume_note")
	assert.Equal(t, constant.MsgNoActiveNote, reply.Message)

	// Create a note and append two chunks.
	reply = handle(f, "/makenote")
	assert.Equal(t, constant.MsgNoteCreated, reply.Message)

	reply = handle(f, "بخش اول")
	assert.Equal(t, constant.MsgNoteChunkSaved, reply.Message)
	time.Sleep(2 * time.Millisecond)
	reply = handle(f, "بخش دوم")
	assert.Equal(t, constant.MsgNoteChunkSaved, reply.Message)

	assert.Zero(t, f.llm.calls(), "note chunks never reach the model")

	// Copy returns the chunks joined by a space, in creation order.
	reply = handle(f, "copy_note")
	assert.Equal(t, constant.MsgNoteCopyPrefix+"بخش اول بخش دوم", reply.Message)

	// Back to menu finishes the note; it is closed, not resumable.
	reply = handle(f, "back_to_menu")
	assert.Equal(t, constant.MsgWelcome, reply.Message)

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	assert.Equal(t, constant.UserModeNone, user.Mode)
	assert.Nil(t, user.ActiveNoteId)
	for _, note := range f.noteRepo.notes {
		assert.False(t, note.Active)
	}

	reply = handle(f, "سلام")
	assert.Equal(t, "پاسخ مدل", reply.Message, "plain chat resumes outside note mode")

	reply = handle(f, "resume_note")
	assert.Equal(t, constant.MsgNoActiveNote, reply.Message)
}

func TestHandleMessageNewChatFinishesNote(t *testing.T) {
	f := newDispatcherFixture()

	handle(f, "/makenote")
	reply := handle(f, "/newchat")
	assert.Equal(t, constant.MsgNewChatStarted, reply.Message)

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	assert.Equal(t, constant.UserModeNone, user.Mode)
	assert.Nil(t, user.ActiveNoteId)
	require.Len(t, f.noteRepo.notes, 1)
	assert.False(t, f.noteRepo.notes[0].Active)

	// The next message is a chat turn, not a note chunk.
	reply = handle(f, "سلام")
	assert.Equal(t, "پاسخ مدل", reply.Message)
	assert.Empty(t, f.chunkRepo.chunks)
}

func TestFallbackReplyCarriesMainMenu(t *testing.T) {
	reply := FallbackReply()

	assert.Equal(t, constant.MsgGenericError, reply.Message)
	assert.NotEmpty(t, reply.Buttons)
}

func TestHandleMessageMakeNoteRetiresPreviousNote(t *testing.T) {
	f := newDispatcherFixture()

	handle(f, "/makenote")
	handle(f, "/makenote")

	var active int
	for _, note := range f.noteRepo.notes {
		if note.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.Len(t, f.noteRepo.notes, 2)
}

func TestHandleMessageExportEmptySession(t *testing.T) {
	f := newDispatcherFixture()

	reply := handle(f, "export_to_word")
	assert.Equal(t, constant.MsgSessionEmpty, reply.Message)
	assert.Empty(t, reply.Document)
}

func TestHandleMessageExportAfterChat(t *testing.T) {
	f := newDispatcherFixture()

	handle(f, "سلام")
	reply := handle(f, "export_to_word")

	assert.Equal(t, constant.MsgSessionExported, reply.Message)
	assert.NotEmpty(t, reply.Document)
	assert.NotEmpty(t, reply.FileName)
}
