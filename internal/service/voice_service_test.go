package service

import (
	"context"
	"testing"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/pkg/transcribe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriber struct {
	text string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, nil
}

type voiceFixture struct {
	svc       IVoiceService
	usage     IUsageService
	chunkRepo *fakeChunkRepo
	llm       *fakeLLM
	noteSvc   INoteService
}

func newVoiceFixture(transcript string) *voiceFixture {
	userRepo := &fakeUserRepo{}
	sessionRepo := &fakeSessionRepo{}
	messageRepo := &fakeMessageRepo{}
	chunkRepo := &fakeChunkRepo{}
	model := &fakeLLM{response: "پاسخ مدل"}
	publisher := &fakePublisher{}

	usage := NewUsageService(userRepo, sessionRepo, 400)
	chat := NewChatService(sessionRepo, messageRepo, usage, model, publisher, nopLogger{})
	note := NewNoteService(&fakeNoteRepo{}, chunkRepo, usage, publisher, nopLogger{})

	assembler := transcribe.NewAssembler(&fakeTranscriber{text: transcript}, 3, time.Millisecond)
	return &voiceFixture{
		svc:       NewVoiceService(assembler, model, usage, chat, note, 3*1024*1024, nopLogger{}),
		usage:     usage,
		chunkRepo: chunkRepo,
		llm:       model,
		noteSvc:   note,
	}
}

func voiceChunk(size int) []transcribe.Chunk {
	return []transcribe.Chunk{{Name: "part-0.ogg", ContentType: "audio/ogg", Audio: make([]byte, size)}}
}

func TestHandleVoiceRejectsOversizedChunk(t *testing.T) {
	f := newVoiceFixture("سلام")

	_, err := f.svc.HandleVoice(context.Background(), "tg-1", voiceChunk(3*1024*1024+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChunkTooLarge)
}

func TestHandleVoiceRejectsNonAudioChunk(t *testing.T) {
	f := newVoiceFixture("سلام")

	chunks := []transcribe.Chunk{{Name: "clip.mp4", ContentType: "video/mp4", Audio: make([]byte, 128)}}
	_, err := f.svc.HandleVoice(context.Background(), "tg-1", chunks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedAudio)
	assert.Zero(t, f.llm.calls())
}

func TestHandleVoiceRejectsEmptyUpload(t *testing.T) {
	f := newVoiceFixture("سلام")

	_, err := f.svc.HandleVoice(context.Background(), "tg-1", nil)
	require.Error(t, err)
}

func TestHandleVoiceEmptyTranscript(t *testing.T) {
	f := newVoiceFixture("")

	reply, err := f.svc.HandleVoice(context.Background(), "tg-1", voiceChunk(128))
	require.NoError(t, err)

	assert.Equal(t, constant.MsgVoiceNoTranscript, reply.Message)
	assert.Zero(t, f.llm.calls(), "no correction pass for an empty transcript")
}

func TestHandleVoiceBecomesChatTurn(t *testing.T) {
	f := newVoiceFixture("متن پیاده‌شده")

	reply, err := f.svc.HandleVoice(context.Background(), "tg-1", voiceChunk(128))
	require.NoError(t, err)

	assert.Equal(t, "پاسخ مدل", reply.Message)
	// One correction pass plus one chat completion.
	assert.Equal(t, 2, f.llm.calls())

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.UsageCount)
}

func TestHandleVoiceAppendsNoteChunkInNoteMode(t *testing.T) {
	f := newVoiceFixture("متن یادداشت")

	user, err := f.usage.UpsertUser(context.Background(), "tg-1")
	require.NoError(t, err)
	require.NoError(t, f.noteSvc.MakeNote(context.Background(), user))

	reply, err := f.svc.HandleVoice(context.Background(), "tg-1", voiceChunk(128))
	require.NoError(t, err)

	assert.Equal(t, constant.MsgNoteChunkSaved, reply.Message)
	require.Len(t, f.chunkRepo.chunks, 1)
	assert.Equal(t, 0, user.UsageCount, "note chunks never spend chat quota")
}
