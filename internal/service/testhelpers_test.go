package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/repository/specification"
	"ai-copychat-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret the same specification values
// the gorm implementations receive, so service queries behave identically.

type querySpec struct {
	id            *uuid.UUID
	userId        *uuid.UUID
	externalId    *string
	chatSessionId *uuid.UUID
	noteId        *uuid.UUID
	role          *string
	date          *string
	activeOnly    bool
	orderDesc     bool
	limit         int
}

func parseSpecs(specs []specification.Specification) querySpec {
	q := querySpec{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			q.id = &id
		case specification.UserOwnedBy:
			id := v.UserID
			q.userId = &id
		case specification.ByExternalId:
			e := v.ExternalId
			q.externalId = &e
		case specification.ByChatSessionID:
			id := v.ChatSessionID
			q.chatSessionId = &id
		case specification.ByNoteID:
			id := v.NoteID
			q.noteId = &id
		case specification.ByRole:
			r := v.Role
			q.role = &r
		case specification.ByDate:
			d := v.Date
			q.date = &d
		case specification.ActiveOnly:
			q.activeOnly = true
		case specification.OrderBy:
			q.orderDesc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
		}
	}
	return q
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
	fail  bool
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.fail {
		return errors.New("store down")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error {
	if r.fail {
		return errors.New("store down")
	}
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.fail {
		return nil, errors.New("store down")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	for _, u := range r.users {
		if q.externalId != nil && u.ExternalId != *q.externalId {
			continue
		}
		if q.id != nil && u.Id != *q.id {
			continue
		}
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.ChatSession
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, _ *entity.ChatSession) error {
	return nil
}

func (r *fakeSessionRepo) matches(s *entity.ChatSession, q querySpec) bool {
	if q.id != nil && s.Id != *q.id {
		return false
	}
	if q.userId != nil && s.UserId != *q.userId {
		return false
	}
	if q.activeOnly && !s.Active {
		return false
	}
	return true
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	for _, s := range r.sessions {
		if r.matches(s, q) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if r.matches(s, q) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.orderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(context.Background(), specs...)
	return int64(len(all)), nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) matches(m *entity.ChatMessage, q querySpec) bool {
	if q.id != nil && m.Id != *q.id {
		return false
	}
	if q.userId != nil && m.UserId != *q.userId {
		return false
	}
	if q.chatSessionId != nil && m.ChatSessionId != *q.chatSessionId {
		return false
	}
	if q.role != nil && m.Role != *q.role {
		return false
	}
	return true
}

func (r *fakeMessageRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(context.Background(), specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if r.matches(m, q) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.orderDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if q.limit >= 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(context.Background(), specs...)
	return int64(len(all)), nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes []*entity.Note
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, _ *entity.Note) error {
	return nil
}

func (r *fakeNoteRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	all, err := r.FindAll(context.Background(), specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	var out []*entity.Note
	for _, n := range r.notes {
		if q.id != nil && n.Id != *q.id {
			continue
		}
		if q.userId != nil && n.UserId != *q.userId {
			continue
		}
		if q.activeOnly && !n.Active {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

type fakeChunkRepo struct {
	mu     sync.Mutex
	chunks []*entity.NoteChunk
}

func (r *fakeChunkRepo) Create(_ context.Context, chunk *entity.NoteChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, chunk)
	return nil
}

func (r *fakeChunkRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.NoteChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	var out []*entity.NoteChunk
	for _, c := range r.chunks {
		if q.noteId != nil && c.NoteId != *q.noteId {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type fakeCopyRequestRepo struct {
	mu       sync.Mutex
	requests []*entity.CopyRequest
}

func (r *fakeCopyRequestRepo) Create(_ context.Context, request *entity.CopyRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, request)
	return nil
}

func (r *fakeCopyRequestRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := parseSpecs(specs)
	var count int64
	for _, req := range r.requests {
		if q.userId != nil && req.UserId != *q.userId {
			continue
		}
		if q.date != nil && req.Date != *q.date {
			continue
		}
		count++
	}
	return count, nil
}

// fakeLLM records prompts and serves canned responses (or failures).
type fakeLLM struct {
	mu       sync.Mutex
	prompts  []string
	response string
	fail     bool
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.fail {
		return "", errors.New("model unavailable")
	}
	return f.response, nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	last := ""
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return f.Generate(ctx, last, options...)
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakePublisher) Publish(_ context.Context, topic string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
