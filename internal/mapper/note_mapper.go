package mapper

import (
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) NoteToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Active:    n.Active,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NoteMapper) NoteToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Active:    n.Active,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NoteMapper) ChunkToEntity(c *model.NoteChunk) *entity.NoteChunk {
	if c == nil {
		return nil
	}
	return &entity.NoteChunk{
		Id:        c.Id,
		NoteId:    c.NoteId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *NoteMapper) ChunkToModel(c *entity.NoteChunk) *model.NoteChunk {
	if c == nil {
		return nil
	}
	return &model.NoteChunk{
		Id:        c.Id,
		NoteId:    c.NoteId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

type CopyMapper struct{}

func NewCopyMapper() *CopyMapper {
	return &CopyMapper{}
}

func (m *CopyMapper) RequestToEntity(r *model.CopyRequest) *entity.CopyRequest {
	if r == nil {
		return nil
	}
	return &entity.CopyRequest{
		Id:        r.Id,
		UserId:    r.UserId,
		Date:      r.Date,
		Form:      []byte(r.Form),
		CreatedAt: r.CreatedAt,
	}
}

func (m *CopyMapper) RequestToModel(r *entity.CopyRequest) *model.CopyRequest {
	if r == nil {
		return nil
	}
	return &model.CopyRequest{
		Id:        r.Id,
		UserId:    r.UserId,
		Date:      r.Date,
		Form:      datatypes.JSON(r.Form),
		CreatedAt: r.CreatedAt,
	}
}

func (m *CopyMapper) UsageEventToModel(e *entity.UsageEvent) *model.UsageEvent {
	if e == nil {
		return nil
	}
	return &model.UsageEvent{
		Id:            e.Id,
		UserId:        e.UserId,
		Kind:          e.Kind,
		ChatSessionId: e.ChatSessionId,
		CreatedAt:     e.CreatedAt,
	}
}
