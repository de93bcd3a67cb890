package contract

import (
	"context"

	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
}

type NoteChunkRepository interface {
	Create(ctx context.Context, chunk *entity.NoteChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteChunk, error)
}
