package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is assembled from ordered chunks; full text is the chunks joined by a
// single space in creation order. Notes are deactivated, never deleted.
type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Active    bool
	CreatedAt time.Time
}

type NoteChunk struct {
	Id        uuid.UUID
	NoteId    uuid.UUID
	Content   string
	CreatedAt time.Time
}
