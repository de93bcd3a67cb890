package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one conversation thread. At most one session per user is
// active at any time; Context holds the rolling summary used for prompts.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Active    bool
	Context   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
}
