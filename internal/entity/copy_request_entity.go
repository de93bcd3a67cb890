package entity

import (
	"time"

	"github.com/google/uuid"
)

// CopyRequest records one form-driven copy generation, keyed by user+date for
// the daily cap. The submitted form is kept verbatim as JSON.
type CopyRequest struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Date      string // YYYY-MM-DD
	Form      []byte
	CreatedAt time.Time
}

// UsageEvent is an audit row written by the event consumer, one per chat turn
// or note chunk append.
type UsageEvent struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Kind          string
	ChatSessionId *uuid.UUID
	CreatedAt     time.Time
}
