package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is keyed by an opaque external identity (Telegram chat id or the web
// auth subject). BillingMonth/UsageCount implement the monthly chat quota;
// Mode/ActiveNoteId hold the note-taking sub-state.
type User struct {
	Id           uuid.UUID
	ExternalId   string
	BillingMonth string // YYYY-MM
	UsageCount   int
	Mode         string
	ActiveNoteId *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
