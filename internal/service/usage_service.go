package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/repository/contract"
	"ai-copychat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrStoreUnavailable marks persistence failures the dispatcher must turn
// into a user-facing store error reply instead of a generic one.
var ErrStoreUnavailable = errors.New("user store unavailable")

type IUsageService interface {
	// UpsertUser resolves the opaque external identity to a user row,
	// creating it on first contact and resetting the monthly counters when
	// the billing month has rolled over.
	UpsertUser(ctx context.Context, externalId string) (*entity.User, error)

	// QuotaExceeded reports whether the user has used up the monthly chat cap.
	QuotaExceeded(user *entity.User) bool

	// IncrementUsage bumps the monthly counter by one.
	IncrementUsage(ctx context.Context, user *entity.User) error

	// GetOrCreateActiveSession returns the user's single active session,
	// creating one if none exists. When duplicates have crept in, the most
	// recently created one wins and the rest are deactivated.
	GetOrCreateActiveSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)

	// StartNewSession deactivates every active session and opens a fresh one.
	StartNewSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)

	// SetUserState updates the note-taking sub-state (mode + active note).
	SetUserState(ctx context.Context, user *entity.User, mode string, activeNoteId *uuid.UUID) error
}

type usageService struct {
	userRepo    contract.UserRepository
	sessionRepo contract.ChatSessionRepository
	monthlyCap  int
}

func NewUsageService(
	userRepo contract.UserRepository,
	sessionRepo contract.ChatSessionRepository,
	monthlyCap int,
) IUsageService {
	return &usageService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		monthlyCap:  monthlyCap,
	}
}

func currentBillingMonth() string {
	return time.Now().Format("2006-01")
}

func (s *usageService) UpsertUser(ctx context.Context, externalId string) (*entity.User, error) {
	user, err := s.userRepo.FindOne(ctx, specification.ByExternalId{ExternalId: externalId})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	month := currentBillingMonth()

	if user == nil {
		user = &entity.User{
			Id:           uuid.New(),
			ExternalId:   externalId,
			BillingMonth: month,
			UsageCount:   0,
			Mode:         constant.UserModeNone,
			CreatedAt:    time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return user, nil
	}

	if user.BillingMonth != month {
		// Month rollover resets the counter and clears any note sub-state.
		user.BillingMonth = month
		user.UsageCount = 0
		user.Mode = constant.UserModeNone
		user.ActiveNoteId = nil
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return user, nil
}

func (s *usageService) QuotaExceeded(user *entity.User) bool {
	return user.UsageCount >= s.monthlyCap
}

func (s *usageService) IncrementUsage(ctx context.Context, user *entity.User) error {
	user.UsageCount++
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

func (s *usageService) GetOrCreateActiveSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	active, err := s.sessionRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load active sessions: %w", err)
	}

	if len(active) == 0 {
		return s.createSession(ctx, userId)
	}

	// Most recent wins; stale duplicates are retired on the spot.
	winner := active[0]
	for _, stale := range active[1:] {
		stale.Active = false
		if err := s.sessionRepo.Update(ctx, stale); err != nil {
			return nil, fmt.Errorf("failed to retire duplicate session: %w", err)
		}
	}

	return winner, nil
}

func (s *usageService) StartNewSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	active, err := s.sessionRepo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load active sessions: %w", err)
	}
	for _, session := range active {
		session.Active = false
		if err := s.sessionRepo.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to deactivate session: %w", err)
		}
	}

	return s.createSession(ctx, userId)
}

func (s *usageService) createSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *usageService) SetUserState(ctx context.Context, user *entity.User, mode string, activeNoteId *uuid.UUID) error {
	user.Mode = mode
	user.ActiveNoteId = activeNoteId
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user state: %w", err)
	}
	return nil
}
