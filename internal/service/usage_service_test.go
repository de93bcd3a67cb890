package service

import (
	"context"
	"testing"
	"time"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsageFixture(cap int) (IUsageService, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := &fakeUserRepo{}
	sessionRepo := &fakeSessionRepo{}
	return NewUsageService(userRepo, sessionRepo, cap), userRepo, sessionRepo
}

func TestUpsertUserCreatesOnFirstContact(t *testing.T) {
	svc, _, _ := newUsageFixture(400)

	user, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "tg-100", user.ExternalId)
	assert.Equal(t, time.Now().Format("2006-01"), user.BillingMonth)
	assert.Equal(t, 0, user.UsageCount)
	assert.Equal(t, constant.UserModeNone, user.Mode)
}

func TestUpsertUserIsIdempotentWithinMonth(t *testing.T) {
	svc, userRepo, _ := newUsageFixture(400)

	first, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)
	first.UsageCount = 7

	second, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 7, second.UsageCount)
	assert.Len(t, userRepo.users, 1)
}

func TestUpsertUserResetsOnMonthRollover(t *testing.T) {
	svc, _, _ := newUsageFixture(400)

	user, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)

	noteId := uuid.New()
	user.BillingMonth = "2020-01"
	user.UsageCount = 399
	user.Mode = constant.UserModeNoteMaking
	user.ActiveNoteId = &noteId

	rolled, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format("2006-01"), rolled.BillingMonth)
	assert.Equal(t, 0, rolled.UsageCount)
	assert.Equal(t, constant.UserModeNone, rolled.Mode)
	assert.Nil(t, rolled.ActiveNoteId)
}

func TestUpsertUserWrapsStoreFailures(t *testing.T) {
	userRepo := &fakeUserRepo{fail: true}
	svc := NewUsageService(userRepo, &fakeSessionRepo{}, 400)

	_, err := svc.UpsertUser(context.Background(), "tg-100")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestQuotaExceededBoundary(t *testing.T) {
	svc, _, _ := newUsageFixture(400)

	user := &entity.User{UsageCount: 399}
	assert.False(t, svc.QuotaExceeded(user))

	user.UsageCount = 400
	assert.True(t, svc.QuotaExceeded(user))
}

func TestGetOrCreateActiveSessionCreatesWhenNoneActive(t *testing.T) {
	svc, _, sessionRepo := newUsageFixture(400)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.True(t, session.Active)
	assert.Equal(t, userId, session.UserId)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestGetOrCreateActiveSessionMostRecentWins(t *testing.T) {
	svc, _, sessionRepo := newUsageFixture(400)
	userId := uuid.New()

	older := &entity.ChatSession{Id: uuid.New(), UserId: userId, Active: true, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &entity.ChatSession{Id: uuid.New(), UserId: userId, Active: true, CreatedAt: time.Now()}
	sessionRepo.sessions = append(sessionRepo.sessions, older, newer)

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, newer.Id, session.Id)
	assert.False(t, older.Active, "older duplicate should be retired")
	assert.True(t, newer.Active)
}

func TestStartNewSessionDeactivatesPrevious(t *testing.T) {
	svc, _, sessionRepo := newUsageFixture(400)
	userId := uuid.New()

	existing, err := svc.GetOrCreateActiveSession(context.Background(), userId)
	require.NoError(t, err)

	fresh, err := svc.StartNewSession(context.Background(), userId)
	require.NoError(t, err)

	assert.NotEqual(t, existing.Id, fresh.Id)
	assert.False(t, existing.Active)
	assert.True(t, fresh.Active)

	var active int
	for _, s := range sessionRepo.sessions {
		if s.Active {
			active++
		}
	}
	assert.Equal(t, 1, active, "exactly one session may stay active")
}

func TestSetUserState(t *testing.T) {
	svc, _, _ := newUsageFixture(400)

	user, err := svc.UpsertUser(context.Background(), "tg-100")
	require.NoError(t, err)

	noteId := uuid.New()
	require.NoError(t, svc.SetUserState(context.Background(), user, constant.UserModeNoteMaking, &noteId))

	assert.Equal(t, constant.UserModeNoteMaking, user.Mode)
	assert.Equal(t, &noteId, user.ActiveNoteId)
}
