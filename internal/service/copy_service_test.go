package service

import (
	"context"
	"testing"

	"ai-copychat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCopyFixture(dailyCap int) (ICopyService, *fakeCopyRequestRepo, *fakeLLM) {
	userRepo := &fakeUserRepo{}
	requestRepo := &fakeCopyRequestRepo{}
	model := &fakeLLM{response: "متن تبلیغاتی"}
	usage := NewUsageService(userRepo, &fakeSessionRepo{}, 400)
	return NewCopyService(usage, requestRepo, model, dailyCap, nopLogger{}), requestRepo, model
}

func sampleForm() *dto.CopyForm {
	return &dto.CopyForm{
		MarketingChannel: "اینستاگرام",
		ProductName:      "کفش ورزشی",
		ProductFeatures:  []string{"سبک", "بادوام"},
		Keywords:         []string{"تخفیف"},
	}
}

func TestGenerateCopyRecordsRequest(t *testing.T) {
	svc, requestRepo, model := newCopyFixture(4)

	res, err := svc.GenerateCopy(context.Background(), "web-1", sampleForm())
	require.NoError(t, err)

	assert.Equal(t, "متن تبلیغاتی", res.Copy)
	assert.Contains(t, res.Prompt, "اینستاگرام")
	assert.Contains(t, res.Prompt, "کفش ورزشی")
	assert.Len(t, requestRepo.requests, 1)
	assert.Equal(t, 1, model.calls())
}

func TestGenerateCopyDailyCap(t *testing.T) {
	svc, requestRepo, model := newCopyFixture(2)

	for i := 0; i < 2; i++ {
		_, err := svc.GenerateCopy(context.Background(), "web-1", sampleForm())
		require.NoError(t, err)
	}

	_, err := svc.GenerateCopy(context.Background(), "web-1", sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyDailyCapReached)
	assert.Len(t, requestRepo.requests, 2, "capped requests are not recorded")
	assert.Equal(t, 2, model.calls(), "capped requests never reach the model")
}

func TestGenerateCopyCapIsPerUser(t *testing.T) {
	svc, _, _ := newCopyFixture(1)

	_, err := svc.GenerateCopy(context.Background(), "web-1", sampleForm())
	require.NoError(t, err)

	_, err = svc.GenerateCopy(context.Background(), "web-2", sampleForm())
	require.NoError(t, err, "the cap is keyed per user")
}

func TestGenerateMainIdeaSkipsCap(t *testing.T) {
	svc, requestRepo, _ := newCopyFixture(0)

	res, err := svc.GenerateMainIdea(context.Background(), "web-1", sampleForm())
	require.NoError(t, err)

	assert.NotEmpty(t, res.MainIdea)
	assert.Empty(t, requestRepo.requests, "idea generation is not recorded against the cap")
}
