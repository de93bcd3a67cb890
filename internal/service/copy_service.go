package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/internal/repository/contract"
	"ai-copychat-be/internal/repository/specification"
	"ai-copychat-be/pkg/llm"

	"github.com/google/uuid"
)

// ErrCopyDailyCapReached is returned when the user has exhausted the
// per-day generation allowance.
var ErrCopyDailyCapReached = errors.New("daily copy generation cap reached")

type ICopyService interface {
	// GenerateCopy builds a marketing-copy prompt from the campaign form,
	// asks the model, and records the request against the daily cap.
	GenerateCopy(ctx context.Context, externalId string, form *dto.CopyForm) (*dto.GenerateCopyResponse, error)

	// GenerateMainIdea suggests a campaign main idea from a partial form.
	// It does not count against the daily cap.
	GenerateMainIdea(ctx context.Context, externalId string, form *dto.CopyForm) (*dto.GenerateMainIdeaResponse, error)
}

type copyService struct {
	usageService IUsageService
	requestRepo  contract.CopyRequestRepository
	llmProvider  llm.LLMProvider
	dailyCap     int
	log          logger.ILogger
}

func NewCopyService(
	usageService IUsageService,
	requestRepo contract.CopyRequestRepository,
	llmProvider llm.LLMProvider,
	dailyCap int,
	log logger.ILogger,
) ICopyService {
	return &copyService{
		usageService: usageService,
		requestRepo:  requestRepo,
		llmProvider:  llmProvider,
		dailyCap:     dailyCap,
		log:          log,
	}
}

func (s *copyService) GenerateCopy(ctx context.Context, externalId string, form *dto.CopyForm) (*dto.GenerateCopyResponse, error) {
	user, err := s.usageService.UpsertUser(ctx, externalId)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	count, err := s.requestRepo.Count(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.ByDate{Date: today},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count copy requests: %w", err)
	}
	if count >= int64(s.dailyCap) {
		return nil, ErrCopyDailyCapReached
	}

	prompt := buildCopyPrompt(form)
	copyText, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.8))
	if err != nil {
		return nil, fmt.Errorf("failed to generate copy: %w", err)
	}

	formJson, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize form: %w", err)
	}
	request := &entity.CopyRequest{
		Id:        uuid.New(),
		UserId:    user.Id,
		Date:      today,
		Form:      formJson,
		CreatedAt: time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to record copy request: %w", err)
	}

	return &dto.GenerateCopyResponse{
		Prompt: prompt,
		Copy:   copyText,
	}, nil
}

func (s *copyService) GenerateMainIdea(ctx context.Context, externalId string, form *dto.CopyForm) (*dto.GenerateMainIdeaResponse, error) {
	if _, err := s.usageService.UpsertUser(ctx, externalId); err != nil {
		return nil, err
	}

	prompt := buildMainIdeaPrompt(form)
	idea, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.9))
	if err != nil {
		return nil, fmt.Errorf("failed to generate main idea: %w", err)
	}

	return &dto.GenerateMainIdeaResponse{MainIdea: strings.TrimSpace(idea)}, nil
}

func buildCopyPrompt(form *dto.CopyForm) string {
	var b strings.Builder
	b.WriteString("یک متن تبلیغاتی به زبان فارسی بنویس با مشخصات زیر:\n")
	writeField(&b, "کانال بازاریابی", form.MarketingChannel)
	writeField(&b, "لحن برند", form.BrandVoice)
	writeField(&b, "احساس", form.Emotion)
	writeField(&b, "هدف کمپین", form.CampaignGoal)
	writeField(&b, "نام محصول", form.ProductName)
	writeList(&b, "ویژگی‌های محصول", form.ProductFeatures)
	writeList(&b, "دغدغه‌های مشتری", form.CustomerPains)
	writeList(&b, "خواسته‌های مشتری", form.CustomerDesires)
	writeList(&b, "کلمات کلیدی", form.Keywords)
	writeField(&b, "ایده اصلی", form.MainIdea)
	b.WriteString("خروجی فقط متن تبلیغاتی نهایی باشد، حداکثر ۱۵۰۰ کاراکتر.")
	return b.String()
}

func buildMainIdeaPrompt(form *dto.CopyForm) string {
	var b strings.Builder
	b.WriteString("بر اساس اطلاعات زیر، یک ایده اصلی کوتاه برای کمپین تبلیغاتی به فارسی پیشنهاد بده:\n")
	writeField(&b, "کانال بازاریابی", form.MarketingChannel)
	writeField(&b, "نام محصول", form.ProductName)
	writeList(&b, "ویژگی‌های محصول", form.ProductFeatures)
	writeList(&b, "دغدغه‌های مشتری", form.CustomerPains)
	writeList(&b, "خواسته‌های مشتری", form.CustomerDesires)
	b.WriteString("خروجی فقط یک جمله باشد.")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	writeField(b, label, strings.Join(values, "، "))
}
