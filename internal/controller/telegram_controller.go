// FILE: internal/controller/telegram_controller.go
package controller

import (
	"encoding/json"
	"strconv"
	"time"

	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/internal/telegram"
	"ai-copychat-be/pkg/idempotency"

	"github.com/gofiber/fiber/v2"
	tele "gopkg.in/telebot.v4"
)

// dedupTTL bounds how long an update id is remembered. Telegram retries
// failed deliveries for well under a day.
const dedupTTL = 24 * time.Hour

type ITelegramController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
}

type telegramController struct {
	bot   *telegram.Bot
	dedup idempotency.Store
	log   logger.ILogger
}

func NewTelegramController(bot *telegram.Bot, dedup idempotency.Store, log logger.ILogger) ITelegramController {
	return &telegramController{
		bot:   bot,
		dedup: dedup,
		log:   log,
	}
}

func (c *telegramController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/telegram")
	h.Post("/webhook", c.Webhook)
}

// Webhook always answers 200. A non-2xx response makes Telegram retry the
// same update, so malformed or duplicate deliveries are acknowledged and
// dropped instead of erroring.
func (c *telegramController) Webhook(ctx *fiber.Ctx) error {
	var update tele.Update
	if err := json.Unmarshal(ctx.Body(), &update); err != nil {
		c.log.Warn("telegram", "malformed webhook payload", map[string]interface{}{"error": err.Error()})
		return ctx.SendStatus(fiber.StatusOK)
	}

	key := strconv.Itoa(update.ID)
	first, err := c.dedup.FirstSeen(ctx.Context(), key, dedupTTL)
	if err != nil {
		// Dedup store trouble must not drop the update.
		c.log.Warn("telegram", "dedup store unavailable, processing anyway", map[string]interface{}{"error": err.Error()})
		first = true
	}
	if !first {
		c.log.Info("telegram", "duplicate update dropped", map[string]interface{}{"update_id": update.ID})
		return ctx.SendStatus(fiber.StatusOK)
	}

	c.bot.ProcessUpdate(update)
	return ctx.SendStatus(fiber.StatusOK)
}
