// Package telegram adapts the dispatcher to a webhook-fed Telegram bot.
package telegram

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/pkg/logger"
	"ai-copychat-be/internal/service"
	"ai-copychat-be/pkg/transcribe"

	tele "gopkg.in/telebot.v4"
)

type Bot struct {
	bot          *tele.Bot
	dispatcher   service.IDispatcherService
	voiceService service.IVoiceService
	log          logger.ILogger
}

// NewBot wires the handlers onto a bot that receives its updates from the
// webhook controller, not a poller. Call ProcessUpdate for each delivery.
func NewBot(
	token string,
	dispatcher service.IDispatcherService,
	voiceService service.IVoiceService,
	log logger.ILogger,
) (*Bot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token: token,
		// Updates arrive through the webhook endpoint; telebot only sends.
		Synchronous: true,
		Offline:     token == "",
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		bot:          bot,
		dispatcher:   dispatcher,
		voiceService: voiceService,
		log:          log,
	}
	bot.Handle(tele.OnText, b.onText)
	bot.Handle(tele.OnVoice, b.onVoice)

	return b, nil
}

// ProcessUpdate feeds one webhook delivery through the registered handlers.
func (b *Bot) ProcessUpdate(update tele.Update) {
	b.bot.ProcessUpdate(update)
}

func (b *Bot) onText(c tele.Context) error {
	inbound := dto.InboundMessage{
		ExternalId: strconv.FormatInt(c.Chat().ID, 10),
		Text:       c.Text(),
	}
	reply := b.dispatcher.HandleMessage(context.Background(), inbound)
	return b.send(c, reply)
}

func (b *Bot) onVoice(c tele.Context) error {
	voice := c.Message().Voice
	if voice == nil {
		return nil
	}

	reader, err := b.bot.File(&voice.File)
	if err != nil {
		b.log.Error("telegram", "failed to download voice file", map[string]interface{}{
			"chat_id": c.Chat().ID,
			"error":   err.Error(),
		})
		return b.send(c, service.FallbackReply())
	}
	defer reader.Close()

	audio, err := io.ReadAll(reader)
	if err != nil {
		b.log.Error("telegram", "failed to read voice file", map[string]interface{}{
			"chat_id": c.Chat().ID,
			"error":   err.Error(),
		})
		return b.send(c, service.FallbackReply())
	}

	externalId := strconv.FormatInt(c.Chat().ID, 10)
	chunks := []transcribe.Chunk{{
		Name:        voice.FileID + ".ogg",
		ContentType: "audio/ogg",
		Audio:       audio,
	}}

	reply, err := b.voiceService.HandleVoice(context.Background(), externalId, chunks)
	if err != nil {
		b.log.Warn("telegram", "voice rejected", map[string]interface{}{
			"chat_id": c.Chat().ID,
			"error":   err.Error(),
		})
		return b.send(c, service.FallbackReply())
	}
	return b.send(c, reply)
}

func (b *Bot) send(c tele.Context, reply *dto.Reply) error {
	if reply == nil {
		return nil
	}
	markup := replyKeyboard(reply.Buttons)

	if len(reply.Document) > 0 {
		document := &tele.Document{
			File:     tele.FromReader(bytes.NewReader(reply.Document)),
			FileName: reply.FileName,
			Caption:  reply.Message,
		}
		return c.Send(document, markup)
	}
	return c.Send(reply.Message, markup)
}
