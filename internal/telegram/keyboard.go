package telegram

import (
	"ai-copychat-be/internal/dto"

	tele "gopkg.in/telebot.v4"
)

// replyKeyboard turns dispatcher menu rows into a Telegram reply keyboard.
// Buttons send their label text back; the dispatcher maps labels to actions.
func replyKeyboard(rows [][]dto.MenuOption) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}

	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, option := range row {
			buttons = append(buttons, markup.Text(option.Label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}
