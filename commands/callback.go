package commands

import (
	"context"
	"log/slog"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
)

func HandleCallback(ctx context.Context, d Deps, cq *api.CallbackQuery) {
	switch cq.Data {
	case cycleCallback:
		handleCycle(ctx, d, cq)
	default:
		_ = answerCB(d.Bot, cq, msgs.T(msgs.UnknownAction), true)
	}
}

// handleCycle toggles the reference and edits the message with the button
// in place, so pressing F4 repeatedly walks the cycle.
func handleCycle(ctx context.Context, d Deps, cq *api.CallbackQuery) {
	if cq.Message == nil {
		_ = answerCB(d.Bot, cq, msgs.T(msgs.UnsuccessfulOperation), true)
		return
	}
	chatID := cq.Message.Chat.ID

	var by int64
	if cq.From != nil {
		by = cq.From.ID
	}

	sess, notice, err := step(ctx, d, chatID, by)
	if err != nil {
		slog.Error("toggle failed", "chat", chatID, "err", err)
		_ = answerCB(d.Bot, cq, msgs.T(msgs.UnsuccessfulOperation), true)
		return
	}
	if notice != "" {
		_ = answerCB(d.Bot, cq, notice, true)
		return
	}

	_ = answerCB(d.Bot, cq, msgs.T(msgs.Toggled), false)

	edit := api.NewEditMessageText(chatID, cq.Message.MessageID, renderSession(sess))
	edit.ParseMode = "HTML"
	kb := cycleKeyboard()
	edit.ReplyMarkup = &kb
	_, _ = d.Bot.Send(edit)
}

func answerCB(bot Bot, cq *api.CallbackQuery, text string, alert bool) error {
	cb := api.NewCallback(cq.ID, text)
	if alert {
		cb.ShowAlert = true
	}

	_, err := bot.Request(cb)
	return err
}
