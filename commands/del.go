package commands

import (
	"context"
	"errors"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	sqlite "github.com/maxBezel/formulabot/storage"
)

func Del() Command {
	return Command{
		Name:        "del",
		Description: "Drop the formula and its history",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			err := d.Storage.DeleteSession(ctx, chatID)
			if errors.Is(err, sqlite.ErrNoSession) {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.NoSession)))
				return nil
			}
			if err != nil {
				return err
			}

			_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.SessionRemoved)))
			return nil
		},
	}
}
