package commands

import (
	"context"
	"errors"
	"strconv"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	sqlite "github.com/maxBezel/formulabot/storage"
)

func Anchor() Command {
	return Command{
		Name:        "anchor",
		Description: "Set the cell of the formula: /anchor <x> <y>",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			xs, rest := cutField(msg.CommandArguments())
			ys, extra := cutField(rest)
			x, errX := strconv.Atoi(xs)
			y, errY := strconv.Atoi(ys)
			if errX != nil || errY != nil || extra != "" {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.BadAnchor)))
				return nil
			}

			sess, err := d.Storage.GetSession(ctx, chatID)
			if errors.Is(err, sqlite.ErrNoSession) {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.NoSession)))
				return nil
			}
			if err != nil {
				return err
			}

			sess.AnchorX, sess.AnchorY = x, y
			if err := d.Storage.SaveSession(ctx, sess); err != nil {
				return err
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, renderSession(sess)))
			return nil
		},
	}
}
