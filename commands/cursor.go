package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	sqlite "github.com/maxBezel/formulabot/storage"
)

func Cursor() Command {
	return Command{
		Name:        "cursor",
		Description: "Move the cursor: /cursor <position>",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			pos, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
			if err != nil {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.BadCursor)))
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

			// users count characters, the buffer keeps byte offsets
			sess.Cursor = runeToByte(sess.Text, pos)
			if err := d.Storage.SaveSession(ctx, sess); err != nil {
				return err
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, renderSession(sess)))
			return nil
		},
	}
}
