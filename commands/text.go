package commands

import (
	"context"
	"errors"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/model"
	sqlite "github.com/maxBezel/formulabot/storage"
)

// Text replaces the buffer with the text of a plain message. It is the
// registry fallback, so unknown commands end up here too.
func Text() Command {
	return Command{
		Name:        fallback,
		Description: "Replace the formula with the message text",
		Hidden:      true,
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			if msg.IsCommand() {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.UnknownCommand, msg.Command())))
				return nil
			}
			if msg.Text == "" {
				return nil
			}

			sess, err := d.Storage.GetSession(ctx, chatID)
			switch {
			case errors.Is(err, sqlite.ErrNoSession):
				sess = model.NewSession(chatID, msg.Text, d.Anchor.X, d.Anchor.Y)
			case err != nil:
				return err
			default:
				sess.SetText(msg.Text)
			}

			if err := d.Storage.SaveSession(ctx, sess); err != nil {
				return err
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, renderSession(sess)))
			return nil
		},
	}
}
