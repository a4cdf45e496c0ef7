package commands

import (
	"context"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/model"
)

func New() Command {
	return Command{
		Name:        "new",
		Description: "Start editing a formula: /new [x y] <formula>",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			args := strings.TrimSpace(msg.CommandArguments())
			if args == "" {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.NoFormula)))
				return nil
			}

			anchor, formula := parseAnchorPrefix(args, d.Anchor)
			sess := model.NewSession(chatID, formula, anchor.X, anchor.Y)
			if err := d.Storage.SaveSession(ctx, sess); err != nil {
				return err
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, renderSession(sess)))
			return nil
		},
	}
}
