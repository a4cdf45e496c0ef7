package commands

import (
	"context"
	"fmt"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
)

const editsShown = 10

func List() Command {
	return Command{
		Name:        "list",
		Description: "Show the recent toggles",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			edits, err := d.Storage.ListEdits(ctx, chatID, editsShown)
			if err != nil {
				return err
			}

			if len(edits) == 0 {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.NoEditsYet)))
				return nil
			}

			var b strings.Builder
			b.WriteString(msgs.T(msgs.EditsHeader))
			b.WriteByte('\n')
			for i, e := range edits {
				fmt.Fprintf(&b, "%d) %s → %s\n", i+1, e.Before, e.After)
			}

			_, err = d.Bot.Send(api.NewMessage(chatID, b.String()))
			return err
		},
	}
}
