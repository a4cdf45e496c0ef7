package commands

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/refcycle"
	sqlite "github.com/maxBezel/formulabot/storage"
)

func Get() Command {
	return Command{
		Name:        "get",
		Description: "Show the formula and the reference F4 would toggle",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			sess, err := d.Storage.GetSession(ctx, chatID)
			if errors.Is(err, sqlite.ErrNoSession) {
				_, _ = d.Bot.Send(api.NewMessage(chatID, msgs.T(msgs.NoSession)))
				return nil
			}
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(renderSession(sess))
			b.WriteByte('\n')

			rep, err := refcycle.Inspect(sess.Text, sess.Cursor)
			if err != nil {
				b.WriteString(msgs.T(msgs.NoReferenceLine))
			} else {
				at := byteToRune(sess.Text, rep.Reference.Start)
				b.WriteString(msgs.T(msgs.ReferenceLine, at, describeReference(rep)))
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, b.String()))
			return nil
		},
	}
}

// describeReference lists each component with its classification, e.g.
// "X <code>3</code>: absolute, Y <code>Y + 1</code>: relative".
func describeReference(rep refcycle.Report) string {
	parts := make([]string, 0, 2)
	for _, c := range []struct {
		comp  *refcycle.Component
		class refcycle.Classification
	}{
		{rep.Reference.First, rep.First},
		{rep.Reference.Second, rep.Second},
	} {
		if c.comp == nil {
			parts = append(parts, "unresolved")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s <code>%s</code>: %s",
			c.comp.Axis, html.EscapeString(c.comp.Text), c.class))
	}
	return strings.Join(parts, ", ")
}
