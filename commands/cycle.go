package commands

import (
	"context"
	"errors"
	"log/slog"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/model"
	"github.com/maxBezel/formulabot/refcycle"
	sqlite "github.com/maxBezel/formulabot/storage"
)

func Cycle() Command {
	return Command{
		Name:        "f4",
		Description: "Toggle the reference under the cursor between absolute and relative",
		Handle: func(ctx context.Context, d Deps, msg *api.Message) error {
			chatID := msg.Chat.ID
			sess, notice, err := step(ctx, d, chatID, userID(msg))
			if err != nil {
				return err
			}
			if notice != "" {
				_, _ = d.Bot.Send(api.NewMessage(chatID, notice))
				return nil
			}

			_, _ = d.Bot.Send(formulaMessage(chatID, renderSession(sess)))
			return nil
		},
	}
}

// step runs one toggle on the chat's buffer and stores the result. When
// nothing changes, notice says why.
func step(ctx context.Context, d Deps, chatID, by int64) (sess *model.Session, notice string, err error) {
	sess, err = d.Storage.GetSession(ctx, chatID)
	if errors.Is(err, sqlite.ErrNoSession) {
		return nil, msgs.T(msgs.NoSession), nil
	}
	if err != nil {
		return nil, "", err
	}

	res, err := refcycle.Cycle(sess.Text, sess.Cursor, anchorOf(sess))
	switch {
	case errors.Is(err, refcycle.ErrNoReference):
		return sess, msgs.T(msgs.NoReference), nil
	case errors.Is(err, refcycle.ErrNothingToToggle):
		return sess, msgs.T(msgs.NothingToToggle), nil
	case err != nil:
		return nil, "", err
	}

	before := sess.Text
	sess.Text, sess.Cursor = res.Text, res.Cursor
	if err := d.Storage.SaveSession(ctx, sess); err != nil {
		return nil, "", err
	}
	if _, err := d.Storage.AddEdit(ctx, model.NewEdit(chatID, before, res.Text, by)); err != nil {
		return nil, "", err
	}

	slog.Debug("reference toggled", "chat", chatID, "before", before, "after", res.Text)
	return sess, "", nil
}
