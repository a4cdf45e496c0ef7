package commands

import (
	"context"
	"log/slog"
	"sort"

	api "github.com/OvyFlash/telegram-bot-api"
	msgs "github.com/maxBezel/formulabot/internal/messages"
	"github.com/maxBezel/formulabot/model"
	"github.com/maxBezel/formulabot/refcycle"
)

type Bot interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
}

type Storage interface {
	SaveSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, chatID int64) (*model.Session, error)
	DeleteSession(ctx context.Context, chatID int64) error
	AddEdit(ctx context.Context, e *model.Edit) (int64, error)
	ListEdits(ctx context.Context, chatID int64, limit int) ([]model.Edit, error)
}

type Deps struct {
	Bot     Bot
	Storage Storage
	// Anchor is used for buffers opened without explicit coordinates.
	Anchor refcycle.Anchor
}

type Handler func(ctx context.Context, d Deps, msg *api.Message) error

type Command struct {
	Name        string
	Description string
	Hidden      bool
	Handle      Handler
}

// fallback handles messages that do not name a registered command.
const fallback = "text"

type Registry struct {
	deps Deps
	m    map[string]Command
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, m: make(map[string]Command)}
}

// Default returns a registry with every command of the bot registered.
func Default(deps Deps) *Registry {
	r := NewRegistry(deps)
	for _, c := range []Command{Start(), New(), Text(), Cursor(), Anchor(), Cycle(), Get(), List(), Del()} {
		r.Register(c)
	}
	return r
}

func (r *Registry) Register(cmd Command) { r.m[cmd.Name] = cmd }

func (r *Registry) Handle(ctx context.Context, msg *api.Message) bool {
	if msg == nil {
		return false
	}

	c, ok := r.m[msg.Command()]
	if !ok {
		if c, ok = r.m[fallback]; !ok {
			return false
		}
	}

	if err := c.Handle(ctx, r.deps, msg); err != nil {
		slog.Error("command failed", "command", c.Name, "chat", msg.Chat.ID, "err", err)
		_, _ = r.deps.Bot.Send(api.NewMessage(msg.Chat.ID, msgs.T(msgs.UnsuccessfulOperation)))
	}
	return true
}

func (r *Registry) HandleCallback(ctx context.Context, cq *api.CallbackQuery) {
	if cq == nil {
		return
	}
	HandleCallback(ctx, r.deps, cq)
}

func (r *Registry) BotCommands() []api.BotCommand {
	out := make([]api.BotCommand, 0, len(r.m))
	for _, c := range r.m {
		if c.Hidden {
			continue
		}
		out = append(out, api.BotCommand{Command: c.Name, Description: c.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Command < out[j].Command })
	return out
}
