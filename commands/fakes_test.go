package commands

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/maxBezel/formulabot/model"
	sqlite "github.com/maxBezel/formulabot/storage"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent     []api.Chattable
	requests []api.Chattable
}

func (b *fakeBot) Send(c api.Chattable) (api.Message, error) {
	b.sent = append(b.sent, c)
	return api.Message{}, nil
}

func (b *fakeBot) Request(c api.Chattable) (*api.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &api.APIResponse{Ok: true}, nil
}

func (b *fakeBot) lastMessage(t *testing.T) api.MessageConfig {
	t.Helper()
	require.NotEmpty(t, b.sent)
	m, ok := b.sent[len(b.sent)-1].(api.MessageConfig)
	require.True(t, ok, "last sent is %T", b.sent[len(b.sent)-1])
	return m
}

func (b *fakeBot) lastCallback(t *testing.T) api.CallbackConfig {
	t.Helper()
	require.NotEmpty(t, b.requests)
	cb, ok := b.requests[len(b.requests)-1].(api.CallbackConfig)
	require.True(t, ok, "last request is %T", b.requests[len(b.requests)-1])
	return cb
}

type fakeStorage struct {
	sessions map[int64]model.Session
	edits    []model.Edit
	err      error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{sessions: make(map[int64]model.Session)}
}

func (s *fakeStorage) SaveSession(ctx context.Context, sess *model.Session) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[sess.ChatId] = *sess
	return nil
}

func (s *fakeStorage) GetSession(ctx context.Context, chatID int64) (*model.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, sqlite.ErrNoSession
	}
	return &sess, nil
}

func (s *fakeStorage) DeleteSession(ctx context.Context, chatID int64) error {
	if _, ok := s.sessions[chatID]; !ok {
		return sqlite.ErrNoSession
	}
	delete(s.sessions, chatID)

	kept := s.edits[:0]
	for _, e := range s.edits {
		if e.ChatId != chatID {
			kept = append(kept, e)
		}
	}
	s.edits = kept
	return nil
}

func (s *fakeStorage) AddEdit(ctx context.Context, e *model.Edit) (int64, error) {
	e.Id = len(s.edits) + 1
	s.edits = append(s.edits, *e)
	return int64(e.Id), nil
}

func (s *fakeStorage) ListEdits(ctx context.Context, chatID int64, limit int) ([]model.Edit, error) {
	var out []model.Edit
	for i := len(s.edits) - 1; i >= 0 && len(out) < limit; i-- {
		if s.edits[i].ChatId == chatID {
			out = append(out, s.edits[i])
		}
	}
	return out, nil
}

const (
	testChat = int64(10)
	testUser = int64(99)
)

func rawMessage(chatID int64, text string) map[string]any {
	raw := map[string]any{
		"message_id": 1,
		"date":       0,
		"chat":       map[string]any{"id": chatID, "type": "private"},
		"from":       map[string]any{"id": testUser, "is_bot": false, "first_name": "Test"},
		"text":       text,
	}
	if strings.HasPrefix(text, "/") {
		n := strings.IndexAny(text, " \n")
		if n < 0 {
			n = len(text)
		}
		raw["entities"] = []map[string]any{{"type": "bot_command", "offset": 0, "length": n}}
	}
	return raw
}

func newMessage(t *testing.T, text string) *api.Message {
	t.Helper()
	b, err := json.Marshal(rawMessage(testChat, text))
	require.NoError(t, err)

	var msg api.Message
	require.NoError(t, json.Unmarshal(b, &msg))
	return &msg
}

func newCallback(t *testing.T, data string) *api.CallbackQuery {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":      "q1",
		"from":    map[string]any{"id": testUser, "is_bot": false, "first_name": "Test"},
		"message": rawMessage(testChat, "formula"),
		"data":    data,
	})
	require.NoError(t, err)

	var cq api.CallbackQuery
	require.NoError(t, json.Unmarshal(b, &cq))
	return &cq
}
