package model

import (
	"strings"
	"time"
)

// Session is the formula buffer a chat is editing. Cursor is a byte offset
// into Text; AnchorX and AnchorY address the cell the formula belongs to.
type Session struct {
	ChatId    int64
	Text      string
	Cursor    int
	AnchorX   int
	AnchorY   int
	UpdatedAt time.Time
}

func NewSession(chatID int64, text string, x, y int) *Session {
	text = strings.TrimSpace(text)
	return &Session{
		ChatId:    chatID,
		Text:      text,
		Cursor:    len(text),
		AnchorX:   x,
		AnchorY:   y,
		UpdatedAt: time.Now().UTC(),
	}
}

// SetText replaces the formula and moves the cursor to its end.
func (s *Session) SetText(text string) {
	s.Text = strings.TrimSpace(text)
	s.Cursor = len(s.Text)
}
