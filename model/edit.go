package model

import "time"

// Edit records one reference toggle applied to a chat's formula.
type Edit struct {
	Id        int
	ChatId    int64
	Before    string
	After     string
	CreatedAt time.Time
	CreatedBy int64
}

func NewEdit(chatID int64, before, after string, by int64) *Edit {
	return &Edit{
		ChatId:    chatID,
		Before:    before,
		After:     after,
		CreatedAt: time.Now().UTC(),
		CreatedBy: by,
	}
}
