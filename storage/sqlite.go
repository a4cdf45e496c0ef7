package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maxBezel/formulabot/model"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNoSession = errors.New("no formula session")

type Storage struct {
	db *sql.DB
}

func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cant open database %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cant reach database %w", err)
	}

	// one writer: updates are handled from a single loop anyway
	db.SetMaxOpenConns(1)

	return &Storage{db: db}, nil
}

func (storage *Storage) Init(ctx context.Context) error {
	_, _ = storage.db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`)

	sessionsQ := `
	CREATE TABLE IF NOT EXISTS sessions (
		chat_id    INTEGER PRIMARY KEY,
		text       TEXT    NOT NULL,
		cursor     INTEGER NOT NULL DEFAULT 0,
		anchor_x   INTEGER NOT NULL DEFAULT 0,
		anchor_y   INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT    NOT NULL
	);`

	editsQ := `
	CREATE TABLE IF NOT EXISTS edits (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id    INTEGER NOT NULL
		REFERENCES sessions(chat_id) ON DELETE CASCADE,
		before_text TEXT   NOT NULL,
		after_text TEXT    NOT NULL,
		created_at TEXT    NOT NULL,
		created_by INTEGER
	);`

	if _, err := storage.db.ExecContext(ctx, sessionsQ); err != nil {
		return fmt.Errorf("failed to create sessions table %w", err)
	}

	if _, err := storage.db.ExecContext(ctx, editsQ); err != nil {
		return fmt.Errorf("failed to create edits table %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSession inserts the session or replaces the stored one for its chat.
func (s *Storage) SaveSession(ctx context.Context, sess *model.Session) error {
	if sess == nil {
		return fmt.Errorf("nil session")
	}
	sess.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions(chat_id, text, cursor, anchor_x, anchor_y, updated_at)
		 VALUES(?, ?, ?, ?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET
		   text = excluded.text,
		   cursor = excluded.cursor,
		   anchor_x = excluded.anchor_x,
		   anchor_y = excluded.anchor_y,
		   updated_at = excluded.updated_at`,
		sess.ChatId, sess.Text, sess.Cursor, sess.AnchorX, sess.AnchorY,
		sess.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, chatID int64) (*model.Session, error) {
	var (
		sess    model.Session
		updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT chat_id, text, cursor, anchor_x, anchor_y, updated_at
		 FROM sessions WHERE chat_id = ?`, chatID,
	).Scan(&sess.ChatId, &sess.Text, &sess.Cursor, &sess.AnchorX, &sess.AnchorY, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &sess, nil
}

// DeleteSession drops the chat's session together with its edit log.
func (s *Storage) DeleteSession(ctx context.Context, chatID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edits WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("delete edits: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoSession
	}

	return tx.Commit()
}

func (s *Storage) AddEdit(ctx context.Context, e *model.Edit) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("nil edit")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO edits(chat_id, before_text, after_text, created_at, created_by)
		 VALUES(?, ?, ?, ?, ?)`,
		e.ChatId, e.Before, e.After, e.CreatedAt.Format(time.RFC3339Nano), e.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert edit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	e.Id = int(id)
	return id, nil
}

// ListEdits returns up to limit edits of the chat, newest first.
func (s *Storage) ListEdits(ctx context.Context, chatID int64, limit int) ([]model.Edit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, before_text, after_text, created_at, created_by
		 FROM edits WHERE chat_id = ?
		 ORDER BY id DESC LIMIT ?`, chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}
	defer rows.Close()

	var out []model.Edit
	for rows.Next() {
		var (
			e       model.Edit
			created string
			by      sql.NullInt64
		)
		if err := rows.Scan(&e.Id, &e.ChatId, &e.Before, &e.After, &created, &by); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		e.CreatedBy = by.Int64
		out = append(out, e)
	}
	return out, rows.Err()
}
