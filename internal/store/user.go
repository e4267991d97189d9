package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type userRepo struct {
	db *sql.DB
}

const userColumns = `id, username, level, score, total_problems, correct_answers, last_active, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	var lastActive, createdAt int64
	if err := row.Scan(&u.ID, &u.Username, &u.Level, &u.Score, &u.TotalProblems, &u.CorrectAnswers, &lastActive, &createdAt); err != nil {
		return nil, err
	}
	u.LastActive = time.UnixMilli(lastActive).UTC()
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

func (r *userRepo) GetOrCreate(ctx context.Context, username string) (*User, error) {
	now := time.Now().UnixMilli()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, last_active, created_at) VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET last_active = excluded.last_active`,
		username, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return r.GetByName(ctx, username)
}

func (r *userRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *userRepo) GetByName(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func (r *userRepo) Reset(ctx context.Context, username string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM problem_history WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET level = 1, score = 0, total_problems = 0, correct_answers = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("reset user: %w", err)
	}
	return tx.Commit()
}
