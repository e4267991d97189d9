package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Record(ctx context.Context, rec AnswerRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO problem_history (user_id, problem, answer, student_answer, is_correct, time_taken, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Problem, rec.Answer, rec.StudentAnswer, boolToInt(rec.IsCorrect), rec.TimeTaken, now)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET
			total_problems = total_problems + 1,
			correct_answers = correct_answers + ?,
			level = ?,
			score = ?,
			last_active = ?
		WHERE id = ?`,
		boolToInt(rec.IsCorrect), rec.Level, rec.Score, now, rec.UserID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *historyRepo) Recent(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error) {
	q := `SELECT id, user_id, problem, answer, student_answer, is_correct, time_taken, created_at
		FROM problem_history WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var correct int
		var created int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Problem, &e.Answer, &e.StudentAnswer, &correct, &e.TimeTaken, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.IsCorrect = correct != 0
		e.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
