package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AngreeCloud/SurveyApp/internal/domain"
)

// feedbackColumns must match the Scan order in scanFeedback.
const feedbackColumns = `id, satisfaction_level, sequence_number, created_at`

// FeedbackRepo implements domain.FeedbackRepository backed by PostgreSQL.
type FeedbackRepo struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepo creates a FeedbackRepo from the shared connection pool.
func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

// Append inserts one feedback row. The per-level daily sequence number is
// allocated from the feedback_sequences counter row inside the same
// transaction as the insert: the ON CONFLICT update takes a row lock, so
// racing appends for the same (level, day) serialize on the counter and each
// sees a distinct value. The day boundary is the database server's
// CURRENT_DATE, the same expression List and CountsByLevel filter on.
func (r *FeedbackRepo) Append(ctx context.Context, level string) (*domain.Feedback, error) {
	if !domain.ValidLevel(level) {
		return nil, domain.ErrInvalidLevel
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var seq int
	err = tx.QueryRow(ctx, `
		INSERT INTO feedback_sequences (satisfaction_level, seq_date, last_value)
		VALUES ($1, CURRENT_DATE, 1)
		ON CONFLICT (satisfaction_level, seq_date)
		DO UPDATE SET last_value = feedback_sequences.last_value + 1
		RETURNING last_value
	`, level).Scan(&seq)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate sequence number: %w", err)
	}

	var fb domain.Feedback
	err = tx.QueryRow(ctx, `
		INSERT INTO satisfaction_feedback (satisfaction_level, sequence_number)
		VALUES ($1, $2)
		RETURNING `+feedbackColumns+`
	`, level, seq).Scan(&fb.ID, &fb.Level, &fb.Sequence, &fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &fb, nil
}

// List returns feedback newest-first. date restricts to one calendar day when
// non-nil; limit <= 0 means unlimited.
func (r *FeedbackRepo) List(ctx context.Context, date *time.Time, limit int) ([]domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM satisfaction_feedback`
	args := []any{}

	if date != nil {
		query += ` WHERE DATE(created_at) = $1::date`
		args = append(args, date.Format(time.DateOnly))
	}

	query += ` ORDER BY created_at DESC`

	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	feedbacks := []domain.Feedback{}
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.Level, &fb.Sequence, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}

	return feedbacks, nil
}

// CountsByLevel returns aggregate counts per level, in grouping order.
func (r *FeedbackRepo) CountsByLevel(ctx context.Context, date *time.Time) ([]domain.LevelCount, error) {
	query := `SELECT satisfaction_level, COUNT(*) FROM satisfaction_feedback`
	args := []any{}

	if date != nil {
		query += ` WHERE DATE(created_at) = $1::date`
		args = append(args, date.Format(time.DateOnly))
	}

	query += ` GROUP BY satisfaction_level`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	defer rows.Close()

	counts := []domain.LevelCount{}
	for rows.Next() {
		var lc domain.LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read count rows: %w", err)
	}

	return counts, nil
}
