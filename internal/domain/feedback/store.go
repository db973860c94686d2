package feedback

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse/internal/platform/db"
)

type Store struct {
	DB         *pgxpool.Pool
	RetryLimit time.Duration
}

func NewStore(pool *pgxpool.Pool, retryLimit time.Duration) *Store {
	return &Store{DB: pool, RetryLimit: retryLimit}
}

const recordColumns = `f.id, f.user_id, f.feedback_date, f.motivation, f.wellbeing, f.workload, f.performance,
    f.productivity, COALESCE(f.support, ''), COALESCE(f.positive_event, ''), COALESCE(f.improvement_suggestion, ''), f.created_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Motivation, &rec.Wellbeing, &rec.Workload, &rec.Performance,
		&rec.Productivity, &rec.Support, &rec.PositiveEvent, &rec.ImprovementSuggestion, &rec.CreatedAt)
	return rec, err
}

func (s *Store) FeedbackSince(ctx context.Context, cutoff *time.Time) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM feedback f`
	args := []any{}
	if cutoff != nil {
		query += " WHERE f.feedback_date >= $1"
		args = append(args, *cutoff)
	}
	query += " ORDER BY f.feedback_date DESC, f.created_at DESC"

	var records []Record
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		records = records[:0]
		rows, err := s.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	return records, err
}

func (s *Store) CreateFeedback(ctx context.Context, rec Record) (Record, error) {
	created, err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO feedback AS f (user_id, feedback_date, motivation, wellbeing, workload, performance, productivity,
      support, positive_event, improvement_suggestion)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING `+recordColumns,
		rec.UserID, rec.Date, rec.Motivation, rec.Wellbeing, rec.Workload, rec.Performance, rec.Productivity,
		nullIfEmpty(rec.Support), nullIfEmpty(rec.PositiveEvent), nullIfEmpty(rec.ImprovementSuggestion)))
	if db.IsUniqueViolation(err) {
		return Record{}, ErrDuplicateSubmission
	}
	return created, err
}

func (s *Store) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	var records []Record
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		records = records[:0]
		rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM feedback f
    WHERE f.user_id = $1
    ORDER BY f.feedback_date DESC
    LIMIT $2 OFFSET $3
  `, userID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	return records, err
}

func (s *Store) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		return s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM feedback WHERE user_id = $1", userID).Scan(&total)
	})
	return total, err
}

func (s *Store) ListResponses(ctx context.Context, cutoff *time.Time, limit, offset int) ([]Response, error) {
	query, args := responsesBaseQuery(cutoff)
	query += " ORDER BY f.feedback_date DESC, f.created_at DESC"
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, limit, offset)
	}

	var responses []Response
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		responses = responses[:0]
		rows, err := s.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var rec Record
			var name, email string
			if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Motivation, &rec.Wellbeing, &rec.Workload, &rec.Performance,
				&rec.Productivity, &rec.Support, &rec.PositiveEvent, &rec.ImprovementSuggestion, &rec.CreatedAt, &name, &email); err != nil {
				return err
			}
			responses = append(responses, toResponse(rec, name, email))
		}
		return rows.Err()
	})
	return responses, err
}

func (s *Store) CountResponses(ctx context.Context, cutoff *time.Time) (int, error) {
	query, args := responsesBaseQuery(cutoff)
	var total int
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		return s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM ("+query+") responses", args...).Scan(&total)
	})
	return total, err
}

func responsesBaseQuery(cutoff *time.Time) (string, []any) {
	query := `
    SELECT ` + recordColumns + `, TRIM(u.first_name || ' ' || u.last_name), u.email
    FROM feedback f
    JOIN users u ON u.id = f.user_id
  `
	args := []any{}
	if cutoff != nil {
		query += " WHERE f.feedback_date >= $1"
		args = append(args, *cutoff)
	}
	return query, args
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
