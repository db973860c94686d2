package employees

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulse/internal/platform/db"
)

const statusActive = "active"

type Store struct {
	DB         *pgxpool.Pool
	RetryLimit time.Duration
}

func NewStore(pool *pgxpool.Pool, retryLimit time.Duration) *Store {
	return &Store{DB: pool, RetryLimit: retryLimit}
}

// CountByRole counts active accounts holding role.
func (s *Store) CountByRole(ctx context.Context, role string) (int, error) {
	var total int
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		return s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM users WHERE role = $1 AND status = $2
  `, role, statusActive).Scan(&total)
	})
	return total, err
}

func (s *Store) List(ctx context.Context, role string, limit, offset int) ([]Employee, error) {
	var out []Employee
	err := db.Retry(ctx, s.RetryLimit, func(ctx context.Context) error {
		out = out[:0]
		rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.status, u.created_at,
           MAX(f.feedback_date), COUNT(f.id)
    FROM users u
    LEFT JOIN feedback f ON f.user_id = u.id
    WHERE u.role = $1 AND u.status = $2
    GROUP BY u.id
    ORDER BY u.last_name, u.first_name
    LIMIT $3 OFFSET $4
  `, role, statusActive, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var emp Employee
			if err := rows.Scan(&emp.ID, &emp.Email, &emp.FirstName, &emp.LastName, &emp.Role, &emp.Status, &emp.CreatedAt,
				&emp.LastSubmission, &emp.Submissions); err != nil {
				return err
			}
			out = append(out, emp)
		}
		return rows.Err()
	})
	return out, err
}
