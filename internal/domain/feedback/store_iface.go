package feedback

import (
	"context"
	"time"
)

// StoreAPI is the records store. A nil cutoff means every record.
type StoreAPI interface {
	FeedbackSince(ctx context.Context, cutoff *time.Time) ([]Record, error)
	CreateFeedback(ctx context.Context, rec Record) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ListResponses(ctx context.Context, cutoff *time.Time, limit, offset int) ([]Response, error)
	CountResponses(ctx context.Context, cutoff *time.Time) (int, error)
}

type EmployeeCounter interface {
	CountByRole(ctx context.Context, role string) (int, error)
}
