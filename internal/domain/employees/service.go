package employees

import (
	"context"
	"errors"
	"fmt"
)

var ErrUpstreamUnavailable = errors.New("employee store unavailable")

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// CountByRole satisfies the headcount dependency of the dashboard.
func (s *Service) CountByRole(ctx context.Context, role string) (int, error) {
	return s.store.CountByRole(ctx, role)
}

// List returns one page of role members and the total across all pages.
func (s *Service) List(ctx context.Context, role string, limit, offset int) ([]Employee, int, error) {
	total, err := s.store.CountByRole(ctx, role)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if offset >= total {
		return []Employee{}, total, nil
	}
	list, err := s.store.List(ctx, role, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return list, total, nil
}
