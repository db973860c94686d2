package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// EmployeeRole is the role counted as the survey population.
const EmployeeRole = "employee"

type Service struct {
	store     StoreAPI
	employees EmployeeCounter
	log       logrus.FieldLogger
	now       func() time.Time
	onBuilt   func()
}

func NewService(store StoreAPI, employees EmployeeCounter, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, employees: employees, log: log, now: time.Now}
}

// OnDashboardBuilt registers a hook that runs after every successful
// dashboard aggregation.
func (s *Service) OnDashboardBuilt(fn func()) {
	s.onBuilt = fn
}

// clock is the service's notion of now. Submission dates are UTC calendar
// dates, so period boundaries are computed in UTC as well.
func (s *Service) clock() time.Time {
	return s.now().UTC()
}

func (s *Service) today() time.Time {
	return calendarDate(s.clock())
}

func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Record, error) {
	rec := Record{
		UserID:                userID,
		Motivation:            coalesce(in.Motivation, in.Wellbeing),
		Workload:              in.Workload,
		Performance:           coalesce(in.Performance, in.Productivity),
		Support:               strings.TrimSpace(in.Support),
		PositiveEvent:         strings.TrimSpace(in.PositiveEvent),
		ImprovementSuggestion: strings.TrimSpace(in.ImprovementSuggestion),
	}

	today := s.today()
	rec.Date = today
	if strings.TrimSpace(in.Date) != "" {
		date, err := ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			return Record{}, invalid("date", "must be formatted as YYYY-MM-DD")
		}
		if date.After(today) {
			return Record{}, invalid("date", "must not be in the future")
		}
		rec.Date = date
	}

	if err := validateRecord(rec); err != nil {
		return Record{}, err
	}

	created, err := s.store.CreateFeedback(ctx, rec)
	if errors.Is(err, ErrDuplicateSubmission) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, upstream(err)
	}
	s.log.WithFields(logrus.Fields{"userId": userID, "date": created.Date.Format(dateLayout)}).Info("feedback submitted")
	return created, nil
}

func validateRecord(rec Record) error {
	if err := checkRatings("", Reconcile(rec)); err != nil {
		return err
	}
	if rec.Support != "" && rec.Support != SupportYes && rec.Support != SupportNo && rec.Support != SupportPartially {
		return invalid("support", "must be one of Yes, No, Partially")
	}
	if utf8.RuneCountInString(rec.PositiveEvent) > maxTextLength {
		return invalid("positiveEvent", fmt.Sprintf("must be at most %d characters", maxTextLength))
	}
	if utf8.RuneCountInString(rec.ImprovementSuggestion) > maxTextLength {
		return invalid("improvementSuggestion", fmt.Sprintf("must be at most %d characters", maxTextLength))
	}
	return nil
}

func (s *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]Record, int, error) {
	total, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, upstream(err)
	}
	records, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, upstream(err)
	}
	return records, total, nil
}

// ListResponses returns individual submissions with their canonical values.
// limit <= 0 returns every response in the period.
func (s *Service) ListResponses(ctx context.Context, period string, limit, offset int) ([]Response, int, error) {
	return s.listResponses(ctx, period, s.clock(), limit, offset)
}

func (s *Service) listResponses(ctx context.Context, period string, now time.Time, limit, offset int) ([]Response, int, error) {
	cutoff := cutoffAt(period, now)
	total, err := s.store.CountResponses(ctx, cutoff)
	if err != nil {
		return nil, 0, upstream(err)
	}
	responses, err := s.store.ListResponses(ctx, cutoff, limit, offset)
	if err != nil {
		return nil, 0, upstream(err)
	}
	return responses, total, nil
}

// DashboardStats reads the period's records and the employee headcount
// concurrently, then aggregates. Nothing is cached between calls.
func (s *Service) DashboardStats(ctx context.Context, period string) (DashboardStats, error) {
	return s.dashboardStats(ctx, period, s.clock())
}

// dashboardStats derives the store cutoff and the in-memory filter from the
// same instant so both agree on the period boundary.
func (s *Service) dashboardStats(ctx context.Context, period string, now time.Time) (DashboardStats, error) {
	cutoff := cutoffAt(period, now)

	var records []Record
	var totalEmployees int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.store.FeedbackSince(gctx, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		totalEmployees, err = s.employees.CountByRole(gctx, EmployeeRole)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, upstream(err)
	}

	stats, err := Aggregate(FilterByPeriod(records, period, now), totalEmployees)
	if err != nil {
		return DashboardStats{}, err
	}
	if s.onBuilt != nil {
		s.onBuilt()
	}
	return stats, nil
}

// Report gathers the stats and every response of a period for export.
func (s *Service) Report(ctx context.Context, period string) (Report, error) {
	now := s.clock()
	stats, err := s.dashboardStats(ctx, period, now)
	if err != nil {
		return Report{}, err
	}
	responses, _, err := s.listResponses(ctx, period, now, 0, 0)
	if err != nil {
		return Report{}, err
	}
	return Report{Period: period, GeneratedAt: now, Stats: stats, Responses: responses}, nil
}

func cutoffAt(period string, now time.Time) *time.Time {
	cutoff, ok := Cutoff(period, now)
	if !ok {
		return nil
	}
	return &cutoff
}

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
