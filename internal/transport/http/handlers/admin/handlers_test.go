package adminhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/domain/auth"
	"pulse/internal/domain/employees"
	"pulse/internal/domain/feedback"
	"pulse/internal/platform/metrics"
	"pulse/internal/transport/http/middleware"
)

type fakeFeedback struct {
	period string
	err    error
}

func (f *fakeFeedback) DashboardStats(ctx context.Context, period string) (feedback.DashboardStats, error) {
	f.period = period
	if f.err != nil {
		return feedback.DashboardStats{}, f.err
	}
	return feedback.DashboardStats{ResponseRate: 100, MotivationAvg: "6.0", WorkloadAvg: "7.5", PerformanceAvg: "6.0",
		SupportYesPercentage: 50, SupportNoPercentage: 50, TotalEmployees: 2, FeedbackCount: 2}, nil
}

func (f *fakeFeedback) ListResponses(ctx context.Context, period string, limit, offset int) ([]feedback.Response, int, error) {
	f.period = period
	return []feedback.Response{{ID: "r1", EmployeeName: "Ana Lopez"}}, 12, f.err
}

func (f *fakeFeedback) Report(ctx context.Context, period string) (feedback.Report, error) {
	f.period = period
	return feedback.Report{Period: period, GeneratedAt: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)}, f.err
}

type fakeEmployees struct{}

func (fakeEmployees) List(ctx context.Context, role string, limit, offset int) ([]employees.Employee, int, error) {
	return []employees.Employee{{ID: "e1", Role: role}}, 3, nil
}

func newRouter(fb FeedbackService, role string) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", RoleName: role}))
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/admin", NewHandler(fb, fakeEmployees{}, metrics.New(), auth.StaticPermissions{}, log).RegisterRoutes)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboard(t *testing.T) {
	fb := &fakeFeedback{}
	rec := get(newRouter(fb, auth.RoleAdmin), "/admin/dashboard?period=last-week")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "last-week", fb.period)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "7.5", body.Data["workloadAvg"])
	assert.Equal(t, float64(50), body.Data["supportYesPercentage"])
	assert.Contains(t, body.Data, "pendingFeedbacks")
}

func TestDashboardUnknownPeriodPassesThrough(t *testing.T) {
	fb := &fakeFeedback{}
	rec := get(newRouter(fb, auth.RoleAdmin), "/admin/dashboard?period=foo")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "foo", fb.period)
}

func TestDashboardErrors(t *testing.T) {
	rec := get(newRouter(&fakeFeedback{}, auth.RoleEmployee), "/admin/dashboard")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	upstream := errors.Join(feedback.ErrUpstreamUnavailable, errors.New("dial tcp"))
	rec = get(newRouter(&fakeFeedback{err: upstream}, auth.RoleAdmin), "/admin/dashboard")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream_unavailable")

	rec = get(newRouter(&fakeFeedback{err: &feedback.ValidationError{Field: "records[0].motivation", Reason: "must be between 0 and 10"}}, auth.RoleAdmin), "/admin/dashboard")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestResponsesAndEmployeesSetTotal(t *testing.T) {
	h := newRouter(&fakeFeedback{}, auth.RoleAdmin)

	rec := get(h, "/admin/feedback?period=last-month&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))

	rec = get(h, "/admin/employees")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-Total-Count"))
	assert.Contains(t, rec.Body.String(), `"role":"employee"`)
}

func TestExport(t *testing.T) {
	h := newRouter(&fakeFeedback{}, auth.RoleAdmin)

	rec := get(h, "/admin/feedback/export?format=pdf&period=last-week")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pulse-report-last-week-20250510.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = get(h, "/admin/feedback/export?format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pulse-report-all-20250510.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = get(h, "/admin/feedback/export?format=csv")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(newRouter(&fakeFeedback{}, auth.RoleEmployee), "/admin/feedback/export")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetrics(t *testing.T) {
	rec := get(newRouter(&fakeFeedback{}, auth.RoleAdmin), "/admin/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requestsTotal")
}
