package adminhandler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"pulse/internal/domain/auth"
	"pulse/internal/domain/employees"
	"pulse/internal/domain/feedback"
	"pulse/internal/platform/metrics"
	"pulse/internal/transport/http/api"
	"pulse/internal/transport/http/middleware"
	"pulse/internal/transport/http/shared"
)

type FeedbackService interface {
	DashboardStats(ctx context.Context, period string) (feedback.DashboardStats, error)
	ListResponses(ctx context.Context, period string, limit, offset int) ([]feedback.Response, int, error)
	Report(ctx context.Context, period string) (feedback.Report, error)
}

type EmployeeService interface {
	List(ctx context.Context, role string, limit, offset int) ([]employees.Employee, int, error)
}

type Handler struct {
	Feedback    FeedbackService
	Employees   EmployeeService
	Metrics     *metrics.Collector
	Permissions middleware.PermissionStore
	Log         logrus.FieldLogger
}

func NewHandler(fb FeedbackService, emp EmployeeService, collector *metrics.Collector, perms middleware.PermissionStore, log logrus.FieldLogger) *Handler {
	return &Handler{Feedback: fb, Employees: emp, Metrics: collector, Permissions: perms, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDashboardRead, h.Permissions)).Get("/dashboard", h.handleDashboard)
	r.Route("/feedback", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermFeedbackReadAll, h.Permissions)).Get("/", h.handleResponses)
		r.With(middleware.RequirePermission(auth.PermFeedbackExport, h.Permissions)).Get("/export", h.handleExport)
	})
	r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Permissions)).Get("/employees", h.handleEmployees)
	if h.Metrics != nil {
		r.With(middleware.RequirePermission(auth.PermMetricsRead, h.Permissions)).Get("/metrics", h.handleMetrics)
	}
}

// period is passed through untouched; unknown values mean all time.
func period(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("period"))
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Feedback.DashboardStats(r.Context(), period(r))
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleResponses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 500)
	responses, total, err := h.Feedback.ListResponses(r.Context(), period(r), page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}
	if responses == nil {
		responses = []feedback.Response{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, responses, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "xlsx" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "format", Reason: "must be one of pdf, xlsx"}})
		return
	}

	report, err := h.Feedback.Report(r.Context(), period(r))
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}

	var buf bytes.Buffer
	contentType := "application/pdf"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = feedback.WriteXLSX(&buf, report)
	} else {
		err = feedback.WritePDF(&buf, report)
	}
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}

	label := "all"
	if feedback.KnownPeriod(report.Period) {
		label = report.Period
	}
	filename := fmt.Sprintf("pulse-report-%s-%s.%s", label, report.GeneratedAt.Format("20060102"), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.WithField("requestId", reqID).WithError(err).Warn("write export failed")
	}
}

func (h *Handler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 500)
	list, total, err := h.Employees.List(r.Context(), auth.RoleEmployee, page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}
	if list == nil {
		list = []employees.Employee{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, list, reqID)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
