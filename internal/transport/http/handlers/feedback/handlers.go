package feedbackhandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"pulse/internal/domain/auth"
	"pulse/internal/domain/feedback"
	"pulse/internal/transport/http/api"
	"pulse/internal/transport/http/middleware"
	"pulse/internal/transport/http/shared"
)

type Service interface {
	Submit(ctx context.Context, userID string, in feedback.SubmitInput) (feedback.Record, error)
	ListMine(ctx context.Context, userID string, limit, offset int) ([]feedback.Record, int, error)
}

type Handler struct {
	Service     Service
	Permissions middleware.PermissionStore
	Log         logrus.FieldLogger
}

func NewHandler(service Service, perms middleware.PermissionStore, log logrus.FieldLogger) *Handler {
	return &Handler{Service: service, Permissions: perms, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermFeedbackSubmit, h.Permissions)).Post("/", h.handleSubmit)
	r.With(middleware.RequirePermission(auth.PermFeedbackReadOwn, h.Permissions)).Get("/mine", h.handleListMine)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload feedback.SubmitInput
	if !shared.DecodeAndValidate(w, r, &payload, reqID) {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	created, err := h.Service.Submit(r.Context(), user.UserID, payload)
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 30, 200)
	records, total, err := h.Service.ListMine(r.Context(), user.UserID, page.Limit, page.Offset)
	if err != nil {
		shared.WriteError(w, r, h.Log, err, reqID)
		return
	}
	if records == nil {
		records = []feedback.Record{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, records, reqID)
}
