package authhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"pulse/internal/domain/auth"
	"pulse/internal/transport/http/api"
	"pulse/internal/transport/http/middleware"
	"pulse/internal/transport/http/shared"
)

type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (auth.User, error)
	Authenticate(ctx context.Context, email, password, mfaCode string) (auth.Session, error)
	Logout(ctx context.Context, user auth.UserContext) error
	Me(ctx context.Context, userID string) (auth.User, error)
	SetupMFA(ctx context.Context, userID string) (auth.MFASetup, error)
	EnableMFA(ctx context.Context, userID, code string) error
	DisableMFA(ctx context.Context, userID, code string) error
}

type Handler struct {
	Service Service
	Log     logrus.FieldLogger
}

func NewHandler(service Service, log logrus.FieldLogger) *Handler {
	return &Handler{Service: service, Log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfaCode" validate:"omitempty,len=6,numeric"`
}

type mfaCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/logout", h.HandleLogout)
		r.Get("/me", h.HandleMe)
		r.Post("/mfa/setup", h.HandleMFASetup)
		r.Post("/mfa/enable", h.HandleMFAEnable)
		r.Post("/mfa/disable", h.HandleMFADisable)
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload auth.RegisterInput
	if !shared.DecodeAndValidate(w, r, &payload, reqID) {
		return
	}
	user, err := h.Service.Register(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, user, reqID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeAndValidate(w, r, &payload, reqID) {
		return
	}
	session, err := h.Service.Authenticate(r.Context(), payload.Email, payload.Password, payload.MFACode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, session, reqID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Logout(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	me, err := h.Service.Me(r.Context(), user.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, me, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	setup, err := h.Service.SetupMFA(r.Context(), user.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, setup, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.handleMFAToggle(w, r, h.Service.EnableMFA, "enabled")
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.handleMFAToggle(w, r, h.Service.DisableMFA, "disabled")
}

func (h *Handler) handleMFAToggle(w http.ResponseWriter, r *http.Request, toggle func(context.Context, string, string) error, status string) {
	reqID := middleware.GetRequestID(r.Context())
	var payload mfaCodeRequest
	if !shared.DecodeAndValidate(w, r, &payload, reqID) {
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := toggle(r.Context(), user.UserID, payload.Code); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": status}, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	var pwErr *auth.PasswordError
	switch {
	case errors.As(err, &pwErr):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "password", Reason: pwErr.Reason}})
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", reqID)
	case errors.Is(err, auth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", reqID)
	case errors.Is(err, auth.ErrMFANotConfigured):
		api.Fail(w, http.StatusBadRequest, "mfa_not_configured", "mfa setup required", reqID)
	case errors.Is(err, auth.ErrMFAUnavailable):
		api.Fail(w, http.StatusBadRequest, "mfa_unavailable", "mfa is not available on this server", reqID)
	case errors.Is(err, auth.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", reqID)
	case errors.Is(err, auth.ErrSignupDisabled):
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", reqID)
	case errors.Is(err, auth.ErrUserNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", reqID)
	default:
		shared.WriteError(w, r, h.Log, err, reqID)
	}
}
