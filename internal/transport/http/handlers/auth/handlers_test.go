package authhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"pulse/internal/domain/auth"
	"pulse/internal/transport/http/middleware"
)

type fakeService struct {
	loggedOut auth.UserContext
	mfaCode   string
}

func (f *fakeService) Register(ctx context.Context, in auth.RegisterInput) (auth.User, error) {
	if err := auth.ValidatePassword(in.Password); err != nil {
		return auth.User{}, err
	}
	if in.Email == "taken@example.com" {
		return auth.User{}, auth.ErrEmailTaken
	}
	return auth.User{ID: "u-new", Email: in.Email, Role: auth.RoleEmployee}, nil
}

func (f *fakeService) Authenticate(ctx context.Context, email, password, mfaCode string) (auth.Session, error) {
	if password != "Secret123" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return auth.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: auth.User{ID: "u1", Email: email}}, nil
}

func (f *fakeService) Logout(ctx context.Context, user auth.UserContext) error {
	f.loggedOut = user
	return nil
}

func (f *fakeService) Me(ctx context.Context, userID string) (auth.User, error) {
	return auth.User{ID: userID, Email: "me@example.com"}, nil
}

func (f *fakeService) SetupMFA(ctx context.Context, userID string) (auth.MFASetup, error) {
	return auth.MFASetup{}, auth.ErrMFAUnavailable
}

func (f *fakeService) EnableMFA(ctx context.Context, userID, code string) error {
	f.mfaCode = code
	return nil
}

func (f *fakeService) DisableMFA(ctx context.Context, userID, code string) error {
	return auth.ErrMFANotConfigured
}

func newRouter(svc Service, user *auth.UserContext) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(middleware.WithUser(req.Context(), *user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/auth", NewHandler(svc, log).RegisterRoutes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Error.Code
}

func TestLogin(t *testing.T) {
	h := newRouter(&fakeService{}, nil)

	rec := do(t, h, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"Secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"x"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "validation_error" {
		t.Fatalf("expected validation_error, got %d", rec.Code)
	}
}

func TestRegister(t *testing.T) {
	h := newRouter(&fakeService{}, nil)
	tests := []struct {
		name string
		body string
		code int
		err  string
	}{
		{"created", `{"email":"new@example.com","password":"Stronger123","firstName":"Ana","lastName":"Lopez"}`, http.StatusCreated, ""},
		{"weak password", `{"email":"new@example.com","password":"weakpass","firstName":"Ana","lastName":"Lopez"}`, http.StatusBadRequest, "validation_error"},
		{"missing name", `{"email":"new@example.com","password":"Stronger123"}`, http.StatusBadRequest, "validation_error"},
		{"taken", `{"email":"taken@example.com","password":"Stronger123","firstName":"Ana","lastName":"Lopez"}`, http.StatusConflict, "email_taken"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/auth/register", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
			if tc.err != "" && errorCode(t, rec) != tc.err {
				t.Fatalf("expected %s, got %s", tc.err, errorCode(t, rec))
			}
		})
	}
}

func TestProtectedRoutesNeedUser(t *testing.T) {
	h := newRouter(&fakeService{}, nil)
	for _, path := range []string{"/auth/logout", "/auth/mfa/setup"} {
		if rec := do(t, h, http.MethodPost, path, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/auth/me", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("me: expected 401, got %d", rec.Code)
	}
}

func TestLogoutAndMFA(t *testing.T) {
	svc := &fakeService{}
	user := &auth.UserContext{UserID: "u1", RoleName: auth.RoleEmployee, TokenID: "jti-1"}
	h := newRouter(svc, user)

	if rec := do(t, h, http.MethodPost, "/auth/logout", ""); rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	if svc.loggedOut.TokenID != "jti-1" {
		t.Fatalf("expected token jti-1 revoked, got %+v", svc.loggedOut)
	}

	if rec := do(t, h, http.MethodPost, "/auth/mfa/setup", ""); rec.Code != http.StatusBadRequest || errorCode(t, rec) != "mfa_unavailable" {
		t.Fatalf("setup: unexpected %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodPost, "/auth/mfa/enable", `{"code":"12ab56"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("enable: expected 400 for non numeric code, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/auth/mfa/enable", `{"code":"123456"}`); rec.Code != http.StatusOK || svc.mfaCode != "123456" {
		t.Fatalf("enable: unexpected %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/auth/mfa/disable", `{"code":"123456"}`); rec.Code != http.StatusBadRequest || errorCode(t, rec) != "mfa_not_configured" {
		t.Fatalf("disable: unexpected %d", rec.Code)
	}
}
