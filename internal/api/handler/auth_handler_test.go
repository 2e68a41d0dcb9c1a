package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, username, password string, role domain.Role) (string, *domain.Account, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, username, password string, role domain.Role) (string, *domain.Account, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) (string, *domain.Account, error) {
			if username != "alice@example.com" || role != domain.RoleContractor {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return "tok", &domain.Account{Username: username, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/register", `{"username":"alice@example.com","password":"secret","role":"CONTRACTOR"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" || resp["role"] != "CONTRACTOR" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAccountService{})

	c, _ := jsonContext(e, http.MethodPost, "/auth/register", `{"username":"bob","password":"secret","role":"GUEST"}`)
	err := handler.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if msg, _ := he.Message.(string); !strings.Contains(msg, "role must be one of") {
		t.Fatalf("unexpected message %v", he.Message)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) (string, *domain.Account, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/auth/register", `{"username":"bob","password":"secret","role":"ADMIN"}`)
	if err := handler.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Account, error) {
			if password != "pw" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "signed", &domain.Account{Username: username, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/login", `{"username":"a@b.com","password":"pw"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token":"signed"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	c, _ = jsonContext(e, http.MethodPost, "/auth/login", `{"username":"a@b.com","password":"nope"}`)
	if err := handler.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	c, _ = jsonContext(e, http.MethodPost, "/auth/login", `{"username":"a@b.com"}`)
	if he, ok := handler.Login(c).(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Fatal("expected 400 for missing password")
	}
}
