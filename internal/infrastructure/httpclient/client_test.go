package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
)

type fakeSession struct {
	token   string
	logouts int
}

func (s *fakeSession) AuthHeaders() http.Header {
	h := make(http.Header)
	if s.token != "" {
		h.Set("Authorization", "Bearer "+s.token)
	}
	return h
}

func (s *fakeSession) Logout(context.Context) {
	s.logouts++
	s.token = ""
}

func TestDo_AttachesAuthAndRequestID(t *testing.T) {
	var auth, reqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(HeaderRequestID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), &fakeSession{token: "tok"}, zerolog.Nop())
	resp, err := c.Do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if auth != "Bearer tok" {
		t.Fatalf("unexpected Authorization %q", auth)
	}
	if reqID == "" {
		t.Fatal("expected a request id")
	}
}

func TestDo_CallerHeadersWin(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), &fakeSession{token: "tok"}, zerolog.Nop())
	h := http.Header{}
	h.Set("Authorization", "Basic override")
	h.Set(HeaderRequestID, "fixed-id")
	h.Set("Content-Type", "application/json")

	resp, err := c.Do(context.Background(), http.MethodPost, srv.URL, strings.NewReader("{}"), h)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if got.Get("Authorization") != "Basic override" {
		t.Fatalf("caller header lost: %q", got.Get("Authorization"))
	}
	if got.Get(HeaderRequestID) != "fixed-id" {
		t.Fatalf("caller request id lost: %q", got.Get(HeaderRequestID))
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("content type lost: %q", got.Get("Content-Type"))
	}
}

func TestDo_AnonymousSendsNoAuthorization(t *testing.T) {
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Values("Authorization")
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), &fakeSession{}, zerolog.Nop())
	resp, err := c.Do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if len(auth) != 0 {
		t.Fatalf("expected no Authorization, got %v", auth)
	}
}

func TestDo_UnauthorizedLogsOut(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok"}
	c := NewClient(srv.Client(), sess, zerolog.Nop())
	ctx := context.Background()

	resp, err := c.Do(ctx, http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	resp.Body.Close()
	if sess.logouts != 0 {
		t.Fatal("first call must not log out")
	}

	resp, err = c.Do(ctx, http.MethodGet, srv.URL, nil, nil)
	if resp != nil {
		t.Fatal("expected no response on 401")
	}
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected RequestError with 401, got %v", err)
	}
	if sess.logouts != 1 || sess.token != "" {
		t.Fatalf("expected one logout, got %d", sess.logouts)
	}
}

func TestDo_ForbiddenKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok"}
	c := NewClient(srv.Client(), sess, zerolog.Nop())
	resp, err := c.Do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("403 is returned as a response, got %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden || sess.logouts != 0 {
		t.Fatalf("unexpected: status=%d logouts=%d", resp.StatusCode, sess.logouts)
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sess := &fakeSession{token: "tok"}
	c := NewClient(nil, sess, zerolog.Nop())
	_, err := c.Do(context.Background(), http.MethodGet, url, nil, nil)
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if sess.logouts != 0 {
		t.Fatal("transport failure must not end the session")
	}
}

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("Content-Type") != "application/json" {
				w.WriteHeader(http.StatusUnsupportedMediaType)
				return
			}
			_, _ = w.Write([]byte(`{"name":"echo"}`))
		case "/empty":
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("  limit must be positive \n"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), &fakeSession{}, zerolog.Nop())
	ctx := context.Background()

	var out struct {
		Name string `json:"name"`
	}
	if err := c.DoJSON(ctx, http.MethodPost, srv.URL+"/ok", map[string]int{"limit": 1}, &out); err != nil {
		t.Fatalf("ok: %v", err)
	}
	if out.Name != "echo" {
		t.Fatalf("unexpected body %+v", out)
	}

	if err := c.DoJSON(ctx, http.MethodPost, srv.URL+"/empty", struct{}{}, &out); err != nil {
		t.Fatalf("empty: %v", err)
	}

	err := c.DoJSON(ctx, http.MethodPost, srv.URL+"/bad", nil, nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest || reqErr.Reason() != "limit must be positive" {
		t.Fatalf("unexpected error %+v", reqErr)
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{``, ``},
		{`{"message":"Bad creds"}`, `Bad creds`},
		{`{"error":"forbidden"}`, `forbidden`},
		{`{"message":"","error":"fallback"}`, `fallback`},
		{`{"code":7}`, `{"code":7}`},
		{`plain text `, `plain text`},
	}
	for _, tc := range cases {
		if got := ErrorMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("ErrorMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestRequestErrorFormatting(t *testing.T) {
	err := &RequestError{Op: "list", StatusCode: 500, Message: "boom"}
	if err.Error() != "list: status=500: boom" {
		t.Fatalf("unexpected %q", err.Error())
	}
	wrapped := &RequestError{Op: "list", Err: domain.ErrTransport}
	if wrapped.Error() != "list: transport failure" || !errors.Is(wrapped, domain.ErrTransport) {
		t.Fatalf("unexpected %q", wrapped.Error())
	}
}
