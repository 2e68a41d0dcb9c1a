package ports

import (
	"context"
	"io"
	"net/http"
)

// AuthGateway is the external credential exchange service.
type AuthGateway interface {
	// Login returns the issued token and, when the server reports one, a role.
	Login(ctx context.Context, username, password string) (token, role string, err error)
	Register(ctx context.Context, username, password, role string) error
}

// Session is what the request client needs from the session manager.
type Session interface {
	AuthHeaders() http.Header
	Logout(ctx context.Context)
}

// Requester performs authenticated HTTP calls. Do returns the raw response;
// DoJSON encodes in, decodes a 2xx body into out and turns any other status
// into an error.
type Requester interface {
	Do(ctx context.Context, method, url string, body io.Reader, header http.Header) (*http.Response, error)
	DoJSON(ctx context.Context, method, url string, in, out any) error
}
