// Package httpclient sends requests to the portal backends on behalf of the
// current session.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/core/ports"
	"github.com/tenderhub/portal-client/internal/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"
	maxBodyBytes    = 2 << 20
	defaultTimeout  = 15 * time.Second
)

// RequestError describes a failed backend call. Message holds the reason the
// server gave, when it gave one.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %s", e.Op, e.StatusCode, e.Message)
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	default:
		return e.Op
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reason returns the server-supplied message, possibly empty.
func (e *RequestError) Reason() string {
	return e.Message
}

// New returns an *http.Client with the given timeout. Timeouts are the only
// transport policy; nothing here retries.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Client attaches session headers to every request and ends the session when
// a backend answers 401.
type Client struct {
	http    *http.Client
	session ports.Session
	log     zerolog.Logger
}

func NewClient(httpClient *http.Client, session ports.Session, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = New(0)
	}
	return &Client{http: httpClient, session: session, log: log}
}

// Do sends the request with the session's auth headers merged under header;
// caller-supplied values win. Any non-401 response is returned as is and the
// caller owns its body. A 401 logs the session out and yields
// domain.ErrSessionExpired.
func (c *Client) Do(ctx context.Context, method, url string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &RequestError{Op: "create request", Err: err}
	}

	for k, vs := range c.session.AuthHeaders() {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.OutboundRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OutboundRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Warn().Err(err).
			Str("method", method).
			Str("url", url).
			Msg("request failed")
		return nil, &RequestError{Op: "execute request", Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	}
	metrics.OutboundRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()

		c.session.Logout(ctx)
		metrics.ForcedLogoutsTotal.Inc()
		c.log.Info().
			Str("method", method).
			Str("url", url).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Msg("unauthorized response, session cleared")

		return nil, &RequestError{Op: "authenticated request", StatusCode: http.StatusUnauthorized, Err: domain.ErrSessionExpired}
	}

	return resp, nil
}

// DoJSON sends in as a JSON body and decodes a 2xx response into out.
// Non-2xx responses become a *RequestError with the server's message.
// in and out may be nil.
func (c *Client) DoJSON(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	header := http.Header{}
	header.Set("Accept", "application/json")
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: "marshal request body", Err: err}
		}
		body = bytes.NewReader(raw)
		header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(ctx, method, url, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RequestError{Op: "read response", StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	}
	if err := CheckStatus(resp.StatusCode, raw); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Op: "decode response", StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// CheckStatus returns a *RequestError for non-2xx codes.
func CheckStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &RequestError{
		Op:         "unexpected http status",
		StatusCode: code,
		Message:    ErrorMessage(body),
	}
}

// ErrorMessage extracts a readable reason from an error body: the "message"
// or "error" field of a JSON object, otherwise the trimmed text.
func ErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var env struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil {
			switch {
			case env.Message != "":
				return env.Message
			case env.Error != "":
				return env.Error
			}
		}
	}
	return strings.TrimSpace(string(trimmed))
}
