// Package authapi talks to the auth service's credential exchange endpoints.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tenderhub/portal-client/internal/core/domain"
	"github.com/tenderhub/portal-client/internal/infrastructure/httpclient"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	maxBodyBytes = 1 << 20
)

// Client implements ports.AuthGateway. Requests carry no session headers.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (c *Client) Login(ctx context.Context, username, password string) (string, string, error) {
	resp, err := c.post(ctx, "login", pathLogin, credentials{Username: username, Password: password})
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.Role, nil
}

func (c *Client) Register(ctx context.Context, username, password, role string) error {
	_, err := c.post(ctx, "register", pathRegister, credentials{Username: username, Password: password, Role: role})
	return err
}

func (c *Client) post(ctx context.Context, op, path string, in credentials) (*tokenResponse, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, &httpclient.RequestError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, &httpclient.RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httpclient.RequestError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &httpclient.RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", domain.ErrTransport, err)}
	}
	if err := httpclient.CheckStatus(resp.StatusCode, body); err != nil {
		reqErr := err.(*httpclient.RequestError)
		reqErr.Op = op
		if resp.StatusCode == http.StatusUnauthorized {
			reqErr.Err = domain.ErrInvalidCredentials
		}
		return nil, reqErr
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &httpclient.RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.Token == "" {
		return nil, domain.ErrTokenMissing
	}
	return &out, nil
}
