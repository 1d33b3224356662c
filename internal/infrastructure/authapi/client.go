// Package authapi is the HTTP client for the external Auth API. The core
// consumes this contract only; authentication policy (hashing, token
// signing) is owned by the backend.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/core/domain"
	"github.com/pawconnect/platform/internal/core/ports"
)

// Client talks to the Auth API over HTTP. It performs no retries and
// enforces no timeout of its own; it relies on whatever the underlying
// transport provides. Transport failures and non-2xx responses both come
// back as errors — the session manager collapses them further.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a client rooted at baseURL, e.g. http://localhost:4000/api.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Phone                string `json:"phone,omitempty"`
	Organization         string `json:"organization,omitempty"`
	VerificationDocument string `json:"verificationDocument,omitempty"`
}

type profileRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Organization    *string `json:"organization,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty"`
}

// authResponse is the success envelope shared by login, register, and
// profile updates.
type authResponse struct {
	Token                string       `json:"token"`
	User                 *domain.User `json:"user"`
	RequiresVerification bool         `json:"requiresVerification"`
	Message              string       `json:"message"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentialsRequest{Email: email, Password: password}, "", &resp); err != nil {
		return nil, err
	}

	session := domain.Session{User: resp.User, Token: resp.Token}
	if !session.Authenticated() {
		return nil, fmt.Errorf("auth api: login response missing user or token")
	}
	return &session, nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResponse, error) {
	body := registerRequest{
		Email:                input.Email,
		Password:             input.Password,
		Name:                 input.Name,
		Role:                 string(input.Role),
		Phone:                input.Phone,
		Organization:         input.Organization,
		VerificationDocument: input.VerificationDocument,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, "", &resp); err != nil {
		return nil, err
	}

	if resp.RequiresVerification {
		return &ports.RegisterResponse{RequiresVerification: true, Message: resp.Message}, nil
	}

	session := domain.Session{User: resp.User, Token: resp.Token}
	if !session.Authenticated() {
		return nil, fmt.Errorf("auth api: register response missing user or token")
	}
	return &ports.RegisterResponse{Session: &session}, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ports.ProfileUpdate) (*domain.User, error) {
	body := profileRequest{
		Name:            update.Name,
		Phone:           update.Phone,
		Organization:    update.Organization,
		Avatar:          update.Avatar,
		CurrentPassword: update.CurrentPassword,
		NewPassword:     update.NewPassword,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPut, "/profile", body, token, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("auth api: profile response missing user")
	}
	return resp.User, nil
}

// do sends one JSON request and decodes the response into out. Non-2xx
// responses become errors carrying the server-provided message when one is
// present.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("auth api: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("auth api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth api: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("auth api: %s", c.errorMessage(res))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("auth api: decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the server message from an error body, falling back
// to the HTTP status line.
func (c *Client) errorMessage(res *http.Response) string {
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	return res.Status
}

var _ ports.AuthAPI = (*Client)(nil)
