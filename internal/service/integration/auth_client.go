package integration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type AuthClient interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type authClient struct {
	client *resty.Client
	logger zerolog.Logger
}

type authUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewAuthClient resolves the caller through the hosted auth service
// using the bearer token carried in the request context.
func NewAuthClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) AuthClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("apikey", apiKey)
	}

	return &authClient{
		client: client,
		logger: logger,
	}
}

func (c *authClient) CurrentUserID(ctx context.Context) (string, error) {
	token, ok := BearerTokenFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}

	var user authUserResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		SetError(&hostedError{}).
		Get("/auth/v1/user")
	if err != nil {
		return "", fmt.Errorf("failed to call auth service: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return "", ErrUnauthenticated
	case resp.IsError():
		return "", newHostedError(resp)
	}

	if user.ID == "" {
		return "", ErrUnauthenticated
	}

	c.logger.Debug().Str("user_id", user.ID).Msg("Resolved user from auth service")
	return user.ID, nil
}
