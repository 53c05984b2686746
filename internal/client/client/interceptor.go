package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/melodeck/internal/client/nav"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

// SessionClearer ends the local session. session.Store satisfies it.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// FailureInterceptor inspects every response of the shared HTTP client.
// Failures are turned into *APIError; a 401 additionally sends the
// navigator to the root route. It never retries or swallows a failure.
type FailureInterceptor struct {
	nav     nav.Navigator
	session SessionClearer
	logger  logging.Logger
}

type InterceptorOption func(*FailureInterceptor)

// WithLogoutOnUnauthorized makes a 401 also clear the local session.
// Clearing navigates to root itself, so navigation still happens once.
func WithLogoutOnUnauthorized(s SessionClearer) InterceptorOption {
	return func(i *FailureInterceptor) { i.session = s }
}

func NewFailureInterceptor(n nav.Navigator, logger logging.Logger, opts ...InterceptorOption) *FailureInterceptor {
	i := &FailureInterceptor{nav: n, logger: logger.With("component", "interceptor")}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Handle is a resty response middleware.
func (i *FailureInterceptor) Handle(_ *resty.Client, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	ctx := context.Background()
	if resp.Request != nil {
		ctx = resp.Request.Context()
	}

	apiErr := NormalizeError(resp.StatusCode(), resp.Body())
	i.logger.Warn(ctx, "request failed",
		"status", apiErr.StatusCode, "url", requestURL(resp), "message", apiErr.Message)

	if apiErr.StatusCode == http.StatusUnauthorized {
		i.onUnauthorized(ctx)
	}
	return apiErr
}

func (i *FailureInterceptor) onUnauthorized(ctx context.Context) {
	if i.session != nil {
		if err := i.session.Clear(ctx); err != nil {
			i.logger.Error(ctx, "clear session after 401 failed", "error", err)
		}
		return
	}
	i.nav.Navigate(nav.RootRoute)
}

func requestURL(resp *resty.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.URL
}
