package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/common"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

const (
	loginPath    = "/api/login"
	registerPath = "/api/register"
	plansPath    = "/api/plans/"
	pingPath     = "/"
)

// TokenFunc returns the bearer token to attach, or "" for none.
type TokenFunc func() string

// HTTPClient talks to the backend's JSON API. Every call goes through one
// resty client so the failure interceptor sees all of them.
type HTTPClient struct {
	rc     *resty.Client
	logger logging.Logger
}

// NewHTTPClient builds the API client. tokens may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, interceptor *FailureInterceptor, tokens TokenFunc, logger logging.Logger) *HTTPClient {
	logger = logger.With("component", "api")

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(common.RequestIDHeaderName, uuid.NewString())
		if tokens != nil {
			if t := tokens(); t != "" {
				r.SetAuthToken(t)
			}
		}
		return nil
	})
	rc.OnAfterResponse(interceptor.Handle)
	rc.OnError(func(r *resty.Request, err error) {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return
		}
		logger.Debug(r.Context(), "request not completed", "method", r.Method, "url", r.URL, "error", err)
	})

	return &HTTPClient{rc: rc, logger: logger}
}

// Login posts the credentials and returns the user from the reply's
// "message" field.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := c.rc.R().SetContext(ctx).SetBody(creds).Post(loginPath)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeMessage[models.User](resp.StatusCode(), resp.Body())
}

// Register posts a new account and returns the created user record.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	resp, err := c.rc.R().SetContext(ctx).SetBody(reg).Post(registerPath)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeMessage[models.User](resp.StatusCode(), resp.Body())
}

func (c *HTTPClient) Plans(ctx context.Context) ([]models.Plan, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(plansPath)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeMessage[[]models.Plan](resp.StatusCode(), resp.Body())
}

// Ping checks that the backend answers at all. Any HTTP reply, including
// an error status, counts as an answer.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.rc.R().SetContext(ctx).Get(pingPath)
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return mapError(err)
}

func mapError(err error) error {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// envelope is the backend reply shape. Status is set by backends that
// report failures inside a 200 reply.
type envelope struct {
	Status  int             `json:"status"`
	Message json.RawMessage `json:"message"`
}

func decodeMessage[T any](httpStatus int, body []byte) (T, error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if env.Status >= 400 {
		return zero, NormalizeError(env.Status, body)
	}
	if len(env.Message) == 0 || string(env.Message) == "null" {
		return zero, fmt.Errorf("%w: no message in %d reply", ErrMalformedResponse, httpStatus)
	}

	var v T
	if err := json.Unmarshal(env.Message, &v); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return v, nil
}
