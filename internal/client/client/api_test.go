package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/client/nav"
	"github.com/dmitrijs2005/melodeck/internal/common"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type requestLog struct {
	mu   sync.Mutex
	reqs []capturedRequest
}

func (l *requestLog) add(r capturedRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reqs = append(l.reqs, r)
}

func (l *requestLog) all() []capturedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]capturedRequest(nil), l.reqs...)
}

// stubBackend answers every request with status and body and records it.
func stubBackend(t *testing.T, status int, body string) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		log.add(capturedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: b})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, log
}

func newTestClient(t *testing.T, baseURL string, tokens TokenFunc) (*HTTPClient, *nav.Recorder) {
	t.Helper()
	rec := &nav.Recorder{}
	log := logging.Discard()
	return NewHTTPClient(baseURL, 2*time.Second, NewFailureInterceptor(rec, log), tokens, log), rec
}

func TestLogin_Success_PostsCredentialsAndReturnsUser(t *testing.T) {
	srv, reqs := stubBackend(t, http.StatusOK, `{"status":200,"message":{"ID":1,"Email":"a@b.com","Token":"tok"}}`)
	c, rec := newTestClient(t, srv.URL+"/", nil)

	u, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email())
	assert.Equal(t, "tok", u.Token())
	assert.Empty(t, rec.Routes)

	all := reqs.all()
	require.Len(t, all, 1)
	got := all[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/login", got.Path)
	assert.JSONEq(t, `{"Email":"a@b.com","Password":"x"}`, string(got.Body))
	assert.Contains(t, got.Header.Get("Content-Type"), "application/json")
	_, err = uuid.Parse(got.Header.Get(common.RequestIDHeaderName))
	assert.NoError(t, err)
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestLogin_Unauthorized_NormalizedErrorAndNavigation(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusUnauthorized, `{"error":{"message":"bad credentials","code":"E_AUTH"}}`)
	c, rec := newTestClient(t, srv.URL, nil)

	u, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.Error(t, err)
	assert.Nil(t, u)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad credentials", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "E_AUTH", apiErr.Payload["code"])
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "bad credentials")

	assert.Equal(t, []string{nav.RootRoute}, rec.Routes)
}

func TestRegister_Success(t *testing.T) {
	srv, reqs := stubBackend(t, http.StatusOK, `{"status":200,"message":{"ID":5,"Email":"n@b.com","PlanID":2}}`)
	c, _ := newTestClient(t, srv.URL, nil)

	u, err := c.Register(context.Background(), models.Registration{Email: "n@b.com", Password: "pw", PlanID: 2})
	require.NoError(t, err)
	id, ok := u.ID()
	require.True(t, ok)
	assert.Equal(t, int64(5), id)

	all := reqs.all()
	require.Len(t, all, 1)
	assert.Equal(t, "/api/register", all[0].Path)
	assert.JSONEq(t, `{"Email":"n@b.com","Password":"pw","PlanID":2}`, string(all[0].Body))
}

func TestRegister_Conflict_UsesBackendMessage(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusConflict, `{"status":409,"message":"User already exists"}`)
	c, rec := newTestClient(t, srv.URL, nil)

	_, err := c.Register(context.Background(), models.Registration{Email: "n@b.com"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already exists", apiErr.Message)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, rec.Routes)
}

func TestPlans_SendsBearerToken(t *testing.T) {
	srv, reqs := stubBackend(t, http.StatusOK, `{"status":200,"message":[{"ID":1,"Name":"Basic","PlaylistSize":10},{"ID":2,"Name":"Pro","PlaylistSize":100}]}`)
	c, _ := newTestClient(t, srv.URL, func() string { return "jwt-token" })

	plans, err := c.Plans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Plan{{ID: 1, Name: "Basic", PlaylistSize: 10}, {ID: 2, Name: "Pro", PlaylistSize: 100}}, plans)

	all := reqs.all()
	require.Len(t, all, 1)
	assert.Equal(t, http.MethodGet, all[0].Method)
	assert.Equal(t, "/api/plans/", all[0].Path)
	assert.Equal(t, "Bearer jwt-token", all[0].Header.Get("Authorization"))
}

func TestPlans_FailureInsideOKReply(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusOK, `{"status":403,"message":"You must be logged in"}`)
	c, _ := newTestClient(t, srv.URL, nil)

	_, err := c.Plans(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "You must be logged in", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MalformedReplies(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       `<html>`,
		"no message":     `{"status":200}`,
		"null message":   `{"message":null}`,
		"string message": `{"message":"ok"}`,
		"array message":  `{"message":[1,2]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := stubBackend(t, http.StatusOK, body)
			c, _ := newTestClient(t, srv.URL, nil)

			_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestLogin_TransportFailure_WrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, rec := newTestClient(t, url, nil)
	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	assert.False(t, errorsAs(err, &apiErr))
	assert.Empty(t, rec.Routes)
}

func TestPing(t *testing.T) {
	srv, reqs := stubBackend(t, http.StatusOK, `Uh oh, you shouldn't be here!!`)
	c, _ := newTestClient(t, srv.URL, nil)

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "/", reqs.all()[0].Path)
}

func TestPing_ErrorStatusStillAnswers(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusNotFound, `not here`)
	c, _ := newTestClient(t, srv.URL, nil)

	assert.NoError(t, c.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := newTestClient(t, url, nil)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestLogin_NoRetryOnFailure(t *testing.T) {
	srv, reqs := stubBackend(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
	c, _ := newTestClient(t, srv.URL, nil)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.EqualError(t, err, "boom")
	assert.Len(t, reqs.all(), 1)
}

func TestDecodeMessage_RawPayloadPreserved(t *testing.T) {
	body, err := json.Marshal(map[string]any{"message": map[string]any{"ID": 1, "Extra": []any{"a"}}})
	require.NoError(t, err)

	u, err := decodeMessage[models.User](http.StatusOK, body)
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, u["Extra"])
}
