package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/recipehub/internal/blogservice"
	"github.com/sushihentaime/recipehub/internal/commentservice"
	"github.com/sushihentaime/recipehub/internal/common"
	"github.com/sushihentaime/recipehub/internal/mailservice"
	"github.com/sushihentaime/recipehub/internal/mediaservice"
	"github.com/sushihentaime/recipehub/internal/reactionservice"
	"github.com/sushihentaime/recipehub/internal/recipeservice"
	"github.com/sushihentaime/recipehub/internal/userservice"
	"github.com/sushihentaime/recipehub/internal/videoservice"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	args := m.Called(ctx, key, size, contentType)
	return args.String(0), args.Error(1)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

// testDeps are the doubles behind a test application.
type testDeps struct {
	generator *mockGenerator
	store     *mockStore
	limiter   *mockLimiter
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBareApplication builds an application without any backing services, for middleware tests.
func newBareApplication(t *testing.T) *application {
	cfg, err := loadConfig("")
	assert.NoError(t, err)

	return &application{
		config: cfg,
		logger: newTestLogger(),
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *testDeps) {
	db := common.TestDB("file://../migrations", t)
	logger := newTestLogger()

	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)
	t.Cleanup(func() { rabbitmq.Close() })

	err = common.SetupUserExchange(rabbitmq)
	assert.NoError(t, err)

	err = common.SetupRecipeExchange(rabbitmq)
	assert.NoError(t, err)

	cfg, err := loadConfig("")
	assert.NoError(t, err)
	cfg.RateLimitEnabled = false

	deps := &testDeps{
		generator: new(mockGenerator),
		store:     new(mockStore),
		limiter:   new(mockLimiter),
	}

	cache := common.NewCache(userservice.UserCacheTime, userservice.UserCacheTime)
	tokens := userservice.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	app := &application{
		config:          cfg,
		logger:          logger,
		userService:     userservice.NewUserService(db, rabbitmq, cache, tokens, logger),
		videoService:    videoservice.NewVideoService(db),
		blogService:     blogservice.NewBlogService(db),
		commentService:  commentservice.NewCommentService(db),
		reactionService: reactionservice.NewReactionService(db),
		recipeService:   recipeservice.NewRecipeService(db, deps.generator, rabbitmq, logger, time.Second),
		mediaService:    mediaservice.NewMediaService(deps.store, logger),
		mailService:     mailservice.NewMailService(rabbitmq, mailservice.MailConfig{Host: "localhost", Port: 1025}, logger),
		limiter:         deps.limiter,
		broker:          rabbitmq,
	}

	return app, db, deps
}

// testServer is one client session against a shared httptest server. The
// session cookie travels in the client's jar.
type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return newSession(t, ts)
}

func newSession(t *testing.T, ts *httptest.Server) *testServer {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	client := *ts.Client()
	client.Jar = jar

	return &testServer{Server: ts, client: &client}
}

// session opens another client session against the same server.
func (ts *testServer) session(t *testing.T) *testServer {
	return newSession(t, ts.Server)
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func (ts *testServer) do(t *testing.T, method, path string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, payload)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil)
}

func (ts *testServer) put(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, payload)
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, nil)
}

// register creates an account and keeps its session cookie. It returns the user id.
func (ts *testServer) register(t *testing.T, name, email string) int {
	status, _, body := ts.post(t, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "pa55word!",
	})
	if status != http.StatusCreated {
		t.Fatalf("could not register %s: %d %v", email, status, body)
	}

	user := body["user"].(map[string]any)
	return int(user["id"].(float64))
}

func idOf(t *testing.T, body envelope, key string) int {
	t.Helper()

	item, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("response has no %q object: %v", key, body)
	}
	return int(item["id"].(float64))
}
