package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lookhub/internal/app"
	"lookhub/internal/broker"
	"lookhub/internal/config"
	"lookhub/internal/logger"
	"lookhub/internal/services"
	"lookhub/internal/storage"
)

const (
	TestAPIKey        = "test-api-key"
	TestAdminUsername = "admin"
	TestAdminPassword = "admin-password"
	TestJWTSecret     = "my_super_secret_key_for_tests_12345"
)

// TestServer is the whole HTTP app on top of SQLite, miniredis and a temp image dir.
type TestServer struct {
	Server  *httptest.Server
	DB      *gorm.DB
	Redis   *miniredis.Miniredis
	Broker  *broker.Broker
	Storage storage.Storage
	Config  *config.Config
}

// ServerOption tweaks the config or infrastructure before the router is built.
type ServerOption func(cfg *config.Config, infra *app.Infrastructure)

// WithoutBroker starts the app as if Redis were unreachable.
func WithoutBroker() ServerOption {
	return func(cfg *config.Config, infra *app.Infrastructure) { infra.Broker = nil }
}

// WithProducts sets the product page importer used by POST /api/clothes/ai.
func WithProducts(p services.ProductFetcher) ServerOption {
	return func(cfg *config.Config, infra *app.Infrastructure) { infra.Products = p }
}

func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()
	logger.Init("test")

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Server.APIHost = "http://lookhub.test"
	cfg.Auth.APIKey = TestAPIKey
	cfg.Auth.JWTSecret = TestJWTSecret
	cfg.Auth.AdminUsername = TestAdminUsername
	cfg.Auth.AdminPassword = TestAdminPassword
	cfg.Storage.BasePath = t.TempDir()
	cfg.Upload.MaxImageSide = 64

	db := NewTestDB(t)

	mr := miniredis.RunT(t)
	b := broker.New(broker.Config{Addr: mr.Addr()})
	t.Cleanup(func() { b.Close() })

	store, err := storage.NewLocalStorage(storage.Config{BasePath: cfg.Storage.BasePath})
	require.NoError(t, err)

	infra := &app.Infrastructure{Storage: store, Broker: b}
	for _, opt := range opts {
		opt(cfg, infra)
	}

	server := httptest.NewServer(app.SetupRouter(cfg, db, infra))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		DB:      db,
		Redis:   mr,
		Broker:  b,
		Storage: store,
		Config:  cfg,
	}
}

// SendRequest sends body as JSON and returns the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token)
}

// SendForm posts url-encoded form values.
func (ts *TestServer) SendForm(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(t, req, "")
}

// UploadFiles posts files under one multipart field.
func (ts *TestServer) UploadFiles(t *testing.T, path, token, field string, files map[string][]byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, req, token)
}

// APIToken exchanges the test API key for a bearer token.
func (ts *TestServer) APIToken(t *testing.T) string {
	t.Helper()
	res, body := ts.SendForm(t, "/api/token", url.Values{"api_key": {TestAPIKey}})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

// NoRedirectClient returns a client that reports redirects instead of following them.
func (ts *TestServer) NoRedirectClient() *http.Client {
	client := *ts.Server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string) (*http.Response, string) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "ошибка чтения тела ответа")
	return res, string(resBody)
}
