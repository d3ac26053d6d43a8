package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"lascala/internal/cache"
	"lascala/internal/config"
	"lascala/internal/events"
	"lascala/internal/http/handlers"
	"lascala/internal/repos"
)

type testApp struct {
	app      *fiber.App
	db       *sqlx.DB
	events   *events.Recorder
	mediaDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repos.Setup(db, true))

	media := t.TempDir()
	rec := &events.Recorder{}
	app, err := handlers.NewApp(handlers.Options{
		DB: db,
		Config: config.Config{
			DBDriver:      "sqlite",
			MediaDir:      media,
			TemplatesDir:  "../../web/templates",
			Env:           "test",
			SellerFeeRate: "0.20",
			RateLimit:     1000,
		},
		Cache:  cache.NewMemory(time.Minute),
		Events: rec,
	})
	require.NoError(t, err)
	return &testApp{app: app, db: db, events: rec, mediaDir: media}
}

func (ta *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ta *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return ta.do(t, req)
}

// postForm sends form with the csrf token of the given session.
func (ta *testApp) postForm(t *testing.T, path string, s session, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", s.csrf)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range s.cookies() {
		req.AddCookie(c)
	}
	return ta.do(t, req)
}

type session struct {
	csrf string
	sid  string
}

func (s session) cookies() []*http.Cookie {
	out := []*http.Cookie{{Name: "csrf_", Value: s.csrf}}
	if s.sid != "" {
		out = append(out, &http.Cookie{Name: "sid", Value: s.sid})
	}
	return out
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// anonymous fetches a csrf token without signing in.
func (ta *testApp) anonymous(t *testing.T) session {
	t.Helper()
	resp := ta.get(t, "/signin")
	tok := cookieValue(resp, "csrf_")
	require.NotEmpty(t, tok, "csrf cookie")
	return session{csrf: tok}
}

// signin authenticates a seeded user and returns its session.
func (ta *testApp) signin(t *testing.T, email string) session {
	t.Helper()
	s := ta.anonymous(t)
	resp := ta.postForm(t, "/signin", s, url.Values{"email": {email}, "password": {"Passw0rd!"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	s.sid = cookieValue(resp, "sid")
	require.NotEmpty(t, s.sid, "sid cookie")
	return s
}
