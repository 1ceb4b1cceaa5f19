package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/catalog"
	"github.com/vk/aplab/internal/dispatch"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/metrics"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	server   *Server
	sessions *session.Manager
}

// newFixture registers a page for every catalog topic. Each page echoes its
// locator and counts presses of a "More" button in the session.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	reg := registry.New(cat)
	for _, e := range reg.Entries() {
		loc := e.Locator
		reg.RegisterPageFunc(loc, func(pc *page.Context) error {
			pc.Title(loc.Leaf())
			n, err := pc.Session().Int("presses", 0)
			if err != nil {
				return err
			}
			if pc.Button("More") {
				n++
				if err := pc.Session().SetInt("presses", n); err != nil {
					return err
				}
			}
			pc.Text("presses=" + strings.Repeat("|", n))
			return nil
		})
	}

	promReg := prometheus.NewRegistry()
	bundle, err := i18n.Load(i18n.DefaultLocale)
	require.NoError(t, err)
	sessions := session.NewManager(0)
	srv, err := New(Options{Title: "APlab", Icon: "🔬", Layout: "wide"}, Deps{
		Dispatcher: dispatch.New(reg, dispatch.WithMetrics(metrics.New(promReg))),
		Sessions:   sessions,
		Bundle:     bundle,
		Gatherer:   promReg,
	})
	require.NoError(t, err)
	return &fixture{server: srv, sessions: sessions}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestTopic_EveryRegisteredPairRenders(t *testing.T) {
	f := newFixture(t)
	reg := f.server.dispatcher.Registry()

	for _, e := range reg.Entries() {
		t.Run(e.Topic, func(t *testing.T) {
			rec := f.do(httptest.NewRequest(http.MethodGet, topicURL(e.Category, e.Topic, "en"), nil))
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.NotContains(t, body, "aplab-error-panel")
			assert.Contains(t, body, e.Locator.Leaf())
		})
	}
}

func TestTopic_DefaultSelection(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	def := f.server.dispatcher.Registry().Default()
	assert.Contains(t, rec.Body.String(), def.Locator.Leaf())
	assert.NotContains(t, rec.Body.String(), "aplab-error-panel")
}

func TestTopic_UnknownSelectionShowsPanel(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, topicURL("9. Nonexistent", "x", "en"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "aplab-error-panel")
	assert.Contains(t, body, "Error loading topic")
	assert.Contains(t, body, "9. Nonexistent")
}

func TestTopic_SetsSessionCookie(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	var sessionID string
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			sessionID = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, sessionID)
	_, ok := f.sessions.Get(sessionID)
	assert.True(t, ok)
	assert.Contains(t, rec.Body.String(), `data-session="`+sessionID+`"`)
}

func TestTopic_ButtonClickUpdatesSession(t *testing.T) {
	f := newFixture(t)
	def := f.server.dispatcher.Registry().Default()

	post := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		form := url.Values{
			"category": {def.Category},
			"topic":    {def.Topic},
			"_clicked": {"more"},
		}
		req := httptest.NewRequest(http.MethodPost, "/topic?_partial=1", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		return f.do(req)
	}

	first := post(nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "presses=|<")
	assert.NotContains(t, first.Body.String(), "<html")

	var cookie *http.Cookie
	for _, c := range first.Result().Cookies() {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	second := post(cookie)
	assert.Contains(t, second.Body.String(), "presses=||<")
}

func TestTopic_Locale(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/?lang=ru", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="ru">`)
	assert.Contains(t, rec.Body.String(), "Выберите Категорию")

	var langCookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == LangCookie {
			langCookie = c.Value
		}
	}
	assert.Equal(t, "ru", langCookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	assert.Contains(t, f.do(req).Body.String(), `<html lang="ru">`)

	req = httptest.NewRequest(http.MethodGet, "/?lang=xx-invalid-", nil)
	assert.Contains(t, f.do(req).Body.String(), `<html lang="en">`)
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/catalog?lang=en", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Locale     string            `json:"locale"`
		Categories []catalogCategory `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	reg := f.server.dispatcher.Registry()
	assert.Equal(t, "en", got.Locale)
	require.Len(t, got.Categories, len(reg.Categories()))
	for i, category := range reg.Categories() {
		assert.Equal(t, category, got.Categories[i].Label)
		topics, err := reg.Topics(category)
		require.NoError(t, err)
		require.Len(t, got.Categories[i].Topics, len(topics))
		for j, topic := range topics {
			assert.Equal(t, topic, got.Categories[i].Topics[j].Label)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aplab_dispatch_renders_total")
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/static/aplab.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLiveRouteMountedOnlyWhenEnabled(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/socket.io/?EIO=4&transport=polling", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, f.server.opts.Live)
}
