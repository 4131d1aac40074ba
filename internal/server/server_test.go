package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/config"
)

type staticStatus struct{ payload any }

func (s staticStatus) Status() any { return s.payload }

func writeOutputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts", "hello"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "hello", "index.html"), []byte("<h1>hello</h1>"), 0o644))
	return dir
}

func TestServerServesSiteAtRootBase(t *testing.T) {
	dir := writeOutputDir(t)
	site := config.ResolveSite(config.SiteConfig{URL: "https://flashblaze.xyz", Base: "/", ProdBase: "/astro-theme-terminal/"}, "")
	h := New(":0", dir, site).Handler()

	for path, want := range map[string]string{
		"/":             "<h1>home</h1>",
		"/posts/hello/": "<h1>hello</h1>",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String(), path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerServesSiteUnderProductionBase(t *testing.T) {
	dir := writeOutputDir(t)
	site := config.ResolveSite(config.SiteConfig{URL: "https://flashblaze.xyz", Base: "/", ProdBase: "/astro-theme-terminal/"}, "production")
	h := New(":0", dir, site).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astro-theme-terminal/posts/hello/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>hello</h1>", rec.Body.String())

	// Bare root redirects into the base prefix.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/astro-theme-terminal/", rec.Header().Get("Location"))
}

func TestServerHealthz(t *testing.T) {
	site := config.ResolveSite(config.SiteConfig{URL: "https://flashblaze.xyz"}, "")
	h := New(":0", t.TempDir(), site).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestServerStatus(t *testing.T) {
	site := config.ResolveSite(config.SiteConfig{URL: "https://flashblaze.xyz"}, "")

	t.Run("default payload", func(t *testing.T) {
		h := New(":0", t.TempDir(), site).Handler()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "serving", got["status"])
	})

	t.Run("custom provider", func(t *testing.T) {
		h := New(":0", t.TempDir(), site,
			WithStatusProvider(staticStatus{payload: map[string]int{"builds": 7}})).Handler()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 7, got["builds"])
	})
}
