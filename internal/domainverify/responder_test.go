package domainverify

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apple-developer-merchantid-domain-association")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestResponder_ServesExactBytes(t *testing.T) {
	content := []byte("7B2270737049\r\n6E76616C6964\x00\xff trailing space ")
	rs := NewResponder(Config{FilePath: writeFile(t, content)}, nil)

	w := httptest.NewRecorder()
	rs.ServeHTTP(w, httptest.NewRequest(http.MethodGet, WellKnownPath, nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, content, w.Body.Bytes())
	require.Equal(t, DefaultContentType, w.Header().Get("Content-Type"))
}

func TestResponder_ConfiguredContentType(t *testing.T) {
	rs := NewResponder(Config{FilePath: writeFile(t, []byte("abc")), ContentType: "text/plain"}, nil)

	w := httptest.NewRecorder()
	rs.ServeHTTP(w, httptest.NewRequest(http.MethodGet, WellKnownPath, nil))
	require.Equal(t, "text/plain", w.Header().Get("Content-Type"))
}

func TestResponder_MissingFile(t *testing.T) {
	rs := NewResponder(Config{FilePath: filepath.Join(t.TempDir(), "nope")}, nil)

	w := httptest.NewRecorder()
	rs.ServeHTTP(w, httptest.NewRequest(http.MethodGet, WellKnownPath, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponder_Audit(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rs := NewResponder(Config{FilePath: writeFile(t, []byte("abc")), Audit: true}, zap.New(core).Sugar())

	req := httptest.NewRequest(http.MethodGet, WellKnownPath, nil)
	req.Header.Set("User-Agent", "AppleBot")
	w := httptest.NewRecorder()
	rs.ServeHTTP(w, req)

	require.Equal(t, "abc", w.Body.String())

	entries := logs.FilterMessage("domain association served").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, http.MethodGet, fields["method"])
	require.Equal(t, "AppleBot", fields["User-Agent"])
	require.NotEmpty(t, fields["audit_id"])
}

func TestResponder_AuditDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rs := NewResponder(Config{FilePath: writeFile(t, []byte("abc"))}, zap.New(core).Sugar())

	rs.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, WellKnownPath, nil))
	require.Zero(t, logs.FilterMessage("domain association served").Len())
}
