package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{testSecret}
	}
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

func requestWithCookie(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secrets", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "sid", "token-value"))

	got, err := m.GetSigned(requestWithCookie(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestSignedTamperDetection(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "sid", "token-value"))

	raw := w.Result().Cookies()[0]
	parts := strings.SplitN(raw.Value, "|", 2)
	require.Len(t, parts, 2)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: parts[0] + "|forged-signature"})

	_, err := m.GetSigned(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestEncryptedRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "sid", "secret-session-token"))

	// Cookie value is opaque
	assert.NotContains(t, w.Result().Cookies()[0].Value, "secret-session-token")

	got, err := m.GetEncrypted(requestWithCookie(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "secret-session-token", got)
}

func TestEncryptedKeyRotation(t *testing.T) {
	t.Parallel()

	oldSecret := "fedcba9876543210fedcba9876543210"
	oldMgr := newManager(t, oldSecret)

	w := httptest.NewRecorder()
	require.NoError(t, oldMgr.SetEncrypted(w, "sid", "value"))

	// New manager rotated to a fresh primary key, old key retained.
	newMgr := newManager(t, testSecret, oldSecret)

	got, err := newMgr.GetEncrypted(requestWithCookie(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestGetMissingCookie(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Get(r, "absent")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
