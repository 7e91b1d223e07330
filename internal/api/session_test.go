package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haedavja/hahahahgo/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func sessionCookieValue(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == constants.CookieSessionName {
			return ck.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}

func TestSessionCookieRoundTrip(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	require.NoError(t, issueSessionCookie(c, "drifter@example.com", "Drifter"))

	claims, err := parseSession(sessionCookieValue(t, w))
	require.NoError(t, err)
	require.Equal(t, "drifter@example.com", claims.Sub)
	require.Equal(t, "Drifter", claims.Name)
}

func TestSessionParseRejectsTamperedToken(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, issueSessionCookie(c, "drifter@example.com", ""))

	token := sessionCookieValue(t, w)
	_, err := parseSession(token + "x")
	require.ErrorIs(t, err, errBadSession)

	_, err = parseSession("not.a.token")
	require.ErrorIs(t, err, errBadSession)
}
