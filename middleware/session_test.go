package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecrew/gateway"
)

type fakeSessionGateway struct {
	session *gateway.SessionData
	err     error
	calls   int
}

func (f *fakeSessionGateway) GetSession(ctx context.Context, hdr http.Header) (*gateway.SessionData, error) {
	f.calls++
	return f.session, f.err
}

func newProtectedApp(gw SessionGateway) *fiber.App {
	app := fiber.New()
	app.Get("/gated", Protected(gw, nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	return app
}

func TestProtectedWithoutToken(t *testing.T) {
	gw := &fakeSessionGateway{}
	app := newProtectedApp(gw)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, gw.calls, "gateway must not be consulted without a token")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Authentication required")
}

func TestProtectedWithBearerToken(t *testing.T) {
	gw := &fakeSessionGateway{
		session: &gateway.SessionData{
			Session: &gateway.Session{ID: "sess-1", UserID: "user-1", Token: "tok"},
			User:    &gateway.User{ID: "user-1", Email: "pat@acme.test"},
		},
	}
	app := newProtectedApp(gw)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer tok")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, gw.calls)
}

func TestProtectedWithSessionCookie(t *testing.T) {
	gw := &fakeSessionGateway{
		session: &gateway.SessionData{
			Session: &gateway.Session{ID: "sess-1", UserID: "user-1", Token: "tok"},
			User:    &gateway.User{ID: "user-1"},
		},
	}
	app := newProtectedApp(gw)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Cookie", "better-auth.session_token=tok")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedWithExpiredSession(t *testing.T) {
	gw := &fakeSessionGateway{session: nil}
	app := newProtectedApp(gw)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer stale")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWithMalformedAuthHeader(t *testing.T) {
	gw := &fakeSessionGateway{}
	app := newProtectedApp(gw)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "tok-without-scheme")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, gw.calls)
}
