package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerApp(kv KV) (*fiber.App, *Manager) {
	manager := NewManager(kv, NewKeyer("web:session:", "secret"), ManagerConfig{
		CookieName: "sid",
		TTL:        time.Hour,
	}, nil)

	app := fiber.New()
	app.Use(manager.Middleware())
	app.Post("/set", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return TokenStoreFromContext(ctx).Set(ctx, c.Query("token"))
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		token, _ := TokenStoreFromContext(c.UserContext()).Get(c.UserContext())
		return c.SendString(token)
	})
	return app, manager
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "sid" {
			return cookie
		}
	}
	t.Fatal("sid cookie not set")
	return nil
}

func TestManager_MintsCookie(t *testing.T) {
	app, _ := newManagerApp(NewMemoryKV())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/get", nil))
	require.NoError(t, err)

	cookie := sessionCookie(t, resp)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestManager_ReusesSessionAcrossRequests(t *testing.T) {
	kv := NewMemoryKV()
	app, manager := newManagerApp(kv)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/set?token=abc", nil))
	require.NoError(t, err)
	cookie := sessionCookie(t, resp)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc", string(body))
	assert.Equal(t, cookie.Value, sessionCookie(t, resp).Value)

	token, ok := manager.Store(cookie.Value).Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestManager_ReplacesForgedCookie(t *testing.T) {
	app, _ := newManagerApp(NewMemoryKV())

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-uuid"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.NotEqual(t, "not-a-uuid", sessionCookie(t, resp).Value)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	app, _ := newManagerApp(NewMemoryKV())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/set?token=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/get", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))
}

func TestRunJanitor_StopsOnCancel(t *testing.T) {
	kv, clock := newClockedKV()
	require.NoError(t, kv.Save(context.Background(), "k", "v", time.Millisecond))
	clock.now = clock.now.Add(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, kv, 5*time.Millisecond, nil)
		close(done)
	}()

	require.Eventually(t, func() bool { return kv.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
