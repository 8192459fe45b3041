package auth_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/avatargamer/go-auth"
)

func captureClientInfo(t *testing.T, headers map[string]string) auth.ClientInfo {
	t.Helper()

	var captured auth.ClientInfo

	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		captured = auth.ClientInfoFromRequest(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/probe", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return captured
}

func TestClientInfoFromRequest(t *testing.T) {
	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		info := captureClientInfo(t, map[string]string{
			fiber.HeaderXForwardedFor: "203.0.113.7, 10.0.0.1, 10.0.0.2",
			fiber.HeaderUserAgent:     "curl/8.0",
		})

		assert.Equal(t, "203.0.113.7", info.IP)
		assert.Equal(t, "curl/8.0", info.UserAgent)
	})

	t.Run("trims whitespace around the forwarded entry", func(t *testing.T) {
		info := captureClientInfo(t, map[string]string{
			fiber.HeaderXForwardedFor: "  203.0.113.7 ,10.0.0.1",
		})

		assert.Equal(t, "203.0.113.7", info.IP)
	})

	t.Run("falls back to the peer address without X-Forwarded-For", func(t *testing.T) {
		info := captureClientInfo(t, nil)

		assert.NotEmpty(t, info.IP)
	})

	t.Run("missing user agent is stored as a placeholder", func(t *testing.T) {
		info := captureClientInfo(t, nil)

		assert.Equal(t, "?", info.UserAgent)
	})

	t.Run("oversized values are truncated to their column bounds", func(t *testing.T) {
		info := captureClientInfo(t, map[string]string{
			fiber.HeaderXForwardedFor: strings.Repeat("1", 100),
			fiber.HeaderUserAgent:     strings.Repeat("a", 300),
		})

		assert.Len(t, info.IP, 45)
		assert.Len(t, info.UserAgent, 255)
	})
}
