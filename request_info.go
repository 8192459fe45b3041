package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// maxIPLength fits a full IPv6 textual address.
	maxIPLength        = 45
	maxUserAgentLength = 255
	// unknownUserAgent is stored when the client sent no User-Agent header.
	unknownUserAgent = "?"
)

// ClientInfo carries the request attributes recorded in the audit trail.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ClientInfoFromRequest extracts the originating IP and user agent from an
// inbound request. The first entry of an X-Forwarded-For chain wins over
// the peer address; both values are truncated to their column bounds.
func ClientInfoFromRequest(c *fiber.Ctx) ClientInfo {
	return ClientInfo{
		IP:        truncate(clientIP(c), maxIPLength),
		UserAgent: truncate(userAgent(c), maxUserAgentLength),
	}
}

func clientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); strings.TrimSpace(xff) != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return c.IP()
}

func userAgent(c *fiber.Ctx) string {
	ua := c.Get(fiber.HeaderUserAgent)
	if strings.TrimSpace(ua) == "" {
		return unknownUserAgent
	}
	return ua
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
