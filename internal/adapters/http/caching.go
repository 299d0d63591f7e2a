package http

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// cacheControlFor picks a Cache-Control value for a GET path.
func cacheControlFor(path string) string {
	switch {
	case path == "/health" || path == "/ready":
		return "no-cache"
	case path == "/metrics":
		return "no-cache"
	case path == "/sectores":
		return "public, max-age=3600" // fixed at process start
	case strings.HasPrefix(path, "/sectores/"):
		return "public, max-age=3600"
	case strings.HasPrefix(path, "/analisis/"):
		return "no-store" // counts follow every registration
	case strings.HasPrefix(path, "/animales"), path == "/usuarios":
		return "no-cache"
	}
	return ""
}

// CachingMiddleware sets Cache-Control on GET responses that do not set
// their own, and answers If-None-Match with 304 using a weak ETag of the
// body. Responses marked no-store get no ETag.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Method() != fiber.MethodGet {
			return nil
		}

		if string(c.Response().Header.Peek(fiber.HeaderCacheControl)) == "" {
			if cc := cacheControlFor(c.Path()); cc != "" {
				c.Set(fiber.HeaderCacheControl, cc)
			}
		}

		body := c.Response().Body()
		if c.Response().StatusCode() != fiber.StatusOK || len(body) == 0 ||
			strings.Contains(string(c.Response().Header.Peek(fiber.HeaderCacheControl)), "no-store") {
			return nil
		}

		h := sha256.Sum256(body)
		etag := `W/"` + hex.EncodeToString(h[:8]) + `"`
		c.Set(fiber.HeaderETag, etag)

		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().ResetBody()
		}
		return nil
	}
}
