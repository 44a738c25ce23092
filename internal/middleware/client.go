package middleware

import (
	"strings"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDQuery  = "clientId"
	ClientIDLocal  = "clientID"
)

// EnsureClientID identifies the local client issuing the request, from the
// X-Client-ID header or the clientId query parameter.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDLocal) != nil {
			return c.Next()
		}

		clientID := strings.TrimSpace(c.Get(ClientIDHeader))
		if clientID == "" {
			clientID = strings.TrimSpace(c.Query(ClientIDQuery))
		}

		if clientID == "" {
			log.WithField("path", c.Path()).Debug("request without client id")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(ClientIDLocal, clientID)
		return c.Next()
	}
}

// ClientID returns the id stored by EnsureClientID.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClientIDLocal).(string)
	return id
}
