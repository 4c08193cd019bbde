package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// ForwardedHeaders extracts the request headers the identity gateway needs to
// resolve the caller's session.
func ForwardedHeaders(c *fiber.Ctx) http.Header {
	hdr := make(http.Header)
	if cookie := c.Get("Cookie"); cookie != "" {
		hdr.Set("Cookie", cookie)
	}
	if auth := c.Get("Authorization"); auth != "" {
		hdr.Set("Authorization", auth)
	}
	return hdr
}
