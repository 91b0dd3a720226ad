package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys para la IP del cliente y el ID de la petición en Fiber.
const (
	LocalClientIP  = "client_ip"
	LocalRequestID = "request_id"
)

// HeaderRequestID cabecera con el ID de la petición (se respeta si llega del proxy).
const HeaderRequestID = "X-Request-ID"

// FallbackClientIP se usa cuando el proxy no envía cabeceras de origen.
const FallbackClientIP = "127.0.0.1"

// ResolveClientIP primera entrada de X-Forwarded-For, si no X-Real-IP, si no 127.0.0.1.
func ResolveClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	return FallbackClientIP
}

// ClientIPMiddleware resuelve la IP del cliente desde las cabeceras del proxy y la deja en c.Locals.
func ClientIPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalClientIP, ResolveClientIP(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP")))
		return c.Next()
	}
}

// GetClientIP devuelve la IP del cliente (después de ClientIPMiddleware).
func GetClientIP(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalClientIP).(string); ok && s != "" {
		return s
	}
	return ResolveClientIP(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP"))
}

// RequestID asigna un ID a cada petición y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// GetRequestID devuelve el ID de la petición (después de RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
