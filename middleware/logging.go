package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Campos con datos personales del paciente que no se escriben en los logs
var camposSensibles = []string{"cedula", "cedula_profesional", "correo", "telefono", "direccion"}

const maxBody = 1000

// LoggingMiddleware registra cada petición HTTP en el logger dado
func LoggingMiddleware(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continuar con la petición
		err := c.Next()
		if err != nil {
			// Dejar que el ErrorHandler escriba el status antes de registrarlo
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		evento := logger.WithLevel(determineLogLevel(status)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", clientIP(c))

		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			evento = evento.Str("request_id", id)
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			evento = evento.Str("query", q)
		}
		// Solo el body de los métodos que lo llevan
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut || c.Method() == fiber.MethodPatch {
			if body := c.Body(); len(body) > 0 {
				evento = evento.Str("body", filterSensitiveData(string(body)))
			}
		}
		if err != nil {
			evento = evento.Err(err)
		}
		evento.Msg("petición HTTP")

		// El error ya fue atendido por el ErrorHandler
		return nil
	}
}

// clientIP obtiene la IP real del cliente
func clientIP(c *fiber.Ctx) string {
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}

// filterSensitiveData oculta los datos personales del body
func filterSensitiveData(body string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		// Si no es JSON válido, retornar truncado
		return truncar(body)
	}

	for _, field := range camposSensibles {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	return truncar(string(filteredJSON))
}

func truncar(s string) string {
	if len(s) > maxBody {
		return s[:maxBody] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
