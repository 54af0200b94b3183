package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/lizet96/clinica-backend/handlers"
	"github.com/lizet96/clinica-backend/middleware"
	"github.com/rs/zerolog"
)

// Opciones de los middlewares globales
type Opciones struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimit       int
}

func (o Opciones) conDefaults() Opciones {
	if o.RateLimitMax <= 0 {
		o.RateLimitMax = 100
	}
	if o.RateLimitWindow <= 0 {
		o.RateLimitWindow = time.Minute
	}
	if o.BodyLimit <= 0 {
		o.BodyLimit = 1024 * 1024
	}
	return o
}

// NewApp crea la instancia de Fiber con el manejador de errores y todas las rutas
func NewApp(h *handlers.Handler, opts Opciones, logger zerolog.Logger) *fiber.App {
	opts = opts.conDefaults()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName:   "Clinica API v1.0.0",
		BodyLimit: opts.BodyLimit,
	})

	SetupRoutes(app, h, opts, logger)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   true,
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})
	return app
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, h *handlers.Handler, opts Opciones, logger zerolog.Logger) {
	// Middleware global
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Clinica API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api", middleware.CreateRateLimiter(middleware.NuevoRateLimit(opts.RateLimitMax, opts.RateLimitWindow)))
	crear := middleware.BodySizeLimit(opts.BodyLimit)

	// --- RUTAS DE CONSULTAS ---
	consultas := api.Group("/consultas")
	consultas.Get("/", h.ObtenerConsultas)
	consultas.Post("/", crear, h.CrearConsulta)
	consultas.Get("/estadisticas", h.ObtenerEstadisticas)
	consultas.Get("/estados", h.ObtenerEstados)

	// --- RUTAS DE PACIENTES ---
	pacientes := api.Group("/pacientes")
	pacientes.Get("/", h.ObtenerPacientes)
	pacientes.Post("/", crear, h.CrearPaciente)

	// --- RUTAS DE MÉDICOS ---
	medicos := api.Group("/medicos")
	medicos.Get("/", h.ObtenerMedicos)
	medicos.Post("/", crear, h.CrearMedico)

	// --- RUTAS DE ESPECIALIDADES ---
	especialidades := api.Group("/especialidades")
	especialidades.Get("/", h.ObtenerEspecialidades)
	especialidades.Post("/", crear, h.CrearEspecialidad)

	api.Get("/diagnosticos", h.ObtenerDiagnosticos)

	// --- RUTAS DE REPORTES ---
	api.Get("/reportes/consultas", h.GenerarReporteConsultas)
}
