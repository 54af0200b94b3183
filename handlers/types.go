package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/repositorio"
	"github.com/lizet96/clinica-backend/validacion"
	"github.com/rs/zerolog"
)

// ErrorResponse es el cuerpo de toda respuesta de error
type ErrorResponse struct {
	Error   bool               `json:"error"`
	Message string             `json:"message"`
	Errores validacion.Errores `json:"errores,omitempty"`
}

// Handler agrupa las dependencias de los endpoints
type Handler struct {
	repo       repositorio.Repositorio
	publicador events.Publicador
	logger     zerolog.Logger
	ahora      func() time.Time
}

// New crea los handlers. Sin publicador los eventos se descartan.
func New(repo repositorio.Repositorio, publicador events.Publicador, logger zerolog.Logger) *Handler {
	if publicador == nil {
		publicador = events.Nulo{}
	}
	return &Handler{repo: repo, publicador: publicador, logger: logger, ahora: time.Now}
}

func responderError(c *fiber.Ctx, status int, mensaje string, errores validacion.Errores) error {
	return c.Status(status).JSON(ErrorResponse{Error: true, Message: mensaje, Errores: errores})
}

// responderErrorRepositorio traduce los errores del repositorio. Los errores
// de datos (unicidad, referencia, valor) son 400; el resto es 500.
func (h *Handler) responderErrorRepositorio(c *fiber.Ctx, err error, duplicado string) error {
	switch {
	case errors.Is(err, repositorio.ErrDuplicado):
		return responderError(c, fiber.StatusBadRequest, duplicado, nil)
	case errors.Is(err, repositorio.ErrReferenciaInvalida):
		return responderError(c, fiber.StatusBadRequest, "El paciente, médico o especialidad indicado no existe.", nil)
	case errors.Is(err, repositorio.ErrValorInvalido):
		return responderError(c, fiber.StatusBadRequest, msgDatosInvalidos, nil)
	default:
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("error de repositorio")
		return responderError(c, fiber.StatusInternalServerError, "Error interno del servidor", nil)
	}
}

// publicar envía el evento sin afectar la respuesta si Kafka falla
func (h *Handler) publicar(c *fiber.Ctx, tipo string, id int, datos interface{}) {
	if err := h.publicador.Publicar(c.UserContext(), events.NuevoEvento(tipo, id, datos)); err != nil {
		h.logger.Warn().Err(err).Str("tipo", tipo).Int("id", id).Msg("no se pudo publicar el evento")
	}
}

const msgDatosInvalidos = "Datos inválidos"
