package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
)

func (h *Handler) ObtenerEspecialidades(c *fiber.Ctx) error {
	especialidades, err := h.repo.ListarEspecialidades(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(especialidades)
}

// CrearEspecialidad registra una especialidad con nombre único
func (h *Handler) CrearEspecialidad(c *fiber.Ctx) error {
	var esp models.Especialidad
	if err := c.BodyParser(&esp); err != nil {
		return responderError(c, fiber.StatusBadRequest, msgDatosInvalidos, nil)
	}

	existentes, err := h.repo.ListarEspecialidades(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	nombre, err := validacion.ValidarEspecialidad(esp.Nombre, existentes)
	if err != nil {
		if errors.Is(err, validacion.ErrEspecialidadDuplicada) {
			return responderError(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		return responderError(c, fiber.StatusBadRequest, err.Error(), validacion.Errores{"nombre": err.Error()})
	}

	// El índice único resuelve la carrera entre dos altas simultáneas
	esp = models.Especialidad{Nombre: nombre}
	if err := h.repo.CrearEspecialidad(c.UserContext(), &esp); err != nil {
		return h.responderErrorRepositorio(c, err, validacion.ErrEspecialidadDuplicada.Error())
	}

	h.logger.Info().Int("especialidad_id", esp.ID).Str("nombre", esp.Nombre).Msg("especialidad creada")
	h.publicar(c, events.EspecialidadCreada, esp.ID, esp)
	return c.Status(fiber.StatusCreated).JSON(esp)
}
