package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
)

func (h *Handler) ObtenerMedicos(c *fiber.Ctx) error {
	medicos, err := h.repo.ListarMedicos(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(medicos)
}

// CrearMedico registra un médico; la cédula profesional es única
func (h *Handler) CrearMedico(c *fiber.Ctx) error {
	var medico models.Medico
	if err := c.BodyParser(&medico); err != nil {
		return responderError(c, fiber.StatusBadRequest, msgDatosInvalidos, nil)
	}
	medico.ID = 0
	medico.EspecialidadNombre = ""
	medico.Nombre = strings.TrimSpace(medico.Nombre)
	medico.CedulaProfesional = strings.TrimSpace(medico.CedulaProfesional)

	if errores := validacion.ValidarMedico(medico); !errores.Vacio() {
		return responderError(c, fiber.StatusBadRequest, "Datos del médico inválidos", errores)
	}

	if err := h.repo.CrearMedico(c.UserContext(), &medico); err != nil {
		return h.responderErrorRepositorio(c, err, "La cédula profesional ya está registrada")
	}

	h.logger.Info().Int("medico_id", medico.ID).Int("especialidad", medico.Especialidad).Msg("médico creado")
	h.publicar(c, events.MedicoCreado, medico.ID, medico)
	return c.Status(fiber.StatusCreated).JSON(medico)
}
