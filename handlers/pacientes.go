package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
)

// ObtenerPacientes obtiene todos los pacientes
func (h *Handler) ObtenerPacientes(c *fiber.Ctx) error {
	pacientes, err := h.repo.ListarPacientes(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(pacientes)
}

// CrearPaciente registra un paciente; la cédula es única
func (h *Handler) CrearPaciente(c *fiber.Ctx) error {
	var paciente models.Paciente
	if err := c.BodyParser(&paciente); err != nil {
		return responderError(c, fiber.StatusBadRequest, msgDatosInvalidos, nil)
	}
	paciente.ID = 0
	paciente.Nombre = strings.TrimSpace(paciente.Nombre)
	paciente.Correo = strings.TrimSpace(paciente.Correo)

	if errores := validacion.ValidarPaciente(paciente); !errores.Vacio() {
		return responderError(c, fiber.StatusBadRequest, "Datos del paciente inválidos", errores)
	}

	if err := h.repo.CrearPaciente(c.UserContext(), &paciente); err != nil {
		return h.responderErrorRepositorio(c, err, "Ya existe un paciente con esa cédula")
	}

	// Sin datos personales en el log
	h.logger.Info().Int("paciente_id", paciente.ID).Msg("paciente creado")
	h.publicar(c, events.PacienteCreado, paciente.ID, paciente)
	return c.Status(fiber.StatusCreated).JSON(paciente)
}
