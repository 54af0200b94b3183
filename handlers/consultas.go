package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
)

const toleranciaFecha = 30 * time.Second

// ObtenerConsultas lista las consultas, filtradas por los parámetros de la query
func (h *Handler) ObtenerConsultas(c *fiber.Ctx) error {
	var filtros estadisticas.Filtros
	if err := c.QueryParser(&filtros); err != nil {
		return responderError(c, fiber.StatusBadRequest, "Parámetros de búsqueda inválidos", nil)
	}

	consultas, err := h.repo.ListarConsultas(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	if filtros.Vacio() {
		return c.JSON(consultas)
	}

	// El filtro por médico usa el nombre actual de la lista de médicos
	medicos, err := h.repo.ListarMedicos(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(estadisticas.Filtrar(consultas, medicos, filtros))
}

// CrearConsulta agenda una nueva consulta médica
func (h *Handler) CrearConsulta(c *fiber.Ctx) error {
	var nueva models.NuevaConsulta
	if err := c.BodyParser(&nueva); err != nil {
		return responderError(c, fiber.StatusBadRequest, msgDatosInvalidos, nil)
	}

	// se aceptan fechas hasta toleranciaFecha en el pasado
	if errores := validacion.ValidarConsulta(nueva, h.ahora().Add(-toleranciaFecha)); !errores.Vacio() {
		return responderError(c, fiber.StatusBadRequest, "Datos de la consulta inválidos", errores)
	}

	consulta, err := h.repo.CrearConsulta(c.UserContext(), nueva)
	if err != nil {
		return h.responderErrorRepositorio(c, err, "Ya existe una consulta con estos datos")
	}

	h.logger.Info().Int("consulta_id", consulta.ID).Int("medico_id", consulta.Medico.ID).Msg("consulta creada")
	h.publicar(c, events.ConsultaCreada, consulta.ID, consulta)
	return c.Status(fiber.StatusCreated).JSON(consulta)
}

// ObtenerDiagnosticos devuelve el catálogo de diagnósticos predefinidos
func (h *Handler) ObtenerDiagnosticos(c *fiber.Ctx) error {
	return c.JSON(models.DiagnosticosPredefinidos)
}

// ObtenerEstados devuelve los estados posibles de una consulta
func (h *Handler) ObtenerEstados(c *fiber.Ctx) error {
	return c.JSON(models.EstadosConsulta)
}
