package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/models"
	"golang.org/x/sync/errgroup"
)

// datosReporte carga las tres colecciones que usan los reportes
func (h *Handler) datosReporte(c *fiber.Ctx) ([]models.Consulta, []models.Paciente, []models.Medico, error) {
	var (
		consultas []models.Consulta
		pacientes []models.Paciente
		medicos   []models.Medico
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		consultas, err = h.repo.ListarConsultas(ctx)
		return err
	})
	g.Go(func() (err error) {
		pacientes, err = h.repo.ListarPacientes(ctx)
		return err
	})
	g.Go(func() (err error) {
		medicos, err = h.repo.ListarMedicos(ctx)
		return err
	})
	err := g.Wait()
	return consultas, pacientes, medicos, err
}

// ObtenerEstadisticas calcula los indicadores sobre todas las consultas
func (h *Handler) ObtenerEstadisticas(c *fiber.Ctx) error {
	consultas, pacientes, medicos, err := h.datosReporte(c)
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(estadisticas.Calcular(consultas, pacientes, medicos))
}

// GenerarReporteConsultas genera el resumen del día y de la semana
func (h *Handler) GenerarReporteConsultas(c *fiber.Ctx) error {
	consultas, err := h.repo.ListarConsultas(c.UserContext())
	if err != nil {
		return h.responderErrorRepositorio(c, err, "")
	}
	return c.JSON(estadisticas.Resumir(consultas, h.ahora()))
}
