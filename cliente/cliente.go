// Package cliente consume la API REST de la clínica.
package cliente

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/models"
	"github.com/rs/zerolog"
)

var (
	// ErrConexion indica que el servidor no respondió
	ErrConexion = errors.New("error de conexión con el servidor")
	// ErrDuplicado lo cumple una respuesta 400 sin errores por campo
	ErrDuplicado = errors.New("registro duplicado")
)

// ErrorRespuesta es una respuesta HTTP con status de error
type ErrorRespuesta struct {
	Status  int
	Mensaje string
	Errores map[string]string
}

func (e *ErrorRespuesta) Error() string {
	if e.Mensaje == "" {
		return fmt.Sprintf("respuesta HTTP %d", e.Status)
	}
	return fmt.Sprintf("respuesta HTTP %d: %s", e.Status, e.Mensaje)
}

// Is permite errors.Is(err, ErrDuplicado) sobre un 400. Un 400 con errores
// por campo es una validación del servidor, no un duplicado.
func (e *ErrorRespuesta) Is(target error) bool {
	return target == ErrDuplicado && e.Status == fiber.StatusBadRequest && len(e.Errores) == 0
}

type cuerpoError struct {
	Message string            `json:"message"`
	Errores map[string]string `json:"errores"`
}

type Cliente struct {
	base    string
	timeout time.Duration
	logger  zerolog.Logger
}

// New crea un cliente para la URL base, por ejemplo http://localhost:3000
func New(base string, timeout time.Duration, logger zerolog.Logger) *Cliente {
	return &Cliente{base: base, timeout: timeout, logger: logger}
}

// plazo usa el menor entre el timeout del cliente y el deadline del contexto
func (c *Cliente) plazo(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	plazo := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if restante := time.Until(deadline); plazo <= 0 || restante < plazo {
			plazo = restante
		}
	}
	return plazo, nil
}

func (c *Cliente) enviar(ctx context.Context, agent *fiber.Agent, destino interface{}) error {
	plazo, err := c.plazo(ctx)
	if err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}
	if plazo > 0 {
		agent.Timeout(plazo)
	}
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrConexion, errs[0])
	}

	if code >= fiber.StatusBadRequest {
		var cuerpo cuerpoError
		_ = json.Unmarshal(body, &cuerpo)
		return &ErrorRespuesta{Status: code, Mensaje: cuerpo.Message, Errores: cuerpo.Errores}
	}

	if destino == nil {
		return nil
	}
	if err := json.Unmarshal(body, destino); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}

func listar[T any](ctx context.Context, c *Cliente, ruta string, query url.Values) ([]T, error) {
	agent := fiber.Get(c.base + ruta)
	if len(query) > 0 {
		agent.QueryString(query.Encode())
	}
	var lista []T
	if err := c.enviar(ctx, agent, &lista); err != nil {
		c.logger.Debug().Err(err).Str("ruta", ruta).Msg("error al listar")
		return nil, err
	}
	if lista == nil {
		lista = []T{}
	}
	return lista, nil
}

func crear[T, R any](ctx context.Context, c *Cliente, ruta string, cuerpo T) (R, error) {
	var creado R
	agent := fiber.Post(c.base + ruta).JSON(cuerpo)
	if err := c.enviar(ctx, agent, &creado); err != nil {
		c.logger.Debug().Err(err).Str("ruta", ruta).Msg("error al crear")
		return creado, err
	}
	return creado, nil
}

func (c *Cliente) ListarConsultas(ctx context.Context, filtros estadisticas.Filtros) ([]models.Consulta, error) {
	query := url.Values{}
	for clave, valor := range map[string]string{
		"paciente":    filtros.Paciente,
		"medico":      filtros.Medico,
		"estado":      filtros.Estado,
		"diagnostico": filtros.Diagnostico,
	} {
		if valor != "" {
			query.Set(clave, valor)
		}
	}
	return listar[models.Consulta](ctx, c, "/api/consultas/", query)
}

func (c *Cliente) CrearConsulta(ctx context.Context, nueva models.NuevaConsulta) (models.Consulta, error) {
	return crear[models.NuevaConsulta, models.Consulta](ctx, c, "/api/consultas/", nueva)
}

func (c *Cliente) ListarPacientes(ctx context.Context) ([]models.Paciente, error) {
	return listar[models.Paciente](ctx, c, "/api/pacientes/", nil)
}

func (c *Cliente) CrearPaciente(ctx context.Context, p models.Paciente) (models.Paciente, error) {
	return crear[models.Paciente, models.Paciente](ctx, c, "/api/pacientes/", p)
}

func (c *Cliente) ListarMedicos(ctx context.Context) ([]models.Medico, error) {
	return listar[models.Medico](ctx, c, "/api/medicos/", nil)
}

func (c *Cliente) CrearMedico(ctx context.Context, m models.Medico) (models.Medico, error) {
	return crear[models.Medico, models.Medico](ctx, c, "/api/medicos/", m)
}

func (c *Cliente) ListarEspecialidades(ctx context.Context) ([]models.Especialidad, error) {
	return listar[models.Especialidad](ctx, c, "/api/especialidades/", nil)
}

func (c *Cliente) CrearEspecialidad(ctx context.Context, e models.Especialidad) (models.Especialidad, error) {
	return crear[models.Especialidad, models.Especialidad](ctx, c, "/api/especialidades/", e)
}

func (c *Cliente) ListarDiagnosticos(ctx context.Context) ([]models.Opcion, error) {
	return listar[models.Opcion](ctx, c, "/api/diagnosticos", nil)
}

// Estadisticas pide al servidor los indicadores calculados
func (c *Cliente) Estadisticas(ctx context.Context) (estadisticas.Estadisticas, error) {
	var est estadisticas.Estadisticas
	err := c.enviar(ctx, fiber.Get(c.base+"/api/consultas/estadisticas"), &est)
	return est, err
}
