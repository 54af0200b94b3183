package gestor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lizet96/clinica-backend/cliente"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	msgConsultaAgregada  = "Consulta agregada con éxito"
	msgConsultaDuplicada = "Error: Ya existe una consulta con estos datos"
	msgConsultaError     = "Error al agregar consulta"
)

// ConsultasAPI son las colecciones que usa el gestor de consultas
type ConsultasAPI interface {
	ListarConsultas(ctx context.Context, filtros estadisticas.Filtros) ([]models.Consulta, error)
	CrearConsulta(ctx context.Context, nueva models.NuevaConsulta) (models.Consulta, error)
	ListarPacientes(ctx context.Context) ([]models.Paciente, error)
	ListarMedicos(ctx context.Context) ([]models.Medico, error)
}

// BorradorConsulta es el formulario de una consulta nueva
type BorradorConsulta struct {
	models.NuevaConsulta
	Predefinido string `json:"diagnostico_predefinido,omitempty"`
}

// Consultas administra la lista de consultas, su formulario, los filtros y
// las estadísticas
type Consultas struct {
	api    ConsultasAPI
	logger zerolog.Logger
	ahora  func() time.Time

	mu        sync.Mutex
	consultas []models.Consulta
	pacientes []models.Paciente
	medicos   []models.Medico
	borrador  BorradorConsulta
	errores   validacion.Errores
	filtros   estadisticas.Filtros
	mensaje   Mensaje
}

func NuevoConsultas(api ConsultasAPI, logger zerolog.Logger) *Consultas {
	return &Consultas{
		api:       api,
		logger:    logger,
		ahora:     time.Now,
		consultas: []models.Consulta{},
		pacientes: []models.Paciente{},
		medicos:   []models.Medico{},
		errores:   validacion.Errores{},
	}
}

// Cargar trae consultas, pacientes y médicos en paralelo. Una carga fallida
// se registra y no impide las demás; se devuelve el primer error.
func (g *Consultas) Cargar(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error {
		consultas, err := g.api.ListarConsultas(ctx, estadisticas.Filtros{})
		if err != nil {
			g.logger.Error().Err(err).Msg("Error cargando consultas")
			return fmt.Errorf("cargar consultas: %w", err)
		}
		g.mu.Lock()
		g.consultas = consultas
		g.mu.Unlock()
		return nil
	})
	eg.Go(func() error {
		pacientes, err := g.api.ListarPacientes(ctx)
		if err != nil {
			g.logger.Error().Err(err).Msg("Error cargando pacientes")
			return fmt.Errorf("cargar pacientes: %w", err)
		}
		g.mu.Lock()
		g.pacientes = pacientes
		g.mu.Unlock()
		return nil
	})
	eg.Go(func() error {
		medicos, err := g.api.ListarMedicos(ctx)
		if err != nil {
			g.logger.Error().Err(err).Msg("Error cargando medicos")
			return fmt.Errorf("cargar médicos: %w", err)
		}
		g.mu.Lock()
		g.medicos = medicos
		g.mu.Unlock()
		return nil
	})
	return eg.Wait()
}

// Cambiar edita un campo del borrador. Un diagnóstico con caracteres no
// permitidos se rechaza y el borrador conserva el valor anterior.
func (g *Consultas) Cambiar(campo, valor string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := &g.borrador
	switch campo {
	case "predefinido":
		b.Predefinido = valor
		b.Diagnostico = ""
		if d, ok := models.DiagnosticoPorValor(valor); ok {
			b.Diagnostico = d.Etiqueta
		}
	case "diagnostico":
		if valor != "" && !validacion.DiagnosticoValido(valor) {
			g.mensaje = fallo(validacion.MsgDiagnosticoCaracteres)
			return &ErrorValidacion{Errores: validacion.Errores{"diagnostico": validacion.MsgDiagnosticoCaracteres}}
		}
		b.Diagnostico = valor
	case "paciente", "medico", "duracion":
		n, err := enteroOpcional(valor)
		if err != nil {
			return fmt.Errorf("%s: %w", campo, err)
		}
		switch campo {
		case "paciente":
			b.Paciente = n
		case "medico":
			b.Medico = n
		default:
			b.Duracion = nil
			if n != 0 {
				b.Duracion = &n
			}
		}
	case "fecha":
		f, err := models.ParseFechaHora(valor)
		if err != nil {
			return fmt.Errorf("fecha: %w", err)
		}
		b.Fecha = f
	case "estado":
		b.Estado = valor
	default:
		return fmt.Errorf("campo desconocido %q", campo)
	}

	g.mensaje = Mensaje{}
	return nil
}

func enteroOpcional(valor string) (int, error) {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return 0, nil
	}
	return strconv.Atoi(valor)
}

// Validar revisa el borrador y guarda los errores por campo
func (g *Consultas) Validar() validacion.Errores {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errores = validacion.ValidarConsulta(g.borrador.NuevaConsulta, g.ahora())
	return copiarErrores(g.errores)
}

// Enviar crea la consulta del borrador. Tras el alta limpia el borrador y
// recarga las colecciones.
func (g *Consultas) Enviar(ctx context.Context) (models.Consulta, error) {
	g.mu.Lock()
	g.mensaje = Mensaje{}
	g.errores = validacion.ValidarConsulta(g.borrador.NuevaConsulta, g.ahora())
	if !g.errores.Vacio() {
		err := &ErrorValidacion{Errores: copiarErrores(g.errores)}
		g.mu.Unlock()
		return models.Consulta{}, err
	}
	nueva := g.borrador.NuevaConsulta
	g.mu.Unlock()

	creada, err := g.api.CrearConsulta(ctx, nueva)

	g.mu.Lock()
	if err != nil {
		var resp *cliente.ErrorRespuesta
		switch {
		case errors.As(err, &resp) && len(resp.Errores) > 0:
			// el servidor rechazó campos del borrador
			g.errores = copiarErrores(resp.Errores)
			g.mensaje = fallo(msgConsultaError)
			if resp.Mensaje != "" {
				g.mensaje = fallo(resp.Mensaje)
			}
		case errors.Is(err, cliente.ErrDuplicado):
			g.mensaje = fallo(msgConsultaDuplicada)
		default:
			g.mensaje = fallo(msgConsultaError)
			g.logger.Error().Err(err).Msg("error al agregar consulta")
		}
		g.mu.Unlock()
		return models.Consulta{}, err
	}
	g.consultas = append(g.consultas, creada)
	g.borrador = BorradorConsulta{}
	g.mensaje = exito(msgConsultaAgregada)
	g.mu.Unlock()

	// Recargar para asegurar consistencia; el alta ya fue exitosa
	if err := g.Cargar(ctx); err != nil {
		g.logger.Warn().Err(err).Msg("no se pudo recargar después del alta")
	}
	return creada, nil
}

// Filtrar fija los filtros de la lista
func (g *Consultas) Filtrar(f estadisticas.Filtros) {
	g.mu.Lock()
	g.filtros = f
	g.mu.Unlock()
}

// Filtradas devuelve las consultas cargadas que cumplen los filtros actuales
func (g *Consultas) Filtradas() []models.Consulta {
	g.mu.Lock()
	defer g.mu.Unlock()
	return estadisticas.Filtrar(g.consultas, g.medicos, g.filtros)
}

// Estadisticas se recalcula sobre las colecciones cargadas
func (g *Consultas) Estadisticas() estadisticas.Estadisticas {
	g.mu.Lock()
	defer g.mu.Unlock()
	return estadisticas.Calcular(g.consultas, g.pacientes, g.medicos)
}

func (g *Consultas) Lista() []models.Consulta {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Consulta{}, g.consultas...)
}

func (g *Consultas) Pacientes() []models.Paciente {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Paciente{}, g.pacientes...)
}

func (g *Consultas) Medicos() []models.Medico {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Medico{}, g.medicos...)
}

func (g *Consultas) Borrador() BorradorConsulta {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.borrador
}

func (g *Consultas) Errores() validacion.Errores {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copiarErrores(g.errores)
}

func (g *Consultas) Mensaje() Mensaje {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mensaje
}

// FechaMinima es el menor valor aceptado para la fecha, en formato datetime-local
func (g *Consultas) FechaMinima() string {
	return g.ahora().Format("2006-01-02T15:04")
}
