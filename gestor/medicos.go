package gestor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lizet96/clinica-backend/cliente"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	msgMedicoAgregado  = "Médico agregado con éxito"
	msgMedicoDuplicado = "Error: La cédula profesional ya está registrada"
	msgMedicoError     = "Error al agregar médico"
	sinEspecialidad    = "Desconocida"
)

type MedicosAPI interface {
	ListarMedicos(ctx context.Context) ([]models.Medico, error)
	ListarEspecialidades(ctx context.Context) ([]models.Especialidad, error)
	CrearMedico(ctx context.Context, m models.Medico) (models.Medico, error)
}

// orden en que se reporta el primer error del formulario
var camposMedico = []string{"nombre", "cedula_profesional", "especialidad", "horario"}

type Medicos struct {
	api    MedicosAPI
	logger zerolog.Logger

	mu             sync.Mutex
	medicos        []models.Medico
	especialidades []models.Especialidad
	borrador       models.Medico
	errores        validacion.Errores
	mensaje        Mensaje
}

func NuevoMedicos(api MedicosAPI, logger zerolog.Logger) *Medicos {
	return &Medicos{
		api:            api,
		logger:         logger,
		medicos:        []models.Medico{},
		especialidades: []models.Especialidad{},
		errores:        validacion.Errores{},
	}
}

// Cargar trae médicos y especialidades en paralelo
func (g *Medicos) Cargar(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error {
		medicos, err := g.api.ListarMedicos(ctx)
		if err != nil {
			g.logger.Error().Err(err).Msg("error cargando médicos")
			return fmt.Errorf("cargar médicos: %w", err)
		}
		g.mu.Lock()
		g.medicos = medicos
		g.mu.Unlock()
		return nil
	})
	eg.Go(func() error {
		especialidades, err := g.api.ListarEspecialidades(ctx)
		if err != nil {
			g.logger.Error().Err(err).Msg("error cargando especialidades")
			return fmt.Errorf("cargar especialidades: %w", err)
		}
		g.mu.Lock()
		g.especialidades = especialidades
		g.mu.Unlock()
		return nil
	})
	return eg.Wait()
}

// Cambiar edita un campo; un nombre o cédula con caracteres no permitidos se
// rechaza y se conserva el valor anterior
func (g *Medicos) Cambiar(campo, valor string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if msg := validacion.ValidarCampoMedico(campo, valor); msg != "" {
		g.mensaje = fallo(msg)
		return &ErrorValidacion{Errores: validacion.Errores{campo: msg}}
	}

	switch campo {
	case "nombre":
		g.borrador.Nombre = valor
	case "cedula_profesional":
		g.borrador.CedulaProfesional = valor
	case "especialidad":
		id := 0
		if strings.TrimSpace(valor) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(valor))
			if err != nil {
				return fmt.Errorf("especialidad: %w", err)
			}
			id = n
		}
		g.borrador.Especialidad = id
	case "horario":
		g.borrador.Horario = valor
	default:
		return fmt.Errorf("campo desconocido %q", campo)
	}
	delete(g.errores, campo)
	g.mensaje = Mensaje{}
	return nil
}

// Enviar vuelve a validar el formulario completo y crea el médico
func (g *Medicos) Enviar(ctx context.Context) (models.Medico, error) {
	g.mu.Lock()
	g.mensaje = Mensaje{}
	g.errores = validacion.ValidarMedico(g.borrador)
	if !g.errores.Vacio() {
		for _, campo := range camposMedico {
			if msg, ok := g.errores[campo]; ok {
				g.mensaje = fallo(msg)
				break
			}
		}
		err := &ErrorValidacion{Errores: copiarErrores(g.errores)}
		g.mu.Unlock()
		return models.Medico{}, err
	}
	nuevo := g.borrador
	g.mu.Unlock()

	creado, err := g.api.CrearMedico(ctx, nuevo)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		if errors.Is(err, cliente.ErrDuplicado) {
			g.mensaje = fallo(msgMedicoDuplicado)
		} else {
			g.mensaje = fallo(msgMedicoError)
			g.logger.Error().Err(err).Msg("error al agregar médico")
		}
		return models.Medico{}, err
	}
	g.medicos = append(g.medicos, creado)
	g.borrador = models.Medico{}
	g.mensaje = exito(msgMedicoAgregado)
	return creado, nil
}

// NombreEspecialidad traduce el id de especialidad a su nombre
func (g *Medicos) NombreEspecialidad(id int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.especialidades {
		if e.ID == id {
			return e.Nombre
		}
	}
	return sinEspecialidad
}

func (g *Medicos) Lista() []models.Medico {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Medico{}, g.medicos...)
}

func (g *Medicos) Especialidades() []models.Especialidad {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Especialidad{}, g.especialidades...)
}

func (g *Medicos) Borrador() models.Medico {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.borrador
}

func (g *Medicos) Errores() validacion.Errores {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copiarErrores(g.errores)
}

func (g *Medicos) Mensaje() Mensaje {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mensaje
}
