package gestor

import (
	"context"
	"fmt"
	"sync"

	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
	"github.com/rs/zerolog"
)

const (
	msgEspecialidadAgregada = "¡Especialidad agregada con éxito!"
	msgEspecialidadError    = "Ocurrió un error al guardar la especialidad."
)

type EspecialidadesAPI interface {
	ListarEspecialidades(ctx context.Context) ([]models.Especialidad, error)
	CrearEspecialidad(ctx context.Context, e models.Especialidad) (models.Especialidad, error)
}

// Especialidades administra el alta de especialidades. La unicidad se revisa
// contra la lista cargada; dos sesiones simultáneas pueden colarse y es el
// servidor quien las rechaza.
type Especialidades struct {
	api    EspecialidadesAPI
	logger zerolog.Logger

	mu             sync.Mutex
	especialidades []models.Especialidad
	mensaje        Mensaje
}

func NuevoEspecialidades(api EspecialidadesAPI, logger zerolog.Logger) *Especialidades {
	return &Especialidades{api: api, logger: logger, especialidades: []models.Especialidad{}}
}

func (g *Especialidades) Cargar(ctx context.Context) error {
	especialidades, err := g.api.ListarEspecialidades(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("error cargando especialidades")
		return fmt.Errorf("cargar especialidades: %w", err)
	}
	g.mu.Lock()
	g.especialidades = especialidades
	g.mu.Unlock()
	return nil
}

// Enviar valida el nombre y, si pasa, crea la especialidad
func (g *Especialidades) Enviar(ctx context.Context, nombre string) (models.Especialidad, error) {
	g.mu.Lock()
	g.mensaje = Mensaje{}
	nombre, err := validacion.ValidarEspecialidad(nombre, g.especialidades)
	if err != nil {
		g.mensaje = fallo(err.Error())
		g.mu.Unlock()
		return models.Especialidad{}, &ErrorValidacion{Errores: validacion.Errores{"nombre": err.Error()}}
	}
	g.mu.Unlock()

	creada, err := g.api.CrearEspecialidad(ctx, models.Especialidad{Nombre: nombre})

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.logger.Error().Err(err).Str("nombre", nombre).Msg("error al guardar la especialidad")
		g.mensaje = fallo(msgEspecialidadError)
		return models.Especialidad{}, err
	}
	g.especialidades = append(g.especialidades, creada)
	g.mensaje = exito(msgEspecialidadAgregada)
	return creada, nil
}

func (g *Especialidades) Lista() []models.Especialidad {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Especialidad{}, g.especialidades...)
}

func (g *Especialidades) Mensaje() Mensaje {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mensaje
}
