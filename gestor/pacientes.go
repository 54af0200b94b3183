package gestor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lizet96/clinica-backend/cliente"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/validacion"
	"github.com/rs/zerolog"
)

const (
	msgPacienteAgregado = "Paciente agregado con éxito!"
	msgPacienteError    = "Error al agregar paciente"
	msgPacientesCarga   = "Error al cargar los pacientes"
	msgSinConexion      = "Error de conexión con el servidor"
)

type PacientesAPI interface {
	ListarPacientes(ctx context.Context) ([]models.Paciente, error)
	CrearPaciente(ctx context.Context, p models.Paciente) (models.Paciente, error)
}

// Pacientes administra el alta de pacientes. Los errores del servidor se
// guardan bajo la clave "api".
type Pacientes struct {
	api    PacientesAPI
	logger zerolog.Logger

	mu        sync.Mutex
	pacientes []models.Paciente
	borrador  models.Paciente
	errores   validacion.Errores
	mensaje   Mensaje
	cargando  bool
}

func NuevoPacientes(api PacientesAPI, logger zerolog.Logger) *Pacientes {
	return &Pacientes{api: api, logger: logger, pacientes: []models.Paciente{}, errores: validacion.Errores{}}
}

func (g *Pacientes) Cargar(ctx context.Context) error {
	pacientes, err := g.api.ListarPacientes(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.logger.Error().Err(err).Msg("error cargando pacientes")
		g.errores["api"] = msgPacientesCarga
		return fmt.Errorf("cargar pacientes: %w", err)
	}
	g.pacientes = pacientes
	return nil
}

// Cambiar edita un campo y limpia su error
func (g *Pacientes) Cambiar(campo, valor string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch campo {
	case "nombre":
		g.borrador.Nombre = valor
	case "cedula":
		g.borrador.Cedula = valor
	case "correo":
		g.borrador.Correo = valor
	case "telefono":
		g.borrador.Telefono = valor
	case "direccion":
		g.borrador.Direccion = valor
	default:
		return fmt.Errorf("campo desconocido %q", campo)
	}
	delete(g.errores, campo)
	return nil
}

// Enviar valida y crea el paciente. Cargando es verdadero mientras la
// petición está en curso.
func (g *Pacientes) Enviar(ctx context.Context) (models.Paciente, error) {
	g.mu.Lock()
	g.mensaje = Mensaje{}
	if g.cargando {
		g.mu.Unlock()
		return models.Paciente{}, errors.New("ya hay un alta en curso")
	}
	// cada envío reemplaza los errores anteriores, incluido "api"
	errores := validacion.ValidarPaciente(g.borrador)
	g.errores = errores
	if !errores.Vacio() {
		g.mu.Unlock()
		return models.Paciente{}, &ErrorValidacion{Errores: copiarErrores(errores)}
	}
	g.cargando = true
	nuevo := g.borrador
	g.mu.Unlock()

	creado, err := g.api.CrearPaciente(ctx, nuevo)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cargando = false
	if err != nil {
		g.logger.Error().Err(err).Msg("error al agregar paciente")
		var resp *cliente.ErrorRespuesta
		switch {
		case errors.As(err, &resp) && resp.Mensaje != "":
			g.errores["api"] = resp.Mensaje
		case errors.As(err, &resp):
			g.errores["api"] = msgPacienteError
		default:
			g.errores["api"] = msgSinConexion
		}
		return models.Paciente{}, err
	}
	g.pacientes = append(g.pacientes, creado)
	g.borrador = models.Paciente{}
	g.mensaje = exito(msgPacienteAgregado)
	return creado, nil
}

func (g *Pacientes) Cargando() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cargando
}

func (g *Pacientes) Lista() []models.Paciente {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Paciente{}, g.pacientes...)
}

func (g *Pacientes) Borrador() models.Paciente {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.borrador
}

func (g *Pacientes) Errores() validacion.Errores {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copiarErrores(g.errores)
}

func (g *Pacientes) Mensaje() Mensaje {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mensaje
}
