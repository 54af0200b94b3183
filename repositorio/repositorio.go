// Package repositorio define el acceso a las colecciones de la clínica y sus
// implementaciones en PostgreSQL y en memoria.
package repositorio

import (
	"context"
	"errors"

	"github.com/lizet96/clinica-backend/models"
)

var (
	// ErrDuplicado indica que se violó una restricción de unicidad
	ErrDuplicado = errors.New("registro duplicado")
	// ErrReferenciaInvalida indica que un paciente, médico o especialidad referido no existe
	ErrReferenciaInvalida = errors.New("referencia inválida")
	// ErrValorInvalido indica un valor que la columna no admite, como un texto demasiado largo
	ErrValorInvalido = errors.New("valor inválido")
)

// Repositorio agrupa las operaciones de lectura y creación de cada colección.
// Ninguna entidad se actualiza ni se elimina desde la aplicación.
type Repositorio interface {
	ListarPacientes(ctx context.Context) ([]models.Paciente, error)
	CrearPaciente(ctx context.Context, p *models.Paciente) error

	ListarEspecialidades(ctx context.Context) ([]models.Especialidad, error)
	CrearEspecialidad(ctx context.Context, e *models.Especialidad) error

	ListarMedicos(ctx context.Context) ([]models.Medico, error)
	CrearMedico(ctx context.Context, m *models.Medico) error

	ListarConsultas(ctx context.Context) ([]models.Consulta, error)
	CrearConsulta(ctx context.Context, nueva models.NuevaConsulta) (models.Consulta, error)
}
