package repositorio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lizet96/clinica-backend/models"
)

// Memoria es un Repositorio en memoria. Aplica las mismas restricciones de
// unicidad y de referencias que el esquema de PostgreSQL.
type Memoria struct {
	mu             sync.RWMutex
	pacientes      []models.Paciente
	especialidades []models.Especialidad
	medicos        []models.Medico
	consultas      []models.Consulta
	siguienteID    map[string]int
}

// NuevaMemoria crea un repositorio vacío
func NuevaMemoria() *Memoria {
	return &Memoria{siguienteID: make(map[string]int)}
}

func (m *Memoria) nuevoID(tabla string) int {
	m.siguienteID[tabla]++
	return m.siguienteID[tabla]
}

func (m *Memoria) ListarPacientes(_ context.Context) ([]models.Paciente, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Paciente{}, m.pacientes...), nil
}

func (m *Memoria) CrearPaciente(_ context.Context, p *models.Paciente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existente := range m.pacientes {
		if existente.Cedula == p.Cedula {
			return fmt.Errorf("paciente con cédula %s: %w", p.Cedula, ErrDuplicado)
		}
	}
	p.ID = m.nuevoID("paciente")
	m.pacientes = append(m.pacientes, *p)
	return nil
}

func (m *Memoria) ListarEspecialidades(_ context.Context) ([]models.Especialidad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Especialidad{}, m.especialidades...), nil
}

func (m *Memoria) CrearEspecialidad(_ context.Context, e *models.Especialidad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clave := strings.ToLower(strings.TrimSpace(e.Nombre))
	for _, existente := range m.especialidades {
		if strings.ToLower(strings.TrimSpace(existente.Nombre)) == clave {
			return fmt.Errorf("especialidad %q: %w", e.Nombre, ErrDuplicado)
		}
	}
	e.ID = m.nuevoID("especialidad")
	m.especialidades = append(m.especialidades, *e)
	return nil
}

func (m *Memoria) ListarMedicos(_ context.Context) ([]models.Medico, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	medicos := make([]models.Medico, 0, len(m.medicos))
	for _, med := range m.medicos {
		if esp, ok := m.especialidad(med.Especialidad); ok {
			med.EspecialidadNombre = esp.Nombre
		}
		medicos = append(medicos, med)
	}
	return medicos, nil
}

func (m *Memoria) CrearMedico(_ context.Context, med *models.Medico) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	esp, ok := m.especialidad(med.Especialidad)
	if !ok {
		return fmt.Errorf("especialidad %d: %w", med.Especialidad, ErrReferenciaInvalida)
	}
	for _, existente := range m.medicos {
		if existente.CedulaProfesional == med.CedulaProfesional {
			return fmt.Errorf("médico con cédula profesional %s: %w", med.CedulaProfesional, ErrDuplicado)
		}
	}
	med.ID = m.nuevoID("medico")
	med.EspecialidadNombre = ""
	m.medicos = append(m.medicos, *med)
	med.EspecialidadNombre = esp.Nombre
	return nil
}

func (m *Memoria) ListarConsultas(_ context.Context) ([]models.Consulta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	consultas := make([]models.Consulta, 0, len(m.consultas))
	for _, c := range m.consultas {
		consultas = append(consultas, m.conNombres(c))
	}
	return consultas, nil
}

func (m *Memoria) CrearConsulta(_ context.Context, nueva models.NuevaConsulta) (models.Consulta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.paciente(nueva.Paciente); !ok {
		return models.Consulta{}, fmt.Errorf("paciente %d: %w", nueva.Paciente, ErrReferenciaInvalida)
	}
	if _, ok := m.medico(nueva.Medico); !ok {
		return models.Consulta{}, fmt.Errorf("médico %d: %w", nueva.Medico, ErrReferenciaInvalida)
	}
	for _, existente := range m.consultas {
		if existente.Medico.ID == nueva.Medico && existente.Fecha.Equal(nueva.Fecha.Time) {
			return models.Consulta{}, fmt.Errorf("consulta del médico %d en %s: %w", nueva.Medico, nueva.Fecha.Format("2006-01-02 15:04"), ErrDuplicado)
		}
	}
	c := models.Consulta{
		ID:          m.nuevoID("consulta"),
		Paciente:    models.Referencia{ID: nueva.Paciente},
		Medico:      models.Referencia{ID: nueva.Medico},
		Fecha:       nueva.Fecha,
		Estado:      nueva.Estado,
		Diagnostico: strings.TrimSpace(nueva.Diagnostico),
		Duracion:    nueva.Duracion,
	}
	m.consultas = append(m.consultas, c)
	return m.conNombres(c), nil
}

// conNombres completa los nombres de paciente y médico; requiere el lock tomado
func (m *Memoria) conNombres(c models.Consulta) models.Consulta {
	if p, ok := m.paciente(c.Paciente.ID); ok {
		c.Paciente.Nombre = p.Nombre
	}
	if med, ok := m.medico(c.Medico.ID); ok {
		c.Medico.Nombre = med.Nombre
	}
	return c
}

func (m *Memoria) paciente(id int) (models.Paciente, bool) {
	for _, p := range m.pacientes {
		if p.ID == id {
			return p, true
		}
	}
	return models.Paciente{}, false
}

func (m *Memoria) medico(id int) (models.Medico, bool) {
	for _, med := range m.medicos {
		if med.ID == id {
			return med, true
		}
	}
	return models.Medico{}, false
}

func (m *Memoria) especialidad(id int) (models.Especialidad, bool) {
	for _, e := range m.especialidades {
		if e.ID == id {
			return e, true
		}
	}
	return models.Especialidad{}, false
}
