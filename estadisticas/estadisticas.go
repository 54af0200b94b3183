// Package estadisticas calcula los indicadores de la pantalla de consultas a
// partir de las colecciones ya cargadas en memoria.
package estadisticas

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lizet96/clinica-backend/models"
)

// MinimoFaltas es la cantidad de faltas que se debe superar para aparecer
// en la lista de pacientes con faltas
const MinimoFaltas = 2

const (
	sinEspecialidad = "Desconocida"
	desconocido     = "Desconocido"
	noDisponible    = "N/A"
)

// ConteoEspecialidad es el número de consultas de una especialidad
type ConteoEspecialidad struct {
	Especialidad string `json:"especialidad"`
	Consultas    int    `json:"count"`
}

// LiderEspecialidad es el médico con más consultas dentro de una especialidad
type LiderEspecialidad struct {
	Especialidad string `json:"especialidad"`
	MedicoID     int    `json:"medico_id"`
	Medico       string `json:"medico"`
	Consultas    int    `json:"consultas"`
}

// OcupacionMedico acumula los minutos de consulta de un médico
type OcupacionMedico struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Especialidad string `json:"especialidad"`
	Minutos      int    `json:"minutos"`
}

// PacienteFaltas describe a un paciente con más de MinimoFaltas faltas
type PacienteFaltas struct {
	ID          int        `json:"id"`
	Nombre      string     `json:"nombre"`
	Telefono    string     `json:"telefono"`
	Correo      string     `json:"correo"`
	Faltas      int        `json:"faltas"`
	UltimaFalta *time.Time `json:"ultima_falta"`
}

// DiagnosticoFrecuente es el diagnóstico que más se repite
type DiagnosticoFrecuente struct {
	Nombre    string `json:"nombre"`
	Consultas int    `json:"count"`
}

// Estadisticas agrupa todos los indicadores
type Estadisticas struct {
	EspecialidadesOrdenadas []ConteoEspecialidad `json:"especialidades_ordenadas"`
	MedicosLideres          []LiderEspecialidad  `json:"medicos_lideres"`
	ConsultasPorMedico      map[string]int       `json:"consultas_por_medico"`
	MedicosOcupados         []OcupacionMedico    `json:"medicos_ocupados"`
	PacientesFaltantes      []PacienteFaltas     `json:"pacientes_faltantes"`
	DiagnosticoMasFrecuente DiagnosticoFrecuente `json:"diagnostico_mas_concurrente"`
}

// conteoOrdenado cuenta claves conservando el orden de primera aparición
type conteoOrdenado struct {
	orden  []string
	conteo map[string]int
}

func nuevoConteo() *conteoOrdenado {
	return &conteoOrdenado{conteo: make(map[string]int)}
}

func (c *conteoOrdenado) sumar(clave string, n int) {
	if _, ok := c.conteo[clave]; !ok {
		c.orden = append(c.orden, clave)
	}
	c.conteo[clave] += n
}

// Calcular deriva las estadísticas de las consultas usando pacientes y
// médicos para resolver nombres, especialidades y teléfonos
func Calcular(consultas []models.Consulta, pacientes []models.Paciente, medicos []models.Medico) Estadisticas {
	medicosPorID := make(map[int]models.Medico, len(medicos))
	for _, m := range medicos {
		medicosPorID[m.ID] = m
	}

	porEspecialidad := nuevoConteo()
	// especialidad -> médicos en orden de aparición con su conteo
	medicosPorEspecialidad := make(map[string][]int)
	conteoMedicoEspecialidad := make(map[string]map[int]int)
	porMedico := make(map[string]int)
	ocupacion := make(map[int]int)
	var ordenOcupacion []int
	faltas := make(map[int]int)
	ultimaFalta := make(map[int]time.Time)
	var ordenFaltas []int
	diagnosticos := nuevoConteo()

	for _, c := range consultas {
		medico, conocido := medicosPorID[c.Medico.ID]

		nombreMedico := noDisponible
		if conocido && medico.Nombre != "" {
			nombreMedico = medico.Nombre
		} else if c.Medico.Nombre != "" {
			nombreMedico = c.Medico.Nombre
		}

		if conocido {
			especialidad := nombreEspecialidad(medico)
			porEspecialidad.sumar(especialidad, 1)

			if conteoMedicoEspecialidad[especialidad] == nil {
				conteoMedicoEspecialidad[especialidad] = make(map[int]int)
			}
			if _, visto := conteoMedicoEspecialidad[especialidad][medico.ID]; !visto {
				medicosPorEspecialidad[especialidad] = append(medicosPorEspecialidad[especialidad], medico.ID)
			}
			conteoMedicoEspecialidad[especialidad][medico.ID]++

			if c.Duracion != nil && *c.Duracion != 0 {
				if _, visto := ocupacion[medico.ID]; !visto {
					ordenOcupacion = append(ordenOcupacion, medico.ID)
				}
				ocupacion[medico.ID] += *c.Duracion
			}
		}

		if nombreMedico != noDisponible {
			porMedico[nombreMedico]++
		}

		if c.Paciente.ID != 0 && c.Estado == models.EstadoFalta {
			if _, visto := faltas[c.Paciente.ID]; !visto {
				ordenFaltas = append(ordenFaltas, c.Paciente.ID)
			}
			faltas[c.Paciente.ID]++
			if c.Fecha.After(ultimaFalta[c.Paciente.ID]) {
				ultimaFalta[c.Paciente.ID] = c.Fecha.Time
			}
		}

		if d := strings.TrimSpace(c.Diagnostico); d != "" {
			diagnosticos.sumar(strings.ToLower(d), 1)
		}
	}

	est := Estadisticas{
		EspecialidadesOrdenadas: []ConteoEspecialidad{},
		MedicosLideres:          []LiderEspecialidad{},
		ConsultasPorMedico:      porMedico,
		MedicosOcupados:         []OcupacionMedico{},
		PacientesFaltantes:      []PacienteFaltas{},
		DiagnosticoMasFrecuente: DiagnosticoFrecuente{Nombre: noDisponible},
	}

	for _, especialidad := range porEspecialidad.orden {
		est.EspecialidadesOrdenadas = append(est.EspecialidadesOrdenadas, ConteoEspecialidad{
			Especialidad: especialidad,
			Consultas:    porEspecialidad.conteo[especialidad],
		})

		lider := LiderEspecialidad{Especialidad: especialidad, Medico: noDisponible}
		for _, id := range medicosPorEspecialidad[especialidad] {
			// solo un conteo estrictamente mayor desplaza al primero encontrado
			if n := conteoMedicoEspecialidad[especialidad][id]; n > lider.Consultas {
				lider.Consultas = n
				lider.MedicoID = id
				lider.Medico = medicosPorID[id].Nombre
			}
		}
		est.MedicosLideres = append(est.MedicosLideres, lider)
	}
	sort.SliceStable(est.EspecialidadesOrdenadas, func(i, j int) bool {
		return est.EspecialidadesOrdenadas[i].Consultas > est.EspecialidadesOrdenadas[j].Consultas
	})

	for _, id := range ordenOcupacion {
		m := medicosPorID[id]
		nombre := m.Nombre
		if nombre == "" {
			nombre = desconocido
		}
		especialidad := m.EspecialidadNombre
		if especialidad == "" {
			especialidad = noDisponible
		}
		est.MedicosOcupados = append(est.MedicosOcupados, OcupacionMedico{
			ID:           id,
			Nombre:       nombre,
			Especialidad: especialidad,
			Minutos:      ocupacion[id],
		})
	}
	sort.SliceStable(est.MedicosOcupados, func(i, j int) bool {
		return est.MedicosOcupados[i].Minutos > est.MedicosOcupados[j].Minutos
	})

	pacientesPorID := make(map[int]models.Paciente, len(pacientes))
	for _, p := range pacientes {
		pacientesPorID[p.ID] = p
	}
	for _, id := range ordenFaltas {
		if faltas[id] <= MinimoFaltas {
			continue
		}
		p, ok := pacientesPorID[id]
		pf := PacienteFaltas{
			ID:       id,
			Nombre:   desconocido,
			Telefono: noDisponible,
			Correo:   noDisponible,
			Faltas:   faltas[id],
		}
		if ok {
			pf.Nombre = valorO(p.Nombre, desconocido)
			pf.Telefono = valorO(p.Telefono, noDisponible)
			pf.Correo = valorO(p.Correo, noDisponible)
		}
		if u := ultimaFalta[id]; !u.IsZero() {
			pf.UltimaFalta = &u
		}
		est.PacientesFaltantes = append(est.PacientesFaltantes, pf)
	}
	sort.SliceStable(est.PacientesFaltantes, func(i, j int) bool {
		return est.PacientesFaltantes[i].Faltas > est.PacientesFaltantes[j].Faltas
	})

	for _, clave := range diagnosticos.orden {
		if n := diagnosticos.conteo[clave]; n > est.DiagnosticoMasFrecuente.Consultas {
			est.DiagnosticoMasFrecuente = DiagnosticoFrecuente{Nombre: clave, Consultas: n}
		}
	}
	if est.DiagnosticoMasFrecuente.Consultas > 0 {
		est.DiagnosticoMasFrecuente.Nombre = nombreDiagnostico(est.DiagnosticoMasFrecuente.Nombre)
	}

	return est
}

func nombreEspecialidad(m models.Medico) string {
	if m.EspecialidadNombre == "" {
		return sinEspecialidad
	}
	return m.EspecialidadNombre
}

// nombreDiagnostico usa la etiqueta del catálogo si existe; si no, pone en
// mayúscula la primera letra del texto normalizado
func nombreDiagnostico(clave string) string {
	if d, ok := models.DiagnosticoPorEtiqueta(clave); ok {
		return d.Etiqueta
	}
	r, size := utf8.DecodeRuneInString(clave)
	return string(unicode.ToUpper(r)) + clave[size:]
}

func valorO(valor, porDefecto string) string {
	if valor == "" {
		return porDefecto
	}
	return valor
}
