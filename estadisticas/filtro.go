package estadisticas

import (
	"strings"

	"github.com/lizet96/clinica-backend/models"
)

// Filtros de la lista de consultas. Un campo vacío no filtra.
type Filtros struct {
	Paciente    string `json:"paciente" query:"paciente"`
	Medico      string `json:"medico" query:"medico"`
	Estado      string `json:"estado" query:"estado"`
	Diagnostico string `json:"diagnostico" query:"diagnostico"`
}

// Vacio indica si ningún filtro está activo
func (f Filtros) Vacio() bool {
	return f.Paciente == "" && f.Medico == "" && f.Estado == "" && f.Diagnostico == ""
}

// Filtrar devuelve las consultas que cumplen todos los filtros. El nombre del
// médico se toma de la lista de médicos y, si no aparece, de la consulta.
func Filtrar(consultas []models.Consulta, medicos []models.Medico, f Filtros) []models.Consulta {
	nombres := make(map[int]string, len(medicos))
	for _, m := range medicos {
		nombres[m.ID] = m.Nombre
	}

	resultado := make([]models.Consulta, 0, len(consultas))
	for _, c := range consultas {
		if f.Paciente != "" && !contiene(c.Paciente.Nombre, f.Paciente) {
			continue
		}
		if f.Medico != "" {
			nombre := nombres[c.Medico.ID]
			if nombre == "" {
				nombre = c.Medico.Nombre
			}
			if !contiene(nombre, f.Medico) {
				continue
			}
		}
		if f.Estado != "" && c.Estado != f.Estado {
			continue
		}
		if f.Diagnostico != "" && !contiene(c.Diagnostico, f.Diagnostico) {
			continue
		}
		resultado = append(resultado, c)
	}
	return resultado
}

func contiene(texto, buscado string) bool {
	if texto == "" {
		return false
	}
	return strings.Contains(strings.ToLower(texto), strings.ToLower(buscado))
}
