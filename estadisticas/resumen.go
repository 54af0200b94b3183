package estadisticas

import (
	"time"

	"github.com/lizet96/clinica-backend/models"
)

// Resumen es el reporte general de consultas
type Resumen struct {
	TotalConsultas  int            `json:"total_consultas"`
	ConsultasHoy    int            `json:"consultas_hoy"`
	ConsultasSemana int            `json:"consultas_semana"`
	PorEstado       map[string]int `json:"por_estado"`
	MinutosTotales  int            `json:"minutos_totales"`
	FechaGeneracion time.Time      `json:"fecha_generacion"`
}

// Resumir cuenta las consultas del día y de la semana de ahora. La semana
// empieza el domingo.
func Resumir(consultas []models.Consulta, ahora time.Time) Resumen {
	r := Resumen{
		TotalConsultas:  len(consultas),
		PorEstado:       make(map[string]int, len(models.EstadosConsulta)),
		FechaGeneracion: ahora,
	}
	for _, e := range models.EstadosConsulta {
		r.PorEstado[e.Valor] = 0
	}

	y, m, d := ahora.Date()
	hoy := time.Date(y, m, d, 0, 0, 0, 0, ahora.Location())
	manana := hoy.AddDate(0, 0, 1)
	inicioSemana := hoy.AddDate(0, 0, -int(hoy.Weekday()))
	finSemana := inicioSemana.AddDate(0, 0, 7)

	for _, c := range consultas {
		r.PorEstado[c.Estado]++
		if c.Duracion != nil {
			r.MinutosTotales += *c.Duracion
		}
		if c.Fecha.IsZero() {
			continue
		}
		f := c.Fecha.In(ahora.Location())
		if !f.Before(hoy) && f.Before(manana) {
			r.ConsultasHoy++
		}
		if !f.Before(inicioSemana) && f.Before(finSemana) {
			r.ConsultasSemana++
		}
	}
	return r
}
