// Package exportar escribe las consultas y sus estadísticas en una hoja de cálculo.
package exportar

import (
	"fmt"
	"io"
	"sort"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/models"
)

const (
	HojaConsultas    = "Consultas"
	HojaEstadisticas = "Estadisticas"
	formatoFecha     = "2006-01-02 15:04"
)

// Libro arma el archivo en memoria
func Libro(consultas []models.Consulta, est estadisticas.Estadisticas) *excelize.File {
	file := excelize.NewFile()
	file.NewSheet(HojaConsultas)
	file.NewSheet(HojaEstadisticas)
	file.DeleteSheet("Sheet1")
	file.SetActiveSheet(file.GetSheetIndex(HojaConsultas))

	headers := map[string]string{
		"A1": "ID",
		"B1": "Paciente",
		"C1": "Médico",
		"D1": "Fecha",
		"E1": "Estado",
		"F1": "Diagnóstico",
		"G1": "Duración (min)",
	}
	for k, v := range headers {
		file.SetCellValue(HojaConsultas, k, v)
	}
	for i := range consultas {
		appendRowConsulta(file, i, consultas)
	}

	escribirEstadisticas(file, est)
	return file
}

func appendRowConsulta(file *excelize.File, index int, rows []models.Consulta) {
	row := index + 2
	c := rows[index]
	file.SetCellValue(HojaConsultas, fmt.Sprintf("A%d", row), c.ID)
	file.SetCellValue(HojaConsultas, fmt.Sprintf("B%d", row), c.Paciente.Nombre)
	file.SetCellValue(HojaConsultas, fmt.Sprintf("C%d", row), c.Medico.Nombre)
	if !c.Fecha.IsZero() {
		file.SetCellValue(HojaConsultas, fmt.Sprintf("D%d", row), c.Fecha.Format(formatoFecha))
	}
	file.SetCellValue(HojaConsultas, fmt.Sprintf("E%d", row), models.EtiquetaEstado(c.Estado))
	file.SetCellValue(HojaConsultas, fmt.Sprintf("F%d", row), c.Diagnostico)
	if c.Duracion != nil {
		file.SetCellValue(HojaConsultas, fmt.Sprintf("G%d", row), *c.Duracion)
	}
}

// escribirEstadisticas pone cada indicador como una sección con su título
func escribirEstadisticas(file *excelize.File, est estadisticas.Estadisticas) {
	fila := 1
	celda := func(col string, v interface{}) {
		file.SetCellValue(HojaEstadisticas, fmt.Sprintf("%s%d", col, fila), v)
	}
	titulo := func(t string) {
		if fila > 1 {
			fila++
		}
		celda("A", t)
		fila++
	}

	titulo("Consultas por especialidad")
	for _, e := range est.EspecialidadesOrdenadas {
		celda("A", e.Especialidad)
		celda("B", e.Consultas)
		fila++
	}

	titulo("Médico con más consultas por especialidad")
	for _, l := range est.MedicosLideres {
		celda("A", l.Especialidad)
		celda("B", l.Medico)
		celda("C", l.Consultas)
		fila++
	}

	titulo("Consultas por médico")
	nombres := make([]string, 0, len(est.ConsultasPorMedico))
	for nombre := range est.ConsultasPorMedico {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	for _, nombre := range nombres {
		celda("A", nombre)
		celda("B", est.ConsultasPorMedico[nombre])
		fila++
	}

	titulo("Médicos con más minutos de consulta")
	for _, o := range est.MedicosOcupados {
		celda("A", o.Nombre)
		celda("B", o.Especialidad)
		celda("C", o.Minutos)
		fila++
	}

	titulo("Pacientes con más de dos faltas")
	for _, p := range est.PacientesFaltantes {
		celda("A", p.Nombre)
		celda("B", p.Faltas)
		if p.UltimaFalta != nil {
			celda("C", p.UltimaFalta.Format(formatoFecha))
		}
		fila++
	}

	titulo("Diagnóstico más frecuente")
	celda("A", est.DiagnosticoMasFrecuente.Nombre)
	celda("B", est.DiagnosticoMasFrecuente.Consultas)
}

// Escribir manda el libro al writer
func Escribir(w io.Writer, consultas []models.Consulta, est estadisticas.Estadisticas) error {
	if err := Libro(consultas, est).Write(w); err != nil {
		return fmt.Errorf("escribir hoja de cálculo: %w", err)
	}
	return nil
}

// Guardar escribe el libro en el archivo indicado
func Guardar(archivo string, consultas []models.Consulta, est estadisticas.Estadisticas) error {
	if err := Libro(consultas, est).SaveAs(archivo); err != nil {
		return fmt.Errorf("guardar %s: %w", archivo, err)
	}
	return nil
}
