package exportar

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/models"
)

func datos() ([]models.Consulta, estadisticas.Estadisticas) {
	treinta := 30
	consultas := []models.Consulta{
		{
			ID:          1,
			Paciente:    models.Referencia{ID: 1, Nombre: "Luis Pérez"},
			Medico:      models.Referencia{ID: 1, Nombre: "Ana Ruiz"},
			Fecha:       models.NuevaFechaHora(time.Date(2030, 5, 16, 9, 0, 0, 0, time.UTC)),
			Estado:      models.EstadoRealizada,
			Diagnostico: "Migraña",
			Duracion:    &treinta,
		},
		{ID: 2, Estado: models.EstadoPendiente, Diagnostico: "Gripe"},
	}
	medicos := []models.Medico{{ID: 1, Nombre: "Ana Ruiz", EspecialidadNombre: "Cardiología"}}
	return consultas, estadisticas.Calcular(consultas, nil, medicos)
}

func TestLibro(t *testing.T) {
	consultas, est := datos()
	file := Libro(consultas, est)

	if got := file.GetCellValue(HojaConsultas, "B1"); got != "Paciente" {
		t.Errorf("unexpected header %q", got)
	}
	if got := file.GetCellValue(HojaConsultas, "B2"); got != "Luis Pérez" {
		t.Errorf("unexpected paciente %q", got)
	}
	if got := file.GetCellValue(HojaConsultas, "D2"); got != "2030-05-16 09:00" {
		t.Errorf("unexpected fecha %q", got)
	}
	if got := file.GetCellValue(HojaConsultas, "G2"); got != "30" {
		t.Errorf("unexpected duracion %q", got)
	}
	if got := file.GetCellValue(HojaConsultas, "D3"); got != "" {
		t.Errorf("missing fecha must leave the cell empty, got %q", got)
	}
	if got := file.GetCellValue(HojaEstadisticas, "A1"); got != "Consultas por especialidad" {
		t.Errorf("unexpected statistics title %q", got)
	}
	if got := file.GetCellValue(HojaEstadisticas, "A2"); got != "Cardiología" {
		t.Errorf("unexpected specialty %q", got)
	}
	if file.GetSheetIndex("Sheet1") > 0 {
		t.Error("default sheet must be removed")
	}
}

func TestGuardar(t *testing.T) {
	consultas, est := datos()
	archivo := filepath.Join(t.TempDir(), "consultas.xlsx")
	if err := Guardar(archivo, consultas, est); err != nil {
		t.Fatalf("Guardar: %v", err)
	}

	file, err := excelize.OpenFile(archivo)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if got := file.GetCellValue(HojaConsultas, "F2"); got != "Migraña" {
		t.Errorf("unexpected diagnostico %q", got)
	}
}

func TestEscribir(t *testing.T) {
	consultas, est := datos()
	var buf bytes.Buffer
	if err := Escribir(&buf, consultas, est); err != nil {
		t.Fatalf("Escribir: %v", err)
	}
	if buf.Len() == 0 || !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("expected a zip based xlsx file")
	}
}
