package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseFechaHora_Formatos(t *testing.T) {
	cases := []struct {
		entrada string
		want    time.Time
	}{
		{"2030-05-01T10:30", time.Date(2030, 5, 1, 10, 30, 0, 0, time.Local)},
		{"2030-05-01T10:30:15", time.Date(2030, 5, 1, 10, 30, 15, 0, time.Local)},
		{"2030-05-01T10:30:00Z", time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseFechaHora(tc.entrada)
		if err != nil {
			t.Fatalf("ParseFechaHora(%q): %v", tc.entrada, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseFechaHora(%q) = %v, want %v", tc.entrada, got.Time, tc.want)
		}
	}
}

func TestParseFechaHora_Vacia(t *testing.T) {
	got, err := ParseFechaHora("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero date, got %v", got.Time)
	}
}

func TestParseFechaHora_Invalida(t *testing.T) {
	if _, err := ParseFechaHora("mañana"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestNuevaConsulta_JSON(t *testing.T) {
	body := `{"paciente":1,"medico":2,"fecha":"2030-01-02T08:00","estado":"pendiente","diagnostico":"Asma"}`
	var nc NuevaConsulta
	if err := json.Unmarshal([]byte(body), &nc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if nc.Paciente != 1 || nc.Medico != 2 {
		t.Errorf("unexpected references: %+v", nc)
	}
	if nc.Fecha.Hour() != 8 || nc.Fecha.Year() != 2030 {
		t.Errorf("unexpected fecha %v", nc.Fecha.Time)
	}
	if nc.Duracion != nil {
		t.Errorf("expected nil duracion, got %d", *nc.Duracion)
	}
}

func TestFechaHora_MarshalCero(t *testing.T) {
	data, err := json.Marshal(struct {
		Fecha FechaHora `json:"fecha"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"fecha":null}` {
		t.Errorf("got %s", data)
	}
}

func TestEstados(t *testing.T) {
	for _, e := range []string{EstadoPendiente, EstadoFalta, EstadoRealizada} {
		if !EstadoValido(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	if EstadoValido("cancelada") {
		t.Error("expected cancelada to be invalid")
	}
	if EtiquetaEstado(EstadoFalta) != "Falta" {
		t.Errorf("unexpected label %q", EtiquetaEstado(EstadoFalta))
	}
}

func TestDiagnosticoPorEtiqueta(t *testing.T) {
	d, ok := DiagnosticoPorEtiqueta("  migraña ")
	if !ok || d.Valor != "migrana" {
		t.Errorf("expected migrana, got %+v (%v)", d, ok)
	}
	if _, ok := DiagnosticoPorEtiqueta("fractura"); ok {
		t.Error("expected no match")
	}
}
