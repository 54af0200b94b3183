package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/models"
	"github.com/lizet96/clinica-backend/repositorio"
	"github.com/rs/zerolog"
)

var ahoraFijo = time.Date(2030, 5, 15, 12, 0, 0, 0, time.UTC)

type mockPublicador struct {
	eventos []events.Evento
	err     error
}

func (m *mockPublicador) Publicar(_ context.Context, e events.Evento) error {
	m.eventos = append(m.eventos, e)
	return m.err
}

func (m *mockPublicador) Close() error { return nil }

// repoFallido falla todas las lecturas
type repoFallido struct {
	repositorio.Repositorio
}

func (repoFallido) ListarConsultas(context.Context) ([]models.Consulta, error) {
	return nil, errors.New("conexión perdida")
}

// repoTextoLargo rechaza el alta como lo hace una columna VARCHAR excedida
type repoTextoLargo struct {
	repositorio.Repositorio
}

func (repoTextoLargo) CrearPaciente(context.Context, *models.Paciente) error {
	return fmt.Errorf("crear paciente: %w", repositorio.ErrValorInvalido)
}

func nuevaApp(t *testing.T, repo repositorio.Repositorio) (*fiber.App, *mockPublicador) {
	t.Helper()
	pub := &mockPublicador{}
	h := New(repo, pub, zerolog.Nop())
	h.ahora = func() time.Time { return ahoraFijo }

	app := fiber.New()
	app.Get("/api/consultas", h.ObtenerConsultas)
	app.Post("/api/consultas", h.CrearConsulta)
	app.Get("/api/consultas/estadisticas", h.ObtenerEstadisticas)
	app.Get("/api/pacientes", h.ObtenerPacientes)
	app.Post("/api/pacientes", h.CrearPaciente)
	app.Get("/api/medicos", h.ObtenerMedicos)
	app.Post("/api/medicos", h.CrearMedico)
	app.Get("/api/especialidades", h.ObtenerEspecialidades)
	app.Post("/api/especialidades", h.CrearEspecialidad)
	app.Get("/api/diagnosticos", h.ObtenerDiagnosticos)
	app.Get("/api/reportes/consultas", h.GenerarReporteConsultas)
	return app, pub
}

func hacer(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

// sembrarRepo crea una especialidad, un médico y un paciente
func sembrarRepo(t *testing.T) *repositorio.Memoria {
	t.Helper()
	ctx := context.Background()
	repo := repositorio.NuevaMemoria()
	esp := models.Especialidad{Nombre: "Cardiología"}
	med := models.Medico{Nombre: "Ana Ruiz", CedulaProfesional: "ABC123", Especialidad: 1, Horario: "Lunes 9-13"}
	pac := models.Paciente{Nombre: "Luis Pérez", Cedula: "1234567", Correo: "luis@example.com"}
	if err := repo.CrearEspecialidad(ctx, &esp); err != nil {
		t.Fatal(err)
	}
	if err := repo.CrearMedico(ctx, &med); err != nil {
		t.Fatal(err)
	}
	if err := repo.CrearPaciente(ctx, &pac); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestCrearConsulta(t *testing.T) {
	app, pub := nuevaApp(t, sembrarRepo(t))

	body := `{"paciente":1,"medico":1,"fecha":"2030-05-20T10:30:00Z","estado":"pendiente","diagnostico":"Migraña","duracion":30}`
	resp, data := hacer(t, app, "POST", "/api/consultas", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}

	var consulta models.Consulta
	if err := json.Unmarshal(data, &consulta); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if consulta.ID != 1 || consulta.Paciente.Nombre != "Luis Pérez" || consulta.Medico.Nombre != "Ana Ruiz" {
		t.Errorf("unexpected consulta %+v", consulta)
	}
	if len(pub.eventos) != 1 || pub.eventos[0].Tipo != events.ConsultaCreada {
		t.Errorf("expected a consulta_creada event, got %+v", pub.eventos)
	}

	// misma fecha y mismo médico
	resp, data = hacer(t, app, "POST", "/api/consultas", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	_ = json.Unmarshal(data, &errResp)
	if !errResp.Error || errResp.Message != "Ya existe una consulta con estos datos" {
		t.Errorf("unexpected error body %s", data)
	}
}

func TestCrearConsulta_Validacion(t *testing.T) {
	app, pub := nuevaApp(t, sembrarRepo(t))

	body := `{"paciente":1,"medico":0,"fecha":"2030-05-15T11:59:00Z","estado":"cancelada","diagnostico":"Dolor #1"}`
	resp, data := hacer(t, app, "POST", "/api/consultas", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	for _, campo := range []string{"medico", "fecha", "estado", "diagnostico"} {
		if _, ok := errResp.Errores[campo]; !ok {
			t.Errorf("expected an error for %s, got %v", campo, errResp.Errores)
		}
	}
	if errResp.Errores["fecha"] != "La fecha debe ser posterior a la fecha y hora actual." {
		t.Errorf("unexpected fecha message %q", errResp.Errores["fecha"])
	}
	if len(pub.eventos) != 0 {
		t.Error("no event must be published on validation failure")
	}
}

func TestCrearConsulta_ReferenciaInexistente(t *testing.T) {
	app, _ := nuevaApp(t, sembrarRepo(t))
	body := `{"paciente":9,"medico":1,"fecha":"2030-05-20T10:30","estado":"pendiente","diagnostico":"Gripe"}`
	resp, _ := hacer(t, app, "POST", "/api/consultas", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for unknown paciente, got %d", resp.StatusCode)
	}
}

func TestCrearConsulta_BodyInvalido(t *testing.T) {
	app, _ := nuevaApp(t, sembrarRepo(t))
	resp, _ := hacer(t, app, "POST", "/api/consultas", `{"fecha":"ayer"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for unparsable body, got %d", resp.StatusCode)
	}
}

func TestObtenerConsultas_Filtros(t *testing.T) {
	repo := sembrarRepo(t)
	ctx := context.Background()
	for i, diag := range []string{"Migraña", "Gripe"} {
		_, err := repo.CrearConsulta(ctx, models.NuevaConsulta{
			Paciente: 1, Medico: 1, Estado: models.EstadoPendiente, Diagnostico: diag,
			Fecha: models.NuevaFechaHora(ahoraFijo.Add(time.Duration(i+1) * time.Hour)),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	app, _ := nuevaApp(t, repo)

	_, data := hacer(t, app, "GET", "/api/consultas", "")
	var todas []models.Consulta
	_ = json.Unmarshal(data, &todas)
	if len(todas) != 2 {
		t.Fatalf("expected 2 consultas, got %d", len(todas))
	}

	_, data = hacer(t, app, "GET", "/api/consultas?diagnostico=gri&medico=ana", "")
	var filtradas []models.Consulta
	_ = json.Unmarshal(data, &filtradas)
	if len(filtradas) != 1 || filtradas[0].Diagnostico != "Gripe" {
		t.Errorf("unexpected filtered consultas %+v", filtradas)
	}

	_, data = hacer(t, app, "GET", "/api/consultas?estado=falta", "")
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %s", data)
	}
}

func TestObtenerConsultas_ErrorRepositorio(t *testing.T) {
	app, _ := nuevaApp(t, repoFallido{})
	resp, data := hacer(t, app, "GET", "/api/consultas", "")
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(string(data), "conexión perdida") {
		t.Error("internal error details must not leak")
	}
}

func TestObtenerEstadisticas(t *testing.T) {
	repo := sembrarRepo(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.CrearConsulta(ctx, models.NuevaConsulta{
			Paciente: 1, Medico: 1, Estado: models.EstadoFalta, Diagnostico: "gripe",
			Fecha: models.NuevaFechaHora(ahoraFijo.AddDate(0, 0, i+1)),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	app, _ := nuevaApp(t, repo)

	resp, data := hacer(t, app, "GET", "/api/consultas/estadisticas", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var est estadisticas.Estadisticas
	if err := json.Unmarshal(data, &est); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(est.PacientesFaltantes) != 1 || est.PacientesFaltantes[0].Faltas != 3 {
		t.Errorf("expected the patient with 3 misses, got %+v", est.PacientesFaltantes)
	}
	if len(est.MedicosLideres) != 1 || est.MedicosLideres[0].Medico != "Ana Ruiz" {
		t.Errorf("unexpected leaders %+v", est.MedicosLideres)
	}
	if est.DiagnosticoMasFrecuente.Nombre != "Gripe" || est.DiagnosticoMasFrecuente.Consultas != 3 {
		t.Errorf("unexpected diagnosis %+v", est.DiagnosticoMasFrecuente)
	}
}

func TestGenerarReporteConsultas(t *testing.T) {
	repo := sembrarRepo(t)
	_, err := repo.CrearConsulta(context.Background(), models.NuevaConsulta{
		Paciente: 1, Medico: 1, Estado: models.EstadoPendiente, Diagnostico: "Gripe",
		Fecha: models.NuevaFechaHora(ahoraFijo.Add(time.Hour)),
	})
	if err != nil {
		t.Fatal(err)
	}
	app, _ := nuevaApp(t, repo)

	_, data := hacer(t, app, "GET", "/api/reportes/consultas", "")
	var r estadisticas.Resumen
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if r.TotalConsultas != 1 || r.ConsultasHoy != 1 {
		t.Errorf("unexpected summary %+v", r)
	}
}

func TestCrearEspecialidad(t *testing.T) {
	app, pub := nuevaApp(t, sembrarRepo(t))

	resp, data := hacer(t, app, "POST", "/api/especialidades", `{"nombre":"  Pediatría "}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	var esp models.Especialidad
	_ = json.Unmarshal(data, &esp)
	if esp.Nombre != "Pediatría" || esp.ID != 2 {
		t.Errorf("unexpected especialidad %+v", esp)
	}
	if len(pub.eventos) != 1 || pub.eventos[0].Tipo != events.EspecialidadCreada {
		t.Errorf("expected especialidad_creada event, got %+v", pub.eventos)
	}

	tests := []struct {
		body string
		msg  string
	}{
		{`{"nombre":"   "}`, "El nombre de la especialidad es obligatorio."},
		{`{"nombre":"Ca"}`, "El nombre debe tener al menos 3 letras y solo puede contener letras y espacios."},
		{`{"nombre":"cardiología "}`, "La especialidad ya está registrada."},
	}
	for _, tt := range tests {
		resp, data := hacer(t, app, "POST", "/api/especialidades", tt.body)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.body, resp.StatusCode)
		}
		var errResp ErrorResponse
		_ = json.Unmarshal(data, &errResp)
		if errResp.Message != tt.msg {
			t.Errorf("%s: expected message %q, got %q", tt.body, tt.msg, errResp.Message)
		}
	}
}

func TestCrearMedico(t *testing.T) {
	app, _ := nuevaApp(t, sembrarRepo(t))

	body := `{"nombre":"Carlos Díaz","cedula_profesional":"XYZ789","especialidad":1,"horario":"Martes 8-12"}`
	resp, data := hacer(t, app, "POST", "/api/medicos", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	var med models.Medico
	_ = json.Unmarshal(data, &med)
	if med.EspecialidadNombre != "Cardiología" {
		t.Errorf("expected especialidad_nombre, got %+v", med)
	}

	resp, data = hacer(t, app, "POST", "/api/medicos", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate cédula, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(data), "La cédula profesional ya está registrada") {
		t.Errorf("unexpected body %s", data)
	}

	resp, data = hacer(t, app, "POST", "/api/medicos", `{"nombre":"Carlos 2","cedula_profesional":"X-1","especialidad":0,"horario":""}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	_ = json.Unmarshal(data, &errResp)
	if len(errResp.Errores) != 4 {
		t.Errorf("expected 4 field errors, got %v", errResp.Errores)
	}
}

func TestCrearPaciente(t *testing.T) {
	app, pub := nuevaApp(t, sembrarRepo(t))

	body := `{"nombre":"Eva Soto","cedula":"7654321","correo":"eva@example.com","telefono":"5551234"}`
	resp, data := hacer(t, app, "POST", "/api/pacientes", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	if len(pub.eventos) != 1 || pub.eventos[0].Tipo != events.PacienteCreado {
		t.Errorf("expected paciente_creado event, got %+v", pub.eventos)
	}

	resp, data = hacer(t, app, "POST", "/api/pacientes", body)
	if resp.StatusCode != fiber.StatusBadRequest || !strings.Contains(string(data), "Ya existe un paciente con esa cédula") {
		t.Errorf("expected duplicate error, got %d %s", resp.StatusCode, data)
	}

	resp, data = hacer(t, app, "POST", "/api/pacientes", `{"nombre":"Al","cedula":"123456","correo":"x"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	_ = json.Unmarshal(data, &errResp)
	if errResp.Errores["cedula"] != "La cédula debe tener entre 7 y 10 dígitos" {
		t.Errorf("unexpected errors %v", errResp.Errores)
	}

	_, data = hacer(t, app, "GET", "/api/pacientes", "")
	var pacientes []models.Paciente
	_ = json.Unmarshal(data, &pacientes)
	if len(pacientes) != 2 {
		t.Errorf("expected 2 pacientes, got %d", len(pacientes))
	}
}

func TestPublicacionFallidaNoAfectaRespuesta(t *testing.T) {
	app, pub := nuevaApp(t, sembrarRepo(t))
	pub.err = errors.New("kafka caído")

	resp, _ := hacer(t, app, "POST", "/api/especialidades", `{"nombre":"Neurología"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("expected 201 even when publishing fails, got %d", resp.StatusCode)
	}
}

func TestObtenerDiagnosticos(t *testing.T) {
	app, _ := nuevaApp(t, repositorio.NuevaMemoria())
	_, data := hacer(t, app, "GET", "/api/diagnosticos", "")
	var opciones []models.Opcion
	_ = json.Unmarshal(data, &opciones)
	if len(opciones) != len(models.DiagnosticosPredefinidos) {
		t.Errorf("expected %d diagnoses, got %d", len(models.DiagnosticosPredefinidos), len(opciones))
	}
}

func TestCrearConsulta_FechaDentroDeLaTolerancia(t *testing.T) {
	app, _ := nuevaApp(t, sembrarRepo(t))

	// validada en el cliente un momento antes de llegar
	body := `{"paciente":1,"medico":1,"fecha":"2030-05-15T11:59:45Z","estado":"pendiente","diagnostico":"Gripe"}`
	resp, data := hacer(t, app, "POST", "/api/consultas", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
}

func TestCrearPaciente_ValorInvalido(t *testing.T) {
	app, pub := nuevaApp(t, repoTextoLargo{})
	body := `{"nombre":"Luis Pérez","cedula":"1234567","correo":"luis@example.com"}`
	resp, data := hacer(t, app, "POST", "/api/pacientes", body)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, data)
	}
	if len(pub.eventos) != 0 {
		t.Error("no event must be published when the insert fails")
	}
}
