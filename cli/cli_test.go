package cli

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lizet96/clinica-backend/config"
	"github.com/lizet96/clinica-backend/handlers"
	"github.com/lizet96/clinica-backend/repositorio"
	"github.com/lizet96/clinica-backend/routes"
	"github.com/rs/zerolog"
)

func servidor(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	h := handlers.New(repositorio.NuevaMemoria(), nil, zerolog.Nop())
	app := routes.NewApp(h, routes.Opciones{RateLimitMax: 1000}, zerolog.Nop())
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func ejecutar(api string, args ...string) (string, error) {
	root := NewRootCmd()
	var out, logs bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(append([]string{"--api", api}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestComandos_FlujoCompleto(t *testing.T) {
	api := servidor(t)

	out, err := ejecutar(api, "especialidades", "crear", "--nombre", "Cardiología")
	if err != nil || !strings.Contains(out, "¡Especialidad agregada con éxito!") {
		t.Fatalf("crear especialidad: %q %v", out, err)
	}
	out, err = ejecutar(api, "especialidades", "crear", "--nombre", " cardiología ")
	if err == nil || !strings.Contains(out, "La especialidad ya está registrada.") {
		t.Errorf("expected duplicate rejection, got %q %v", out, err)
	}

	out, err = ejecutar(api, "medicos", "crear", "--nombre", "Ana Ruiz", "--cedula", "ABC123", "--especialidad", "1", "--horario", "Lunes a viernes")
	if err != nil || !strings.Contains(out, "Médico agregado con éxito") {
		t.Fatalf("crear médico: %q %v", out, err)
	}
	out, err = ejecutar(api, "medicos", "listar")
	if err != nil || !strings.Contains(out, "Cardiología") {
		t.Errorf("listar médicos: %q %v", out, err)
	}

	out, err = ejecutar(api, "pacientes", "crear", "--nombre", "Luis Pérez", "--correo", "luis@example.com")
	if err == nil || !strings.Contains(out, "cedula: La cédula es requerida") {
		t.Errorf("expected cedula error, got %q %v", out, err)
	}
	out, err = ejecutar(api, "pacientes", "crear", "--nombre", "Luis Pérez", "--cedula", "1234567", "--correo", "luis@example.com")
	if err != nil || !strings.Contains(out, "Paciente agregado con éxito!") {
		t.Fatalf("crear paciente: %q %v", out, err)
	}

	fecha := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04")
	out, err = ejecutar(api, "consultas", "crear", "--paciente", "1", "--medico", "1", "--fecha", fecha,
		"--estado", "pendiente", "--predefinido", "migrana", "--duracion", "30")
	if err != nil || !strings.Contains(out, "Consulta agregada con éxito") {
		t.Fatalf("crear consulta: %q %v", out, err)
	}
	out, err = ejecutar(api, "consultas", "crear", "--paciente", "1", "--medico", "1", "--fecha", fecha,
		"--estado", "pendiente", "--diagnostico", "Gripe")
	if err == nil || !strings.Contains(out, "Error: Ya existe una consulta con estos datos") {
		t.Errorf("expected duplicate consulta, got %q %v", out, err)
	}

	out, err = ejecutar(api, "consultas", "listar", "--paciente", "luis")
	if err != nil || !strings.Contains(out, "Migraña") || !strings.Contains(out, "30 min") {
		t.Errorf("listar consultas: %q %v", out, err)
	}
	out, err = ejecutar(api, "consultas", "listar", "--estado", "falta")
	if err != nil || !strings.Contains(out, "No hay consultas registradas") {
		t.Errorf("expected empty list, got %q %v", out, err)
	}

	out, err = ejecutar(api, "consultas", "estadisticas", "--json")
	if err != nil {
		t.Fatalf("estadisticas: %v", err)
	}
	var est map[string]interface{}
	if err := json.Unmarshal([]byte(out), &est); err != nil {
		t.Fatalf("estadisticas is not JSON: %v\n%s", err, out)
	}
	if _, ok := est["especialidades_ordenadas"]; !ok {
		t.Errorf("missing especialidades_ordenadas in %v", est)
	}

	archivo := filepath.Join(t.TempDir(), "consultas.xlsx")
	if _, err := ejecutar(api, "consultas", "exportar", "--archivo", archivo); err != nil {
		t.Fatalf("exportar: %v", err)
	}
	if info, err := os.Stat(archivo); err != nil || info.Size() == 0 {
		t.Errorf("expected exported file, got %v", err)
	}
}

func TestConsultasCrear_Validacion(t *testing.T) {
	api := servidor(t)

	out, err := ejecutar(api, "consultas", "crear", "--estado", "pendiente")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, campo := range []string{"paciente:", "medico:", "fecha:", "diagnostico:"} {
		if !strings.Contains(out, campo) {
			t.Errorf("expected %q in %q", campo, out)
		}
	}
}

func TestComandos_SinServidor(t *testing.T) {
	if _, err := ejecutar("http://127.0.0.1:1", "especialidades", "listar"); err == nil {
		t.Error("expected connection error")
	}
}

func TestNuevoLogger_Nivel(t *testing.T) {
	tests := []struct {
		nivel string
		want  zerolog.Level
	}{
		{"warn", zerolog.WarnLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"ruido", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		logger := nuevoLogger(&config.Config{LogLevel: tt.nivel, Env: "production"}, &bytes.Buffer{})
		if got := logger.GetLevel(); got != tt.want {
			t.Errorf("nivel %q: got %v, want %v", tt.nivel, got, tt.want)
		}
	}
}
