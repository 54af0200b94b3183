package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/clinica-backend/handlers"
	"github.com/lizet96/clinica-backend/repositorio"
	"github.com/rs/zerolog"
)

func nuevaApp() *fiber.App {
	h := handlers.New(repositorio.NuevaMemoria(), nil, zerolog.Nop())
	return NewApp(h, Opciones{}, zerolog.Nop())
}

func TestHealth(t *testing.T) {
	resp, err := nuevaApp().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestRutaNoEncontrada(t *testing.T) {
	resp, err := nuevaApp().Test(httptest.NewRequest("GET", "/api/recetas", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] != true || body["path"] != "/api/recetas" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestColecciones(t *testing.T) {
	app := nuevaApp()
	for _, path := range []string{
		"/api/consultas/", "/api/consultas", "/api/pacientes/", "/api/medicos/",
		"/api/especialidades/", "/api/diagnosticos", "/api/consultas/estadisticas",
		"/api/consultas/estados", "/api/reportes/consultas",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestCrearConErrorDevuelve400(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/especialidades/", strings.NewReader(`{"nombre":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := nuevaApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
