package database

import (
	"strings"
	"testing"
)

func TestSchema_Tablas(t *testing.T) {
	ddl := Schema()
	for _, tabla := range []string{"especialidad", "paciente", "medico", "consulta"} {
		if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+tabla+" ") {
			t.Errorf("schema is missing table %s", tabla)
		}
	}
}

func TestSchema_Unicidad(t *testing.T) {
	ddl := Schema()
	for _, fragmento := range []string{
		"LOWER(TRIM(nombre))",
		"cedula_profesional VARCHAR(50)  NOT NULL UNIQUE",
		"UNIQUE (id_medico, fecha)",
		"'pendiente', 'falta', 'realizada'",
	} {
		if !strings.Contains(ddl, fragmento) {
			t.Errorf("schema is missing %q", fragmento)
		}
	}
}
