// Package validacion contiene las reglas de validación de los formularios de
// la clínica. Las mismas funciones las usan los gestores antes de enviar una
// petición y los handlers antes de escribir en la base de datos.
package validacion

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Longitudes máximas, iguales a las columnas VARCHAR del esquema
const (
	MaxNombre             = 150
	MaxCorreo             = 150
	MaxDireccion          = 255
	MaxNombreEspecialidad = 100
	MaxCedulaProfesional  = 50
	MaxHorario            = 100
)

// excede cuenta caracteres, no bytes, como lo hace VARCHAR
func excede(valor string, max int) bool {
	return utf8.RuneCountInString(valor) > max
}

// Errores asocia el nombre de un campo con su mensaje de error
type Errores map[string]string

// Vacio indica si no hay errores
func (e Errores) Vacio() bool {
	return len(e) == 0
}

// Campos devuelve los nombres de campo con error en orden alfabético
func (e Errores) Campos() []string {
	campos := make([]string, 0, len(e))
	for campo := range e {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	return campos
}

// Error implementa error para poder devolver Errores directamente
func (e Errores) Error() string {
	partes := make([]string, 0, len(e))
	for _, campo := range e.Campos() {
		partes = append(partes, campo+": "+e[campo])
	}
	return strings.Join(partes, "; ")
}
