package validacion

import (
	"errors"
	"regexp"
	"strings"

	"github.com/lizet96/clinica-backend/models"
)

var especialidadRegex = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ\s]{3,}$`)

var (
	ErrEspecialidadRequerida = errors.New("El nombre de la especialidad es obligatorio.")
	ErrEspecialidadFormato   = errors.New("El nombre debe tener al menos 3 letras y solo puede contener letras y espacios.")
	ErrEspecialidadDuplicada = errors.New("La especialidad ya está registrada.")
	ErrEspecialidadLarga     = errors.New("El nombre de la especialidad no puede exceder 100 caracteres.")
)

// NombreEspecialidadValido aplica el patrón de letras y espacios
func NombreEspecialidadValido(nombre string) bool {
	return especialidadRegex.MatchString(nombre)
}

// EspecialidadExiste compara sin distinguir mayúsculas y sin espacios en los extremos
func EspecialidadExiste(nombre string, existentes []models.Especialidad) bool {
	clave := strings.ToLower(strings.TrimSpace(nombre))
	for _, e := range existentes {
		if strings.ToLower(strings.TrimSpace(e.Nombre)) == clave {
			return true
		}
	}
	return false
}

// ValidarEspecialidad recorta el nombre y lo revisa en orden: obligatorio,
// formato, longitud y duplicado. Devuelve el nombre recortado.
func ValidarEspecialidad(nombre string, existentes []models.Especialidad) (string, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nombre, ErrEspecialidadRequerida
	}
	if !NombreEspecialidadValido(nombre) {
		return nombre, ErrEspecialidadFormato
	}
	if excede(nombre, MaxNombreEspecialidad) {
		return nombre, ErrEspecialidadLarga
	}
	if EspecialidadExiste(nombre, existentes) {
		return nombre, ErrEspecialidadDuplicada
	}
	return nombre, nil
}
