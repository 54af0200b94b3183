package validacion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lizet96/clinica-backend/models"
)

var (
	correoRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cedulaRegex   = regexp.MustCompile(`^[0-9]{7,10}$`)
	telefonoRegex = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// ValidarPaciente aplica las reglas del formulario de pacientes
func ValidarPaciente(p models.Paciente) Errores {
	errores := Errores{}

	if strings.TrimSpace(p.Nombre) == "" {
		errores["nombre"] = "El nombre es requerido"
	} else if utf8.RuneCountInString(p.Nombre) < 3 {
		errores["nombre"] = "El nombre debe tener al menos 3 caracteres"
	} else if excede(p.Nombre, MaxNombre) {
		errores["nombre"] = "El nombre no puede exceder 150 caracteres"
	}

	if strings.TrimSpace(p.Cedula) == "" {
		errores["cedula"] = "La cédula es requerida"
	} else if !cedulaRegex.MatchString(p.Cedula) {
		errores["cedula"] = "La cédula debe tener entre 7 y 10 dígitos"
	}

	if strings.TrimSpace(p.Correo) == "" {
		errores["correo"] = "El correo es requerido"
	} else if !correoRegex.MatchString(p.Correo) {
		errores["correo"] = "Ingrese un correo electrónico válido"
	} else if excede(p.Correo, MaxCorreo) {
		errores["correo"] = "El correo no puede exceder 150 caracteres"
	}

	// el teléfono es opcional
	if p.Telefono != "" && !telefonoRegex.MatchString(p.Telefono) {
		errores["telefono"] = "Ingrese un número de teléfono válido (7-15 dígitos)"
	}

	if excede(p.Direccion, MaxDireccion) {
		errores["direccion"] = "La dirección no puede exceder 255 caracteres"
	}

	return errores
}
