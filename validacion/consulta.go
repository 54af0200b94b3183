package validacion

import (
	"regexp"
	"strings"
	"time"

	"github.com/lizet96/clinica-backend/models"
)

// Letras (incluidas las acentuadas), dígitos, espacios y .,;:()-
var diagnosticoRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ0-9\s.,;:()\-]+$`)

const (
	MsgPacienteRequerido     = "Debe seleccionar un paciente."
	MsgMedicoRequerido       = "Debe seleccionar un médico."
	MsgFechaRequerida        = "Debe ingresar la fecha de la consulta."
	MsgFechaPasada           = "La fecha debe ser posterior a la fecha y hora actual."
	MsgEstadoRequerido       = "Debe seleccionar un estado."
	MsgEstadoInvalido        = "El estado seleccionado no es válido."
	MsgDiagnosticoRequerido  = "Debe ingresar un diagnóstico."
	MsgDiagnosticoInvalido   = "El diagnóstico contiene caracteres no válidos"
	MsgDiagnosticoCaracteres = "El diagnóstico solo puede contener letras, números y signos de puntuación básicos"
	MsgDuracionInvalida      = "La duración debe ser un número positivo de minutos."
)

// DiagnosticoValido indica si el texto solo contiene caracteres permitidos
func DiagnosticoValido(diagnostico string) bool {
	return diagnosticoRegex.MatchString(diagnostico)
}

// ValidarConsulta revisa el borrador de una consulta contra el instante ahora
func ValidarConsulta(c models.NuevaConsulta, ahora time.Time) Errores {
	errores := Errores{}

	if c.Paciente <= 0 {
		errores["paciente"] = MsgPacienteRequerido
	}
	if c.Medico <= 0 {
		errores["medico"] = MsgMedicoRequerido
	}

	if c.Fecha.IsZero() {
		errores["fecha"] = MsgFechaRequerida
	} else if c.Fecha.Before(ahora) {
		errores["fecha"] = MsgFechaPasada
	}

	if c.Estado == "" {
		errores["estado"] = MsgEstadoRequerido
	} else if !models.EstadoValido(c.Estado) {
		errores["estado"] = MsgEstadoInvalido
	}

	if strings.TrimSpace(c.Diagnostico) == "" {
		errores["diagnostico"] = MsgDiagnosticoRequerido
	} else if !DiagnosticoValido(c.Diagnostico) {
		errores["diagnostico"] = MsgDiagnosticoInvalido
	}

	if c.Duracion != nil && *c.Duracion <= 0 {
		errores["duracion"] = MsgDuracionInvalida
	}

	return errores
}
