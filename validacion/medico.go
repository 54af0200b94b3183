package validacion

import (
	"regexp"
	"strings"

	"github.com/lizet96/clinica-backend/models"
)

var (
	nombreMedicoRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
	cedulaProfRegex   = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

const (
	MsgNombreMedico          = "El nombre solo puede contener letras y espacios"
	MsgCedulaProfesional     = "La cédula profesional solo puede contener letras y números"
	MsgEspecialidadRequerida = "Debe seleccionar una especialidad."
	MsgHorarioRequerido      = "Debe ingresar el horario."
	MsgNombreMedicoLargo     = "El nombre no puede exceder 150 caracteres"
	MsgCedulaProfLarga       = "La cédula profesional no puede exceder 50 caracteres"
	MsgHorarioLargo          = "El horario no puede exceder 100 caracteres"
)

// ValidarCampoMedico valida un campo mientras se edita. Un valor vacío se
// acepta para permitir borrar el campo.
func ValidarCampoMedico(campo, valor string) string {
	if valor == "" {
		return ""
	}
	switch campo {
	case "nombre":
		if !nombreMedicoRegex.MatchString(valor) {
			return MsgNombreMedico
		}
	case "cedula_profesional":
		if !cedulaProfRegex.MatchString(valor) {
			return MsgCedulaProfesional
		}
	}
	return ""
}

// ValidarMedico valida el médico completo antes de enviarlo
func ValidarMedico(m models.Medico) Errores {
	errores := Errores{}
	if !nombreMedicoRegex.MatchString(m.Nombre) {
		errores["nombre"] = MsgNombreMedico
	} else if excede(m.Nombre, MaxNombre) {
		errores["nombre"] = MsgNombreMedicoLargo
	}
	if !cedulaProfRegex.MatchString(m.CedulaProfesional) {
		errores["cedula_profesional"] = MsgCedulaProfesional
	} else if excede(m.CedulaProfesional, MaxCedulaProfesional) {
		errores["cedula_profesional"] = MsgCedulaProfLarga
	}
	if m.Especialidad <= 0 {
		errores["especialidad"] = MsgEspecialidadRequerida
	}
	if strings.TrimSpace(m.Horario) == "" {
		errores["horario"] = MsgHorarioRequerido
	} else if excede(m.Horario, MaxHorario) {
		errores["horario"] = MsgHorarioLargo
	}
	return errores
}
