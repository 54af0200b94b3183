// Package gestor mantiene el estado de cada pantalla de administración:
// la lista cargada del servidor, el borrador del formulario y sus errores.
package gestor

import (
	"errors"

	"github.com/lizet96/clinica-backend/validacion"
)

// ErrValidacion indica que el borrador no pasó la validación local y que la
// petición no se envió
var ErrValidacion = errors.New("datos inválidos")

type TipoMensaje string

const (
	MensajeExito TipoMensaje = "exito"
	MensajeError TipoMensaje = "error"
)

// Mensaje es la notificación que se muestra tras una acción
type Mensaje struct {
	Tipo  TipoMensaje `json:"tipo"`
	Texto string      `json:"texto"`
}

func exito(texto string) Mensaje { return Mensaje{Tipo: MensajeExito, Texto: texto} }
func fallo(texto string) Mensaje { return Mensaje{Tipo: MensajeError, Texto: texto} }

// ErrorValidacion lleva los mensajes por campo de una validación fallida
type ErrorValidacion struct {
	Errores validacion.Errores
}

func (e *ErrorValidacion) Error() string {
	return "datos inválidos: " + e.Errores.Error()
}

func (e *ErrorValidacion) Unwrap() error { return ErrValidacion }

func copiarErrores(e validacion.Errores) validacion.Errores {
	c := make(validacion.Errores, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}
