package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/lizet96/clinica-backend/gestor"
)

func tabla(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func imprimirJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func imprimirMensaje(w io.Writer, m gestor.Mensaje) {
	if m.Texto != "" {
		fmt.Fprintln(w, m.Texto)
	}
}

// imprimirErrores muestra los errores por campo de una validación fallida,
// ordenados por campo
func imprimirErrores(w io.Writer, err error) {
	var ev *gestor.ErrorValidacion
	if !errors.As(err, &ev) {
		return
	}
	campos := make([]string, 0, len(ev.Errores))
	for campo := range ev.Errores {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	for _, campo := range campos {
		fmt.Fprintf(w, "  %s: %s\n", campo, ev.Errores[campo])
	}
}

// resultado imprime el mensaje y los errores de una alta y devuelve el error
func resultado(w io.Writer, m gestor.Mensaje, err error) error {
	imprimirMensaje(w, m)
	imprimirErrores(w, err)
	return err
}
