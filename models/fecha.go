package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Formatos aceptados para la fecha de una consulta. Los dos últimos son los
// que produce un campo datetime-local y se interpretan en hora local.
var formatosFecha = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// FechaHora es una fecha y hora que acepta tanto RFC 3339 como el formato
// de un campo datetime-local. El valor cero representa "sin fecha".
type FechaHora struct {
	time.Time
}

// NuevaFechaHora envuelve un time.Time
func NuevaFechaHora(t time.Time) FechaHora {
	return FechaHora{Time: t}
}

// ParseFechaHora interpreta una cadena con alguno de los formatos aceptados.
// Una cadena vacía devuelve la fecha cero sin error.
func ParseFechaHora(s string) (FechaHora, error) {
	if s == "" {
		return FechaHora{}, nil
	}
	for _, formato := range formatosFecha {
		var (
			t   time.Time
			err error
		)
		if formato == time.RFC3339 || formato == time.RFC3339Nano {
			t, err = time.Parse(formato, s)
		} else {
			t, err = time.ParseInLocation(formato, s, time.Local)
		}
		if err == nil {
			return FechaHora{Time: t}, nil
		}
	}
	return FechaHora{}, fmt.Errorf("fecha inválida %q", s)
}

// MarshalJSON serializa la fecha en RFC 3339, o null si no hay fecha
func (f FechaHora) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}

// UnmarshalJSON acepta null, "" o cualquiera de los formatos aceptados
func (f *FechaHora) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = FechaHora{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	parsed, err := ParseFechaHora(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
