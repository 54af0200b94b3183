package models

// Especialidad representa la tabla especialidad
type Especialidad struct {
	ID     int    `json:"id" db:"id_especialidad"`
	Nombre string `json:"nombre" db:"nombre"`
}
