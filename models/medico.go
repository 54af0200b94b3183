package models

// Medico representa la tabla medico. EspecialidadNombre solo se llena al
// leer; al crear basta con el id de la especialidad.
type Medico struct {
	ID                 int    `json:"id" db:"id_medico"`
	Nombre             string `json:"nombre" db:"nombre"`
	CedulaProfesional  string `json:"cedula_profesional" db:"cedula_profesional"`
	Especialidad       int    `json:"especialidad" db:"id_especialidad"`
	EspecialidadNombre string `json:"especialidad_nombre,omitempty"`
	Horario            string `json:"horario" db:"horario"`
}
