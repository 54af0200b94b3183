package models

// Paciente representa la tabla paciente
type Paciente struct {
	ID        int    `json:"id" db:"id_paciente"`
	Nombre    string `json:"nombre" db:"nombre"`
	Cedula    string `json:"cedula" db:"cedula"`
	Correo    string `json:"correo" db:"correo"`
	Telefono  string `json:"telefono,omitempty" db:"telefono"`
	Direccion string `json:"direccion,omitempty" db:"direccion"`
}
