package models

// Estados posibles de una consulta
const (
	EstadoPendiente = "pendiente"
	EstadoFalta     = "falta"
	EstadoRealizada = "realizada"
)

// Opcion es un par valor/etiqueta para listas de selección
type Opcion struct {
	Valor    string `json:"value"`
	Etiqueta string `json:"label"`
}

// EstadosConsulta lista los estados en el orden en que se muestran
var EstadosConsulta = []Opcion{
	{Valor: EstadoPendiente, Etiqueta: "Pendiente"},
	{Valor: EstadoFalta, Etiqueta: "Falta"},
	{Valor: EstadoRealizada, Etiqueta: "Realizada"},
}

// EstadoValido indica si el estado pertenece a la enumeración
func EstadoValido(estado string) bool {
	for _, e := range EstadosConsulta {
		if e.Valor == estado {
			return true
		}
	}
	return false
}

// EtiquetaEstado devuelve la etiqueta legible de un estado, o "N/A"
func EtiquetaEstado(estado string) string {
	for _, e := range EstadosConsulta {
		if e.Valor == estado {
			return e.Etiqueta
		}
	}
	return "N/A"
}

// Referencia identifica a un paciente o médico dentro de una consulta
type Referencia struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Consulta representa una consulta tal como la devuelve la API
type Consulta struct {
	ID          int        `json:"id" db:"id_consulta"`
	Paciente    Referencia `json:"paciente"`
	Medico      Referencia `json:"medico"`
	Fecha       FechaHora  `json:"fecha" db:"fecha"`
	Estado      string     `json:"estado" db:"estado"`
	Diagnostico string     `json:"diagnostico" db:"diagnostico"`
	Duracion    *int       `json:"duracion,omitempty" db:"duracion"`
}

// NuevaConsulta es el borrador de una consulta y el cuerpo de su creación
type NuevaConsulta struct {
	Paciente    int       `json:"paciente"`
	Medico      int       `json:"medico"`
	Fecha       FechaHora `json:"fecha"`
	Estado      string    `json:"estado"`
	Diagnostico string    `json:"diagnostico"`
	Duracion    *int      `json:"duracion,omitempty"`
}
