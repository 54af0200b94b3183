package models

import "strings"

// DiagnosticosPredefinidos es el catálogo que se ofrece al registrar una consulta
var DiagnosticosPredefinidos = []Opcion{
	{Valor: "resfriado_comun", Etiqueta: "Resfriado común"},
	{Valor: "hipertension_arterial", Etiqueta: "Hipertensión arterial"},
	{Valor: "diabetes_mellitus", Etiqueta: "Diabetes mellitus"},
	{Valor: "gastritis", Etiqueta: "Gastritis"},
	{Valor: "ansiedad_generalizada", Etiqueta: "Ansiedad generalizada"},
	{Valor: "lumbalgia", Etiqueta: "Lumbalgia"},
	{Valor: "migrana", Etiqueta: "Migraña"},
	{Valor: "asma", Etiqueta: "Asma"},
	{Valor: "artritis", Etiqueta: "Artritis"},
	{Valor: "depresion", Etiqueta: "Depresión"},
	{Valor: "influenza", Etiqueta: "Influenza (Gripe)"},
	{Valor: "bronquitis_aguda", Etiqueta: "Bronquitis aguda"},
	{Valor: "neumonia", Etiqueta: "Neumonía"},
	{Valor: "cardiopatia_isquemica", Etiqueta: "Cardiopatía isquémica"},
	{Valor: "arritmia_cardiaca", Etiqueta: "Arritmia cardíaca"},
}

// DiagnosticoPorValor busca un diagnóstico predefinido por su clave
func DiagnosticoPorValor(valor string) (Opcion, bool) {
	for _, d := range DiagnosticosPredefinidos {
		if d.Valor == valor {
			return d, true
		}
	}
	return Opcion{}, false
}

// DiagnosticoPorEtiqueta busca un diagnóstico predefinido cuya etiqueta
// coincida sin distinguir mayúsculas
func DiagnosticoPorEtiqueta(etiqueta string) (Opcion, bool) {
	etiqueta = strings.ToLower(strings.TrimSpace(etiqueta))
	for _, d := range DiagnosticosPredefinidos {
		if strings.ToLower(d.Etiqueta) == etiqueta {
			return d, true
		}
	}
	return Opcion{}, false
}
