package cli

import (
	"fmt"
	"sort"

	"github.com/lizet96/clinica-backend/estadisticas"
	"github.com/lizet96/clinica-backend/exportar"
	"github.com/lizet96/clinica-backend/gestor"
	"github.com/lizet96/clinica-backend/models"
	"github.com/spf13/cobra"
)

func consultasCmd(e *entorno) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultas",
		Short: "Lista, registra y resume consultas",
	}
	cmd.AddCommand(listarConsultasCmd(e))
	cmd.AddCommand(crearConsultaCmd(e))
	cmd.AddCommand(estadisticasCmd(e))
	cmd.AddCommand(exportarCmd(e))
	cmd.AddCommand(diagnosticosCmd(e))
	return cmd
}

func flagsFiltros(cmd *cobra.Command, f *estadisticas.Filtros) {
	cmd.Flags().StringVar(&f.Paciente, "paciente", "", "Filtra por nombre de paciente")
	cmd.Flags().StringVar(&f.Medico, "medico", "", "Filtra por nombre de médico")
	cmd.Flags().StringVar(&f.Estado, "estado", "", "Filtra por estado (pendiente, falta, realizada)")
	cmd.Flags().StringVar(&f.Diagnostico, "diagnostico", "", "Filtra por diagnóstico")
}

func listarConsultasCmd(e *entorno) *cobra.Command {
	var (
		filtros  estadisticas.Filtros
		comoJSON bool
	)
	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista las consultas registradas",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoConsultas(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			g.Filtrar(filtros)
			consultas := g.Filtradas()
			if comoJSON {
				return imprimirJSON(e.out, consultas)
			}
			if len(consultas) == 0 {
				fmt.Fprintln(e.out, "No hay consultas registradas")
				return nil
			}

			w := tabla(e.out)
			fmt.Fprintln(w, "ID\tPACIENTE\tMÉDICO\tFECHA\tESTADO\tDIAGNÓSTICO\tDURACIÓN")
			for _, c := range consultas {
				fecha := "N/A"
				if !c.Fecha.IsZero() {
					fecha = c.Fecha.Format("2006-01-02 15:04")
				}
				duracion := "-"
				if c.Duracion != nil {
					duracion = fmt.Sprintf("%d min", *c.Duracion)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Paciente.Nombre, c.Medico.Nombre,
					fecha, models.EtiquetaEstado(c.Estado), c.Diagnostico, duracion)
			}
			return w.Flush()
		},
	}
	flagsFiltros(cmd, &filtros)
	cmd.Flags().BoolVar(&comoJSON, "json", false, "Imprime en JSON")
	return cmd
}

func crearConsultaCmd(e *entorno) *cobra.Command {
	// el diagnóstico predefinido va antes que el libre porque lo reemplaza
	campos := []string{"paciente", "medico", "fecha", "estado", "predefinido", "diagnostico", "duracion"}
	valores := make(map[string]*string, len(campos))

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Registra una consulta",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoConsultas(e.api(), e.logger)
			for _, campo := range campos {
				if !cmd.Flags().Changed(campo) {
					continue
				}
				if err := g.Cambiar(campo, *valores[campo]); err != nil {
					return resultado(e.out, g.Mensaje(), err)
				}
			}

			creada, err := g.Enviar(cmd.Context())
			if err != nil {
				return resultado(e.out, g.Mensaje(), err)
			}
			imprimirMensaje(e.out, g.Mensaje())
			fmt.Fprintf(e.out, "ID: %d\n", creada.ID)
			return nil
		},
	}
	ayuda := map[string]string{
		"paciente":    "ID del paciente",
		"medico":      "ID del médico",
		"fecha":       "Fecha y hora (2006-01-02T15:04 o RFC 3339)",
		"estado":      "Estado: pendiente, falta o realizada",
		"predefinido": "Clave de un diagnóstico predefinido",
		"diagnostico": "Diagnóstico libre",
		"duracion":    "Duración en minutos",
	}
	for _, campo := range campos {
		valores[campo] = cmd.Flags().String(campo, "", ayuda[campo])
	}
	return cmd
}

func estadisticasCmd(e *entorno) *cobra.Command {
	var comoJSON bool
	cmd := &cobra.Command{
		Use:   "estadisticas",
		Short: "Muestra los indicadores de las consultas",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoConsultas(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			est := g.Estadisticas()
			if comoJSON {
				return imprimirJSON(e.out, est)
			}
			return imprimirEstadisticas(e, est)
		},
	}
	cmd.Flags().BoolVar(&comoJSON, "json", false, "Imprime en JSON")
	return cmd
}

func imprimirEstadisticas(e *entorno, est estadisticas.Estadisticas) error {
	w := tabla(e.out)

	fmt.Fprintln(w, "Consultas por especialidad")
	for _, c := range est.EspecialidadesOrdenadas {
		fmt.Fprintf(w, "  %s\t%d\n", c.Especialidad, c.Consultas)
	}

	fmt.Fprintln(w, "Médico con más consultas por especialidad")
	for _, l := range est.MedicosLideres {
		fmt.Fprintf(w, "  %s\t%s\t%d\n", l.Especialidad, l.Medico, l.Consultas)
	}

	fmt.Fprintln(w, "Consultas por médico")
	nombres := make([]string, 0, len(est.ConsultasPorMedico))
	for nombre := range est.ConsultasPorMedico {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	for _, nombre := range nombres {
		fmt.Fprintf(w, "  %s\t%d\n", nombre, est.ConsultasPorMedico[nombre])
	}

	fmt.Fprintln(w, "Médicos con más minutos de consulta")
	for _, o := range est.MedicosOcupados {
		fmt.Fprintf(w, "  %s\t%s\t%d min\n", o.Nombre, o.Especialidad, o.Minutos)
	}

	fmt.Fprintln(w, "Pacientes con más de dos faltas")
	for _, p := range est.PacientesFaltantes {
		ultima := "N/A"
		if p.UltimaFalta != nil {
			ultima = p.UltimaFalta.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\n", p.Nombre, p.Faltas, ultima)
	}

	fmt.Fprintf(w, "Diagnóstico más frecuente\t%s\t%d\n", est.DiagnosticoMasFrecuente.Nombre, est.DiagnosticoMasFrecuente.Consultas)
	return w.Flush()
}

func exportarCmd(e *entorno) *cobra.Command {
	var (
		filtros estadisticas.Filtros
		archivo string
	)
	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Guarda las consultas y sus estadísticas en un archivo xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoConsultas(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			g.Filtrar(filtros)
			consultas := g.Filtradas()
			if err := exportar.Guardar(archivo, consultas, g.Estadisticas()); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%d consultas exportadas a %s\n", len(consultas), archivo)
			return nil
		},
	}
	flagsFiltros(cmd, &filtros)
	cmd.Flags().StringVar(&archivo, "archivo", "consultas.xlsx", "Archivo de salida")
	return cmd
}

func diagnosticosCmd(e *entorno) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnosticos",
		Short: "Lista los diagnósticos predefinidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			opciones, err := e.api().ListarDiagnosticos(cmd.Context())
			if err != nil {
				return err
			}
			w := tabla(e.out)
			for _, o := range opciones {
				fmt.Fprintf(w, "%s\t%s\n", o.Valor, o.Etiqueta)
			}
			return w.Flush()
		},
	}
}
