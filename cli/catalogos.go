package cli

import (
	"fmt"

	"github.com/lizet96/clinica-backend/gestor"
	"github.com/spf13/cobra"
)

func especialidadesCmd(e *entorno) *cobra.Command {
	cmd := &cobra.Command{Use: "especialidades", Short: "Catálogo de especialidades"}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista las especialidades",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoEspecialidades(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			w := tabla(e.out)
			fmt.Fprintln(w, "ID\tNOMBRE")
			for _, esp := range g.Lista() {
				fmt.Fprintf(w, "%d\t%s\n", esp.ID, esp.Nombre)
			}
			return w.Flush()
		},
	})

	var nombre string
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Agrega una especialidad",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoEspecialidades(e.api(), e.logger)
			// la lista se usa para rechazar duplicados antes de enviar
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			_, err := g.Enviar(cmd.Context(), nombre)
			return resultado(e.out, g.Mensaje(), err)
		},
	}
	crear.Flags().StringVar(&nombre, "nombre", "", "Nombre de la especialidad")
	cmd.AddCommand(crear)
	return cmd
}

func medicosCmd(e *entorno) *cobra.Command {
	cmd := &cobra.Command{Use: "medicos", Short: "Catálogo de médicos"}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista los médicos",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoMedicos(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			w := tabla(e.out)
			fmt.Fprintln(w, "ID\tNOMBRE\tCÉDULA PROFESIONAL\tESPECIALIDAD\tHORARIO")
			for _, m := range g.Lista() {
				especialidad := m.EspecialidadNombre
				if especialidad == "" {
					especialidad = g.NombreEspecialidad(m.Especialidad)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Nombre, m.CedulaProfesional, especialidad, m.Horario)
			}
			return w.Flush()
		},
	})

	campos := []string{"nombre", "cedula_profesional", "especialidad", "horario"}
	valores := make(map[string]*string, len(campos))
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Agrega un médico",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoMedicos(e.api(), e.logger)
			for _, campo := range campos {
				if err := g.Cambiar(campo, *valores[campo]); err != nil {
					return resultado(e.out, g.Mensaje(), err)
				}
			}
			_, err := g.Enviar(cmd.Context())
			return resultado(e.out, g.Mensaje(), err)
		},
	}
	valores["nombre"] = crear.Flags().String("nombre", "", "Nombre completo")
	valores["cedula_profesional"] = crear.Flags().String("cedula", "", "Cédula profesional")
	valores["especialidad"] = crear.Flags().String("especialidad", "", "ID de la especialidad")
	valores["horario"] = crear.Flags().String("horario", "", "Horario de atención")
	cmd.AddCommand(crear)
	return cmd
}

func pacientesCmd(e *entorno) *cobra.Command {
	cmd := &cobra.Command{Use: "pacientes", Short: "Catálogo de pacientes"}

	cmd.AddCommand(&cobra.Command{
		Use:   "listar",
		Short: "Lista los pacientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoPacientes(e.api(), e.logger)
			if err := g.Cargar(cmd.Context()); err != nil {
				return err
			}
			w := tabla(e.out)
			fmt.Fprintln(w, "ID\tNOMBRE\tCÉDULA\tCORREO\tTELÉFONO")
			for _, p := range g.Lista() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Nombre, p.Cedula, p.Correo, p.Telefono)
			}
			return w.Flush()
		},
	})

	campos := []string{"nombre", "cedula", "correo", "telefono", "direccion"}
	valores := make(map[string]*string, len(campos))
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Registra un paciente",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gestor.NuevoPacientes(e.api(), e.logger)
			for _, campo := range campos {
				if err := g.Cambiar(campo, *valores[campo]); err != nil {
					return err
				}
			}
			_, err := g.Enviar(cmd.Context())
			if err != nil {
				// los errores del formulario quedan en el gestor, incluido "api"
				imprimirErrores(e.out, &gestor.ErrorValidacion{Errores: g.Errores()})
				return err
			}
			imprimirMensaje(e.out, g.Mensaje())
			return nil
		},
	}
	for _, campo := range campos {
		valores[campo] = crear.Flags().String(campo, "", campo+" del paciente")
	}
	cmd.AddCommand(crear)
	return cmd
}
