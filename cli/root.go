// Package cli arma los comandos de la clínica: el servidor de la API, la
// migración del esquema y los comandos de administración que hablan con la API.
package cli

import (
	"io"
	"strings"

	"github.com/lizet96/clinica-backend/cliente"
	"github.com/lizet96/clinica-backend/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// entorno se llena en PersistentPreRunE y lo comparten todos los subcomandos
type entorno struct {
	cfg    *config.Config
	logger zerolog.Logger
	out    io.Writer
}

func (e *entorno) api() *cliente.Cliente {
	return cliente.New(e.cfg.APIURL, e.cfg.HTTPTimeout, e.logger)
}

// NewRootCmd devuelve el comando raíz con todos los subcomandos registrados
func NewRootCmd() *cobra.Command {
	e := &entorno{}
	var apiURL string

	rootCmd := &cobra.Command{
		Use:           "clinica",
		Short:         "Administración de consultas, pacientes, médicos y especialidades",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = strings.TrimRight(apiURL, "/")
			}
			e.cfg = cfg
			e.logger = nuevoLogger(cfg, cmd.ErrOrStderr())
			e.out = cmd.OutOrStdout()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "URL base de la API (sobrescribe API_URL)")

	rootCmd.AddCommand(serveCmd(e))
	rootCmd.AddCommand(migrateCmd(e))
	rootCmd.AddCommand(consultasCmd(e))
	rootCmd.AddCommand(especialidadesCmd(e))
	rootCmd.AddCommand(medicosCmd(e))
	rootCmd.AddCommand(pacientesCmd(e))
	return rootCmd
}

// Execute corre el comando raíz con los argumentos del proceso
func Execute() error {
	return NewRootCmd().Execute()
}

// nuevoLogger usa JSON en producción y salida legible en desarrollo
func nuevoLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	nivel, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || nivel == zerolog.NoLevel {
		nivel = zerolog.InfoLevel
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return logger.Level(nivel)
}
