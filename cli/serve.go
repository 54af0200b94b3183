package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lizet96/clinica-backend/config"
	"github.com/lizet96/clinica-backend/database"
	"github.com/lizet96/clinica-backend/events"
	"github.com/lizet96/clinica-backend/handlers"
	"github.com/lizet96/clinica-backend/repositorio"
	"github.com/lizet96/clinica-backend/routes"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const tiempoApagado = 10 * time.Second

func serveCmd(e *entorno) *cobra.Command {
	var sinMigrar bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor de la API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), e.cfg, !sinMigrar)
		},
	}
	cmd.Flags().BoolVar(&sinMigrar, "sin-migrar", false, "No aplica el esquema al arrancar")
	return cmd
}

func migrateCmd(e *entorno) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de la base de datos",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := nuevoLogger(e.cfg, os.Stdout)
			pool, err := conectar(cmd.Context(), e.cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			logger.Info().Msg("Esquema aplicado")
			return nil
		},
	}
}

func conectar(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	if err := cfg.ValidarServidor(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return database.ConnectDB(ctx, database.Opciones{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, logger)
}

// nuevoPublicador usa Kafka cuando hay brokers configurados
func nuevoPublicador(cfg *config.Config, logger zerolog.Logger) (events.Publicador, error) {
	if !cfg.KafkaHabilitado() {
		logger.Info().Msg("KAFKA_BROKERS vacío, no se publican eventos")
		return events.Nulo{}, nil
	}
	publicador, err := events.NuevoKafkaPublicador(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("Publicando eventos en Kafka")
	return publicador, nil
}

func runServer(ctx context.Context, cfg *config.Config, migrar bool) error {
	logger := nuevoLogger(cfg, os.Stdout)

	pool, err := conectar(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info().Msg("Conexión a la base de datos establecida")

	if migrar {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	publicador, err := nuevoPublicador(cfg, logger)
	if err != nil {
		return err
	}
	defer publicador.Close()

	h := handlers.New(repositorio.NuevoPostgres(pool), publicador, logger)
	app := routes.NewApp(h, routes.Opciones{
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		BodyLimit:       cfg.BodyLimit,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("Servidor de la clínica iniciado")
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("servidor: %w", err)
	case <-quit:
	}

	logger.Info().Msg("Apagando servidor")
	if err := app.ShutdownWithTimeout(tiempoApagado); err != nil {
		return fmt.Errorf("apagar servidor: %w", err)
	}
	logger.Info().Msg("Servidor detenido")
	return nil
}
