package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Opciones del pool de conexiones
type Opciones struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// ConnectDB crea el pool de conexiones y comprueba que la base responde
func ConnectDB(ctx context.Context, opts Opciones, logger zerolog.Logger) (*pgxpool.Pool, error) {
	// DATABASE_URL contiene la cadena de conexión a PostgreSQL
	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsear la URL de la base de datos: %w", err)
	}
	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("crear el pool de conexiones: %w", err)
	}

	// Probar si la base de datos está viva haciendo una consulta rápida
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := pool.QueryRow(pingCtx, "SELECT version()").Scan(&version); err != nil {
		pool.Close()
		return nil, fmt.Errorf("probar la conexión: %w", err)
	}

	logger.Info().Str("version", version).Msg("conectado a la base de datos")
	return pool, nil
}
