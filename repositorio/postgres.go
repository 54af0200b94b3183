package repositorio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lizet96/clinica-backend/models"
)

const (
	codigoUnicidad         = "23505"
	codigoLlaveForanea     = "23503"
	codigoRestriccionCheck = "23514"
	codigoValorMuyLargo    = "22001"
)

// Postgres implementa Repositorio sobre un pool de pgx
type Postgres struct {
	pool *pgxpool.Pool
}

// NuevoPostgres crea el repositorio a partir de un pool ya conectado
func NuevoPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// traducirError convierte las violaciones de restricciones en los errores del paquete
func traducirError(err error, contexto string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codigoUnicidad:
			return fmt.Errorf("%s: %w", contexto, ErrDuplicado)
		case codigoLlaveForanea, codigoRestriccionCheck:
			return fmt.Errorf("%s: %w", contexto, ErrReferenciaInvalida)
		case codigoValorMuyLargo:
			return fmt.Errorf("%s: %w", contexto, ErrValorInvalido)
		}
	}
	return fmt.Errorf("%s: %w", contexto, err)
}

func (r *Postgres) ListarPacientes(ctx context.Context) ([]models.Paciente, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_paciente, nombre, cedula, correo, COALESCE(telefono, ''), COALESCE(direccion, '')
		 FROM paciente ORDER BY id_paciente`)
	if err != nil {
		return nil, fmt.Errorf("listar pacientes: %w", err)
	}
	defer rows.Close()

	pacientes := []models.Paciente{}
	for rows.Next() {
		var p models.Paciente
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Cedula, &p.Correo, &p.Telefono, &p.Direccion); err != nil {
			return nil, fmt.Errorf("leer paciente: %w", err)
		}
		pacientes = append(pacientes, p)
	}
	return pacientes, rows.Err()
}

func (r *Postgres) CrearPaciente(ctx context.Context, p *models.Paciente) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO paciente (nombre, cedula, correo, telefono, direccion)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, '')) RETURNING id_paciente`,
		strings.TrimSpace(p.Nombre), p.Cedula, p.Correo, p.Telefono, p.Direccion).Scan(&p.ID)
	if err != nil {
		return traducirError(err, "crear paciente")
	}
	return nil
}

func (r *Postgres) ListarEspecialidades(ctx context.Context) ([]models.Especialidad, error) {
	rows, err := r.pool.Query(ctx, `SELECT id_especialidad, nombre FROM especialidad ORDER BY id_especialidad`)
	if err != nil {
		return nil, fmt.Errorf("listar especialidades: %w", err)
	}
	defer rows.Close()

	especialidades := []models.Especialidad{}
	for rows.Next() {
		var e models.Especialidad
		if err := rows.Scan(&e.ID, &e.Nombre); err != nil {
			return nil, fmt.Errorf("leer especialidad: %w", err)
		}
		especialidades = append(especialidades, e)
	}
	return especialidades, rows.Err()
}

func (r *Postgres) CrearEspecialidad(ctx context.Context, e *models.Especialidad) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO especialidad (nombre) VALUES ($1) RETURNING id_especialidad`,
		strings.TrimSpace(e.Nombre)).Scan(&e.ID)
	if err != nil {
		return traducirError(err, "crear especialidad")
	}
	return nil
}

func (r *Postgres) ListarMedicos(ctx context.Context) ([]models.Medico, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id_medico, m.nombre, m.cedula_profesional, m.id_especialidad,
		        COALESCE(e.nombre, ''), m.horario
		 FROM medico m
		 LEFT JOIN especialidad e ON e.id_especialidad = m.id_especialidad
		 ORDER BY m.id_medico`)
	if err != nil {
		return nil, fmt.Errorf("listar médicos: %w", err)
	}
	defer rows.Close()

	medicos := []models.Medico{}
	for rows.Next() {
		var m models.Medico
		if err := rows.Scan(&m.ID, &m.Nombre, &m.CedulaProfesional, &m.Especialidad, &m.EspecialidadNombre, &m.Horario); err != nil {
			return nil, fmt.Errorf("leer médico: %w", err)
		}
		medicos = append(medicos, m)
	}
	return medicos, rows.Err()
}

func (r *Postgres) CrearMedico(ctx context.Context, m *models.Medico) error {
	err := r.pool.QueryRow(ctx,
		`WITH nuevo AS (
		     INSERT INTO medico (nombre, cedula_profesional, id_especialidad, horario)
		     VALUES ($1, $2, $3, $4) RETURNING id_medico, id_especialidad
		 )
		 SELECT nuevo.id_medico, e.nombre
		 FROM nuevo JOIN especialidad e ON e.id_especialidad = nuevo.id_especialidad`,
		strings.TrimSpace(m.Nombre), m.CedulaProfesional, m.Especialidad, m.Horario).
		Scan(&m.ID, &m.EspecialidadNombre)
	if err != nil {
		return traducirError(err, "crear médico")
	}
	return nil
}

const selectConsultas = `
	SELECT c.id_consulta, c.id_paciente, COALESCE(p.nombre, ''), c.id_medico, COALESCE(m.nombre, ''),
	       c.fecha, c.estado, c.diagnostico, c.duracion
	FROM consulta c
	LEFT JOIN paciente p ON p.id_paciente = c.id_paciente
	LEFT JOIN medico m ON m.id_medico = c.id_medico`

func scanConsulta(row pgx.Row) (models.Consulta, error) {
	var c models.Consulta
	err := row.Scan(&c.ID, &c.Paciente.ID, &c.Paciente.Nombre, &c.Medico.ID, &c.Medico.Nombre,
		&c.Fecha.Time, &c.Estado, &c.Diagnostico, &c.Duracion)
	return c, err
}

func (r *Postgres) ListarConsultas(ctx context.Context) ([]models.Consulta, error) {
	rows, err := r.pool.Query(ctx, selectConsultas+` ORDER BY c.fecha, c.id_consulta`)
	if err != nil {
		return nil, fmt.Errorf("listar consultas: %w", err)
	}
	defer rows.Close()

	consultas := []models.Consulta{}
	for rows.Next() {
		c, err := scanConsulta(rows)
		if err != nil {
			return nil, fmt.Errorf("leer consulta: %w", err)
		}
		consultas = append(consultas, c)
	}
	return consultas, rows.Err()
}

func (r *Postgres) CrearConsulta(ctx context.Context, nueva models.NuevaConsulta) (models.Consulta, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO consulta (id_paciente, id_medico, fecha, estado, diagnostico, duracion)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id_consulta`,
		nueva.Paciente, nueva.Medico, nueva.Fecha.Time, nueva.Estado,
		strings.TrimSpace(nueva.Diagnostico), nueva.Duracion).Scan(&id)
	if err != nil {
		return models.Consulta{}, traducirError(err, "crear consulta")
	}

	c, err := scanConsulta(r.pool.QueryRow(ctx, selectConsultas+` WHERE c.id_consulta = $1`, id))
	if err != nil {
		return models.Consulta{}, fmt.Errorf("leer consulta creada: %w", err)
	}
	return c, nil
}
