package export

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// createTableTemplate is the flat companies table. Flags are real booleans
// so analytical queries can filter on them directly.
const createTableTemplate = `CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	duns TEXT NOT NULL,
	display_name TEXT NOT NULL,
	country_of_registration TEXT NOT NULL,
	homepage TEXT NOT NULL,
	short_description TEXT NOT NULL,
	company_type TEXT NOT NULL,
	credit_rating_value TEXT NOT NULL,
	credit_rating_description TEXT NOT NULL,
	compliance_flag_adverse_media BOOLEAN NOT NULL,
	compliance_flag_enforcements BOOLEAN NOT NULL,
	compliance_flag_state_owned BOOLEAN NOT NULL,
	compliance_flag_persons_of_interest BOOLEAN NOT NULL,
	compliance_flag_current_sanctions BOOLEAN NOT NULL,
	compliance_flag_former_sanctions BOOLEAN NOT NULL,
	compliance_flag_current_peps BOOLEAN NOT NULL,
	compliance_flag_former_peps BOOLEAN NOT NULL,
	latest_security_rating_grade TEXT NOT NULL,
	latest_security_rating_date TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresSink persists flattened company rows into Postgres.
type PostgresSink struct {
	db    *sql.DB
	table string
}

// NewPostgresSink opens a connection pool for the given DSN.
func NewPostgresSink(dsn, table string) (*PostgresSink, error) {
	if table == "" {
		table = "companies"
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	return &PostgresSink{db: db, table: table}, nil
}

// EnsureTable creates the companies table if it does not exist.
func (s *PostgresSink) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(createTableTemplate, s.table)); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Save upserts every row, keyed on id. Rows are written in one statement
// batch per call; a failed write fails the whole call, nothing partial.
func (s *PostgresSink) Save(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	builder := sq.Insert(s.table).
		Columns(Columns...).
		PlaceholderFormat(sq.Dollar).
		Suffix(upsertSuffix())

	for _, row := range rows {
		builder = builder.Values(row.values()...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d rows into %s: %w", len(rows), s.table, err)
	}
	return nil
}

// upsertSuffix updates every non-key column on conflict.
func upsertSuffix() string {
	suffix := "ON CONFLICT (id) DO UPDATE SET "
	for i, col := range Columns[1:] {
		if i > 0 {
			suffix += ", "
		}
		suffix += col + " = EXCLUDED." + col
	}
	return suffix + ", updated_at = NOW()"
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
