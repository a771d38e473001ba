package storage

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/connscan/connscan/internal/model"
)

// Postgres is an optional second sink for scan history, enabled by
// configuring a DSN.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *Postgres) migrate() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS scans (
			id          TEXT PRIMARY KEY,
			target      TEXT NOT NULL,
			ip          TEXT NOT NULL,
			mode        TEXT NOT NULL,
			ports_spec  TEXT NOT NULL,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL,
			probed      INTEGER NOT NULL,
			found       INTEGER NOT NULL,
			status      TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS findings (
			scan_id TEXT NOT NULL REFERENCES scans(id),
			port    INTEGER NOT NULL,
			service TEXT NOT NULL,
			PRIMARY KEY (scan_id, port)
		);
	`)
	return err
}

// AddScanRun inserts the run and its findings in one transaction.
func (p *Postgres) AddScanRun(run *model.ScanRun, findings []model.Finding) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO scans
			(id, target, ip, mode, ports_spec, started_at, finished_at, probed, found, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, run.ID, run.Target, run.IP, run.Mode, run.PortsSpec,
		run.StartedAt, run.FinishedAt, run.Probed, run.Found, run.Status)
	if err != nil {
		return err
	}

	for _, f := range findings {
		if _, err := tx.Exec(`
			INSERT INTO findings (scan_id, port, service) VALUES ($1, $2, $3)
		`, run.ID, f.Port, f.Service); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListScanRuns returns stored runs, most recent first.
func (p *Postgres) ListScanRuns(limit int) ([]model.ScanRun, error) {
	rows, err := p.db.Query(`
		SELECT id, target, ip, mode, ports_spec, started_at, finished_at, probed, found, status
		FROM scans
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ScanRun, 0)
	for rows.Next() {
		var r model.ScanRun
		if err := rows.Scan(
			&r.ID, &r.Target, &r.IP, &r.Mode, &r.PortsSpec,
			&r.StartedAt, &r.FinishedAt, &r.Probed, &r.Found, &r.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
