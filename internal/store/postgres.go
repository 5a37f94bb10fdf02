package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres backs the Tabular interface with a single tab_rows table, one
// jsonb row per record. Lookups deliberately stay full scans per table so
// behaviour matches the other store implementations.
type Postgres struct {
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	pg := &Postgres{pool: pool}
	if err := pg.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pg, nil
}

// The primary key is deferrable so the reindex after a delete can shift
// row_index values in one statement without tripping over itself mid-update.
func (p *Postgres) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS tab_rows (
      tab       text NOT NULL,
      row_index int  NOT NULL,
      row       jsonb NOT NULL,
      CONSTRAINT tab_rows_pkey PRIMARY KEY (tab, row_index) DEFERRABLE INITIALLY DEFERRED
    )
  `)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
    ALTER TABLE tab_rows ALTER CONSTRAINT tab_rows_pkey DEFERRABLE INITIALLY DEFERRED
  `)
	return err
}

func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) AppendRow(ctx context.Context, table string, row Row) (int, error) {
	encoded, err := json.Marshal(row)
	if err != nil {
		return 0, fmt.Errorf("encode row: %w", err)
	}
	var index int
	err = p.pool.QueryRow(ctx, `
    INSERT INTO tab_rows (tab, row_index, row)
    VALUES ($1, (SELECT COALESCE(MAX(row_index)+1, 0) FROM tab_rows WHERE tab = $1), $2)
    RETURNING row_index
  `, table, encoded).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

func (p *Postgres) ScanRows(ctx context.Context, table string) ([]Row, error) {
	rows, err := p.pool.Query(ctx, `
    SELECT row
    FROM tab_rows
    WHERE tab = $1
    ORDER BY row_index
  `, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var row Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (p *Postgres) UpdateRow(ctx context.Context, table string, rowIndex int, row Row) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	tag, err := p.pool.Exec(ctx, `
    UPDATE tab_rows SET row = $3 WHERE tab = $1 AND row_index = $2
  `, table, rowIndex, encoded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

// DeleteRow removes a row and shifts the rows after it down by one. Delete
// and reindex commit together; repositories address rows by scan position,
// so a gap in row_index would misdirect every later update.
func (p *Postgres) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    DELETE FROM tab_rows WHERE tab = $1 AND row_index = $2
  `, table, rowIndex)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	_, err = tx.Exec(ctx, `
    UPDATE tab_rows SET row_index = row_index - 1 WHERE tab = $1 AND row_index > $2
  `, table, rowIndex)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
