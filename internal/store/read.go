package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a calculation id does not exist.
var ErrNotFound = errors.New("calculation not found")

const selectColumns = `id, seq, kind, band, profile, inputs, outputs, error_code, created_at`

// ReadCalculation returns the calculation with the given id.
func (s *Store) ReadCalculation(ctx context.Context, id string) (Calculation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM calculations WHERE id = ?`, id)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, fmt.Errorf("read calculation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Calculation{}, fmt.Errorf("read calculation %s: %w", id, err)
	}
	return c, nil
}

// ReadCalculations returns calculations matching the filter, ordered by
// seq ascending. With a Limit, the most recent Limit records are returned.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ReadCalculations(ctx context.Context, f Filter) ([]Calculation, error) {
	var where []string
	var args []any
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.Band != "" {
		where = append(where, "band = ?")
		args = append(args, f.Band)
	}

	query := `SELECT ` + selectColumns + ` FROM calculations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Limit > 0 {
		query = `SELECT * FROM (` + query + ` ORDER BY seq DESC LIMIT ?)`
		args = append(args, f.Limit)
	}
	query += ` ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	calcs := []Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}
	return calcs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(sc scanner) (Calculation, error) {
	var (
		c               Calculation
		inputs, outputs string
		createdAt       string
	)
	if err := sc.Scan(&c.ID, &c.Seq, &c.Kind, &c.Band, &c.Profile, &inputs, &outputs, &c.ErrorCode, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Calculation{}, err
		}
		return Calculation{}, fmt.Errorf("scan calculation: %w", err)
	}

	var err error
	if c.Inputs, err = unmarshalNumbers(inputs); err != nil {
		return Calculation{}, fmt.Errorf("scan calculation %s: %w", c.ID, err)
	}
	if c.Outputs, err = unmarshalNumbers(outputs); err != nil {
		return Calculation{}, fmt.Errorf("scan calculation %s: %w", c.ID, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Calculation{}, fmt.Errorf("scan calculation %s: created_at: %w", c.ID, err)
	}
	return c, nil
}
