package store

import (
	"context"
	"fmt"
	"time"
)

// WriteCalculation appends a calculation to the log and returns its seq.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing an id twice
// keeps the first record and returns its seq.
func (s *Store) WriteCalculation(ctx context.Context, c Calculation) (int64, error) {
	if c.ID == "" {
		return 0, fmt.Errorf("write calculation: id is required")
	}

	inputs, err := marshalNumbers(c.Inputs)
	if err != nil {
		return 0, fmt.Errorf("write calculation: %w", err)
	}
	outputs, err := marshalNumbers(c.Outputs)
	if err != nil {
		return 0, fmt.Errorf("write calculation: %w", err)
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// The SELECT needs a WHERE clause so SQLite can parse the upsert.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calculations
		(id, seq, kind, band, profile, inputs, outputs, error_code, created_at)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?, ?
		FROM calculations WHERE true
		ON CONFLICT(id) DO NOTHING
	`,
		c.ID,
		c.Kind,
		c.Band,
		c.Profile,
		inputs,
		outputs,
		c.ErrorCode,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("write calculation: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM calculations WHERE id = ?`, c.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write calculation: read seq: %w", err)
	}
	return seq, nil
}
