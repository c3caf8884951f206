package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testTime = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

// createTestCalculation creates a calculation with minimal required fields.
func createTestCalculation(id, kind, band string) Calculation {
	return Calculation{
		ID:        id,
		Kind:      kind,
		Band:      band,
		Profile:   "SBIG STD-8300M",
		Inputs:    map[string]float64{"mu": 28, "exp_time": 36000},
		Outputs:   map[string]float64{"snr": 0.672126216695504},
		CreatedAt: testTime,
	}
}
