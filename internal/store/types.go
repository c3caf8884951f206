package store

import "time"

// Calculation is one logged radiometry calculation.
type Calculation struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Kind      string    `json:"kind"`
	Band      string    `json:"band"`
	Profile   string    `json:"profile,omitempty"`
	Inputs    Numbers   `json:"inputs"`
	Outputs   Numbers   `json:"outputs,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects calculations. Zero fields match everything.
type Filter struct {
	Kind  string
	Band  string
	Limit int // most recent N, still returned in seq order
}
