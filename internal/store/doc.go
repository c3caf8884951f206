// Package store provides an SQLite-backed log of radiometry calculations.
//
// The log is append-only. Each record carries:
//   - id: a UUIDv7 (or a fixed id in tests); writes are idempotent on id
//   - seq: a logical counter assigned at write time, MAX(seq)+1
//   - kind, band, profile: what was computed and against which instrument
//   - inputs, outputs: JSON objects of named numbers
//   - error_code: the radiometry error code for failed calculations
//
// Ordering always uses seq, never created_at, which is informational only.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
