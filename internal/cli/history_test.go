package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/skylimit/internal/store"
	"github.com/roach88/skylimit/internal/testutil"
)

func TestHistory_RecordsCalculations(t *testing.T) {
	db := filepath.Join(t.TempDir(), "skylimit.db")
	opts := &RootOptions{IDGen: store.NewFixedGenerator("calc-1", "calc-2", "calc-3")}

	out, _, err := executeCommand(t, opts, "snr", "--db", db, "--format", "json",
		"--mu", "28", "--band", "g", "--exp-time", "36000")
	require.NoError(t, err)
	assert.Equal(t, "calc-1", decodeResponse(t, out).ID)

	_, _, err = executeCommand(t, opts, "limit", "--db", db,
		"--band", "g", "--exp-time", "0.001", "--sub", "0.001", "--snr", "1e100")
	require.Error(t, err)

	_, _, err = executeCommand(t, opts, "exptime", "--db", db,
		"--mu", "28", "--band", "g", "--snr", "5")
	require.NoError(t, err)

	out, _, err = executeCommand(t, opts, "history", "--db", db, "--format", "json")
	require.NoError(t, err)

	rows, ok := decodeResponse(t, out).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 3)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, "calc-1", first["id"])
	assert.Equal(t, 1.0, first["seq"])
	assert.Equal(t, "snr", first["kind"])
	assert.InDelta(t, 0.672126216695504, first["outputs"].(map[string]interface{})["snr"], 1e-12)

	second := rows[1].(map[string]interface{})
	assert.Equal(t, "limit", second["kind"])
	assert.Equal(t, "NO_REAL_SOLUTION", second["error_code"])
	assert.Nil(t, second["outputs"])

	third := rows[2].(map[string]interface{})
	assert.Equal(t, 1992600.0, third["outputs"].(map[string]interface{})["total_time"])
	assert.NotContains(t, third["inputs"], "round_up")
}

func TestHistory_FilterAndText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "skylimit.db")
	opts := &RootOptions{IDGen: store.NewFixedGenerator("a", "b", "c")}

	for _, band := range []string{"g", "r", "g"} {
		_, _, err := executeCommand(t, opts, "limit", "--db", db,
			"--band", band, "--exp-time", "36000", "--snr", "1")
		require.NoError(t, err)
	}

	out, _, err := executeCommand(t, opts, "history", "--db", db, "--band", "g", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SEQ")
	assert.Regexp(t, `(?m)^3\s`, out)
	assert.NotRegexp(t, `(?m)^1\s`, out)
	assert.Contains(t, out, "mu=27.5678")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "skylimit.db")
	out, _, err := executeCommand(t, nil, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no calculations recorded")
}

func TestHistory_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no database", []string{"history"}},
		{"bad kind", []string{"history", "--db", "x.db", "--kind", "flux"}},
		{"negative limit", []string{"history", "--db", "x.db", "--limit=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, nil, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestRunCommand_RecordsSteps(t *testing.T) {
	db := filepath.Join(t.TempDir(), "skylimit.db")

	_, _, err := executeCommand(t, nil, "run", deepFieldPlan, "--db", db)
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	calcs, err := st.ReadCalculations(t.Context(), store.Filter{Kind: "limit"})
	require.NoError(t, err)
	require.Len(t, calcs, 3)
	assert.Equal(t, "NO_REAL_SOLUTION", calcs[2].ErrorCode)
}

func TestHistory_Golden(t *testing.T) {
	db := filepath.Join(t.TempDir(), "skylimit.db")
	clock := testutil.NewDeterministicClock(time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC), 10*time.Minute)
	opts := &RootOptions{
		IDGen: store.NewFixedGenerator("h-1", "h-2", "h-3", "h-4"),
		Now:   clock.Now,
	}

	steps := [][]string{
		{"snr", "--mu", "28", "--band", "g", "--exp-time", "36000"},
		{"limit", "--band", "g", "--exp-time", "36000", "--snr", "1"},
		{"exptime", "--mu", "28", "--band", "g", "--snr", "5"},
		{"limit", "--band", "g", "--exp-time", "0.001", "--sub", "0.001", "--snr", "1e100"},
	}
	for _, args := range steps {
		_, _, _ = executeCommand(t, opts, append(args, "--db", db)...)
	}
	require.Equal(t, int64(4), clock.Ticks())

	out, _, err := executeCommand(t, opts, "history", "--db", db)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "history", []byte(out))
}
