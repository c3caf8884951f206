package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deepFieldPlan  = filepath.Join("..", "plan", "testdata", "deep_field.yaml")
	planGoldenDir  = filepath.Join("..", "plan", "testdata", "golden")
	narrowbandPlan = filepath.Join("..", "plan", "testdata", "narrowband.yaml")
)

func TestRunCommand_MatchesGolden(t *testing.T) {
	out, stderr, err := executeCommand(t, nil, "run", deepFieldPlan, "--golden", planGoldenDir)
	require.NoError(t, err)

	expected, err := os.ReadFile(filepath.Join(planGoldenDir, "deep_field.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(expected), out)

	// step 3 rounds 100 s up to 4 x 30 s
	assert.Contains(t, stderr, "rounding up total exposure time")
	assert.Contains(t, stderr, "step=3")
}

func TestRunCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()

	_, _, err := executeCommand(t, nil, "run", narrowbandPlan, "--golden", dir, "--update")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "narrowband.golden"))
	require.NoError(t, err)

	_, _, err = executeCommand(t, nil, "run", narrowbandPlan, "--golden", dir)
	require.NoError(t, err)
}

func TestRunCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "deep_field.golden"), "plan: deep_field\npass: true\n")

	out, _, err := executeCommand(t, nil, "run", deepFieldPlan, "--golden", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeGolden, resp.Error.Code)
}

func TestRunCommand_MissingGolden(t *testing.T) {
	_, _, err := executeCommand(t, nil, "run", deepFieldPlan, "--golden", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --update to create")
}

func TestRunCommand_UpdateRequiresGolden(t *testing.T) {
	_, _, err := executeCommand(t, nil, "run", deepFieldPlan, "--update")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommand_FailingStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "too_deep.yaml")
	writeFile(t, path, `name: too_deep
steps:
  - limit: { band: g, exp_time: 36000, snr: 1 }
    expect: { min: 30 }
  - snr: { mu: 28, band: g, exp_time: 36000 }
`)

	out, _, err := executeCommand(t, nil, "run", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.False(t, IsReported(err))
	assert.Contains(t, err.Error(), "1 of 2 steps failed")
	assert.Contains(t, out, "FAIL:")
	assert.Contains(t, out, "pass: false")
}

func TestRunCommand_FailingStepJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad_band.yaml")
	writeFile(t, path, `name: bad_band
steps:
  - snr: { mu: 28, band: z, exp_time: 600 }
`)

	out, _, err := executeCommand(t, nil, "run", path, "--format", "json")
	require.Error(t, err)
	assert.True(t, IsReported(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := dataMap(t, resp)
	assert.Equal(t, false, data["pass"])
	outcomes := data["outcomes"].([]interface{})
	require.Len(t, outcomes, 1)
	assert.Equal(t, "UNKNOWN_BAND", outcomes[0].(map[string]interface{})["error_code"])
}

func TestRunCommand_InvalidPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	writeFile(t, path, "name: typo\nstep: []\n")

	out, _, err := executeCommand(t, nil, "run", path, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodePlan, decodeResponse(t, out).Error.Code)
}

func TestRunCommand_RequiresArg(t *testing.T) {
	_, _, err := executeCommand(t, nil, "run")
	require.Error(t, err)
}
