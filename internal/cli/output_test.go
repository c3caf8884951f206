package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]float64{"snr": 0.672}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.ID)
}

func TestOutputFormatter_JSONSuccessWithID(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.SuccessWithID(map[string]float64{"mu": 27.5}, "calc-1")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "calc-1", resp.ID)
}

func TestOutputFormatter_TextSuccessWithID(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   true,
	}

	err := formatter.SuccessWithID("limit = 27.5678", "calc-1")
	require.NoError(t, err)
	assert.Equal(t, "limit = 27.5678\n", out.String())
	assert.Contains(t, errOut.String(), "recorded calculation calc-1")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("NO_REAL_SOLUTION", "limit failed", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "NO_REAL_SOLUTION", resp.Error.Code)
	assert.Equal(t, "limit failed", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"param": "binning", "value": "0"}
	err := formatter.Error("INVALID_INPUT", "snr failed", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("S/N = 0.672126")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "S/N = 0.672126")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E001", "invalid arguments", map[string]string{"flag": "mu"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "invalid arguments")
	assert.NotContains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"known_bands": "[g r]"}
	err := formatter.Error("UNKNOWN_BAND", "snr failed", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [UNKNOWN_BAND]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("loaded profile %s", "qhy600.cue")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "loaded profile qhy600.cue")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_VerboseLogPrefersErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("profile %s", "built-in")
	assert.Empty(t, out.String())
	assert.Equal(t, "profile built-in\n", errOut.String())
	assert.Same(t, errOut, formatter.errWriter())

	formatter.ErrWriter = nil
	assert.Same(t, out, formatter.errWriter())
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantCode int
		reported bool
	}{
		{"plain error", base, ExitFailure, false},
		{"command error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError, false},
		{"wrapped", fmt.Errorf("outer: %w", WrapExitError(ExitFailure, "limit failed", base)), ExitFailure, false},
		{"reported", &ExitError{Code: ExitCommandError, Message: "x", Reported: true}, ExitCommandError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetExitCode(tt.err))
			assert.Equal(t, tt.reported, IsReported(tt.err))
		})
	}

	wrapped := WrapExitError(ExitFailure, "limit failed", base)
	assert.Equal(t, "limit failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}
