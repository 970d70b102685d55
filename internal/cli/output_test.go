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

func TestExitErrorCodes(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "nope")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "setup", errors.New("boom"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")), "non-ExitError defaults to failure")

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitErrorMessage(t *testing.T) {
	err := WrapExitError(ExitCommandError, "setup failed", errors.New("boom"))
	assert.Equal(t, "setup failed: boom", err.Error())
	assert.Equal(t, "boom", err.Unwrap().Error())
	assert.Equal(t, "just this", NewExitError(ExitFailure, "just this").Error())
}

func TestOutputFormatterJSON(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out}
	require.True(t, f.JSON())
	require.NoError(t, f.Success(map[string]int{"n": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	out.Reset()
	require.NoError(t, f.Error("bad input", "line 3"))
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "bad input", resp.Error.Message)
}

func TestOutputFormatterText(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out}
	require.False(t, f.JSON())
	require.NoError(t, f.Error("bad input", nil))
	assert.Contains(t, out.String(), "Error: bad input")
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	f.VerboseLog("checked %d nodes", 5)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "checked 5 nodes")

	quiet := &OutputFormatter{Format: "text", Writer: out}
	quiet.VerboseLog("hidden")
	assert.Empty(t, out.String())
}
