package jscerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStringIncludesPathAndCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(CodeIO, cause, "reading source").WithPath("src/a.js")
	assert.Equal(t, "src/a.js: reading source: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	err := New(CodeConfig, "bad option")
	wrapped := fmt.Errorf("loading: %w", err)
	assert.Equal(t, CodeConfig, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("anonymous")))
}

func TestMarshalFlattens(t *testing.T) {
	err := Wrap(CodeParse, errors.New("unexpected token"), "cannot parse").WithPath("b.ts")
	data, merr := json.Marshal(err)
	require.NoError(t, merr)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "parse", flat["code"])
	assert.Equal(t, "b.ts", flat["path"])
	assert.Contains(t, flat["message"], "unexpected token")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 3, ExitCode(New(CodeIO, "nope")))
}
