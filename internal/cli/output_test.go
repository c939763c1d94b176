package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad invocation")
	assert.Equal(t, "bad invocation", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	inner := errors.New("boom")
	wrapped := WrapExitError(ExitFailure, "query batch failed", inner)
	assert.Equal(t, "query batch failed: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestGetExitCodeDefaults(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	// An ExitError deeper in a chain still decides the code.
	chained := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(chained))
}
