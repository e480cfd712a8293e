package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codeError struct{ code string }

func (e *codeError) Error() string { return e.code }

func TestWrapKeepsChainMatchable(t *testing.T) {
	sentinel := New("role not found")

	wrapped := Wrap(WithStack(sentinel), "failed to assign role")

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "failed to assign role: role not found", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "TestWrapKeepsChainMatchable")
	assert.NoError(t, Wrap(nil, "ignored"))
}

func TestAsFindsTypedError(t *testing.T) {
	err := Wrapf(&codeError{code: "SLUG_UNAVAILABLE"}, "slug %q", "ops")

	var target *codeError
	assert.True(t, As(err, &target))
	assert.Equal(t, "SLUG_UNAVAILABLE", target.code)
}
