package rcerror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, OK, CodeOf(nil))
	assert.Equal(t, KeyNotFound, CodeOf(New(KeyNotFound, "")))
	assert.Equal(t, Error, CodeOf(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("wrap: %w", New(NotEnoughSpace, "full"))
	assert.Equal(t, NotEnoughSpace, CodeOf(wrapped))
}

func TestCodedError_Error(t *testing.T) {
	err := New(InvalidArgument, "bad arg")
	assert.Contains(t, err.Error(), "INVALID_ARGUMENT")
	assert.Contains(t, err.Error(), "bad arg")

	err = New(KeyNotFound, "")
	assert.Equal(t, "KEY_NOT_FOUND", err.Error())
}

func TestCodeString_Unknown(t *testing.T) {
	assert.Equal(t, "CODE(9999)", Code(9999).String())
}
