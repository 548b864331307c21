package readerview_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/readerview"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := readerview.Errorf(readerview.EINVALID, "page URL %q must be absolute", "/post")

	assert.Equal(t, readerview.EINVALID, readerview.ErrorCode(err))
	assert.Equal(t, "page URL \"/post\" must be absolute", readerview.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readerview.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, readerview.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, readerview.EINTERNAL, readerview.ErrorCode(err))
	assert.Equal(t, "Internal error.", readerview.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", readerview.Errorf(readerview.ETOOLARGE, "too many elements"))

	assert.Equal(t, readerview.ETOOLARGE, readerview.ErrorCode(err))
	assert.Equal(t, "too many elements", readerview.ErrorMessage(err))
}

func TestIsNoContent(t *testing.T) {
	t.Parallel()

	assert.True(t, readerview.IsNoContent(readerview.Errorf(readerview.ENOCONTENT, "no article found")))
	assert.False(t, readerview.IsNoContent(readerview.Errorf(readerview.EINVALID, "bad")))
	assert.False(t, readerview.IsNoContent(nil))
}
