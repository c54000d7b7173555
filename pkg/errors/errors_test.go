// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "validation_error",
			code:    errors.ErrValidation,
			message: "source directory does not exist",
			wantStr: "[VALIDATION] source directory does not exist",
		},
		{
			name:    "outside_base_error",
			code:    errors.ErrOutsideBaseDir,
			message: "/etc/hosts is not under /home/u",
			wantStr: "[OUTSIDE_BASE_DIR] /etc/hosts is not under /home/u",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrFileNotFound, "missing %s", ".vimrc")
	assert.Equal(t, "[FILE_NOT_FOUND] missing .vimrc", err.Error())
}

func TestWrap(t *testing.T) {
	base := stderrors.New("disk full")

	err := errors.Wrap(base, errors.ErrStorageIO, "failed to save manifest")
	require.NotNil(t, err)
	assert.Equal(t, "[STORAGE_IO] failed to save manifest: disk full", err.Error())
	assert.True(t, stderrors.Is(err, base), "wrapped error should be reachable")

	assert.Nil(t, errors.Wrap(nil, errors.ErrStorageIO, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrStorageIO, "nothing %d", 1))
}

func TestIsMatchesOnCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrLock, "locked"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrLock, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrStorageIO, "")))
}

func TestErrorCodeHelpers(t *testing.T) {
	err := errors.New(errors.ErrAlreadyExists, "exists").WithDetail("path", "/t/.vimrc")
	wrapped := fmt.Errorf("context: %w", err)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrAlreadyExists))
	assert.Equal(t, errors.ErrAlreadyExists, errors.GetErrorCode(wrapped))
	assert.Equal(t, "/t/.vimrc", errors.GetErrorDetails(wrapped)["path"])

	plain := stderrors.New("plain")
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
}
