package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := Transport("verification call failed")
	assert.Equal(t, "verification call failed", err.Error())
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeTransport, "verification call failed")
	assert.Equal(t, "verification call failed: connection refused", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeTransport, "verification call failed")
	assert.True(t, errors.Is(err, cause))
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeTransport, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeTransport, "ignored %d", 1))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsIdentityUnavailable(IdentityUnavailable("no claim")))
	assert.True(t, IsFingerprint(Fingerprint("no device id")))
	assert.True(t, IsTransport(Transportf("status %d", 502)))
	assert.True(t, IsAdmin(Adminf("delete user %d", 7)))
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsNotFound(NotFound("missing")))

	assert.False(t, IsTransport(Validation("bad input")))
	assert.False(t, IsTransport(errors.New("plain error")))
}

func TestPredicates_WrappedDeep(t *testing.T) {
	inner := Fingerprint("cannot write install id")
	outer := fmt.Errorf("resolve sources: %w", inner)
	require.True(t, IsFingerprint(outer))
	assert.Equal(t, ErrCodeFingerprint, GetCode(outer))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
}
