package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestUserError(t *testing.T) {
	err := NewUserError("Invalid time of day", "Use 24-hour HH:MM")
	assert.Equal(t, "Invalid time of day", err.Error())
	assert.Equal(t, "Use 24-hour HH:MM", err.Suggestion)
}

func TestUserErrorWithField(t *testing.T) {
	err := NewUserErrorWithField("time", "25:00", "Invalid time of day", "Use HH:MM")
	assert.Equal(t, "Invalid time of day: '25:00'", err.Error())
	assert.Equal(t, "time", err.Field)
}

func TestIsUserError(t *testing.T) {
	err := NewUserError("bad input", "fix it")
	assert.True(t, IsUserError(err))
	assert.False(t, IsSystemError(err))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsUserError(wrapped))

	ue, ok := AsUserError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "fix it", ue.Suggestion)
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewSystemErrorWithOp("persist", "storage write failed", cause)
	assert.Equal(t, "storage write failed during persist", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, IsSystemError(err))
	assert.False(t, IsUserError(err))
}

func TestSystemErrorWithoutOp(t *testing.T) {
	err := NewSystemError("storage write failed", nil)
	assert.Equal(t, "storage write failed", err.Error())
}

// =============================================================================
// Sentinel and Wrap Tests
// =============================================================================

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := Wrap(ErrScheduleInPast, "could not schedule one-time reminder")
	assert.True(t, Is(err, ErrScheduleInPast))
	assert.Contains(t, err.Error(), "could not schedule")

	err = Wrapf(ErrMedicineNotFound, "medicine %q", "m1")
	assert.True(t, Is(err, ErrMedicineNotFound))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}
