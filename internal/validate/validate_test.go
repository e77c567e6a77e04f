package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/errors"
)

func TestMedicineName(t *testing.T) {
	assert.NoError(t, MedicineName("Vitamin D"))
	assert.Error(t, MedicineName(""))
	assert.Error(t, MedicineName("   "))
	assert.Error(t, MedicineName(strings.Repeat("x", MaxMedicineNameLength+1)))
	assert.NoError(t, MedicineName(strings.Repeat("x", MaxMedicineNameLength)))
}

func TestMedicineNameErrorsAreUserErrors(t *testing.T) {
	err := MedicineName("")
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.NotEmpty(t, ue.Suggestion)
}

func TestTimeOfDay(t *testing.T) {
	assert.NoError(t, TimeOfDay("08:30"))
	assert.NoError(t, TimeOfDay("00:00"))
	assert.NoError(t, TimeOfDay("23:59"))
	assert.Error(t, TimeOfDay("24:00"))
	assert.Error(t, TimeOfDay("12:60"))
	assert.Error(t, TimeOfDay("noon"))
	assert.Error(t, TimeOfDay("8"))
}

func TestGoal(t *testing.T) {
	assert.NoError(t, Goal(1))
	assert.NoError(t, Goal(10))
	assert.Error(t, Goal(0))
	assert.Error(t, Goal(-5))
}

func TestFeedAmount(t *testing.T) {
	assert.NoError(t, FeedAmount(120))
	assert.NoError(t, FeedAmount(MaxFeedAmountMl))
	assert.Error(t, FeedAmount(0))
	assert.Error(t, FeedAmount(-10))
	assert.Error(t, FeedAmount(MaxFeedAmountMl+1))
}

func TestSnoozeMinutes(t *testing.T) {
	assert.NoError(t, SnoozeMinutes(10))
	assert.NoError(t, SnoozeMinutes(MaxSnoozeMinutes))
	assert.Error(t, SnoozeMinutes(0))
	assert.Error(t, SnoozeMinutes(MaxSnoozeMinutes+1))
}

func TestFeedType(t *testing.T) {
	assert.NoError(t, FeedType("breast"))
	assert.NoError(t, FeedType("formula"))
	assert.Error(t, FeedType("bottle"))
	assert.Error(t, FeedType(""))
}

func TestReminderType(t *testing.T) {
	assert.NoError(t, ReminderType("notification"))
	assert.NoError(t, ReminderType("alarm"))
	assert.Error(t, ReminderType("loud"))
}

func TestRepetition(t *testing.T) {
	assert.NoError(t, Repetition("daily"))
	assert.NoError(t, Repetition("weekly"))
	assert.NoError(t, Repetition("none"))
	assert.Error(t, Repetition("once"))
	assert.Error(t, Repetition("monthly"))
}
