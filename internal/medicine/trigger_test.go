package medicine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/notify"
)

// =============================================================================
// Trigger Policy Tests
// =============================================================================

func TestChannelFor(t *testing.T) {
	assert.Equal(t, notify.ChannelStandard, ChannelFor(model.ReminderNotification))
	assert.Equal(t, notify.ChannelAlarm, ChannelFor(model.ReminderAlarm))
}

func TestBuildTriggerDaily(t *testing.T) {
	trigger, err := BuildTrigger("08:30", model.RepeatDaily, model.ReminderNotification, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, notify.TriggerDaily, trigger.Kind)
	assert.Equal(t, 8, trigger.Hour)
	assert.Equal(t, 30, trigger.Minute)
	assert.Equal(t, notify.ChannelStandard, trigger.Channel)
}

func TestBuildTriggerWeeklyPinsCurrentWeekday(t *testing.T) {
	trigger, err := BuildTrigger("20:00", model.RepeatWeekly, model.ReminderAlarm, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, notify.TriggerWeekly, trigger.Kind)
	assert.Equal(t, testNow.Weekday(), trigger.Weekday)
	assert.Equal(t, notify.ChannelAlarm, trigger.Channel)
}

func TestBuildTriggerOnceFutureToday(t *testing.T) {
	// 09:00 now, 10:00 slot: fires today.
	trigger, err := BuildTrigger("10:00", model.RepeatOnce, model.ReminderNotification, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, notify.TriggerOneShot, trigger.Kind)
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	assert.True(t, trigger.At.Equal(want))
}

func TestBuildTriggerOncePassedRollsToTomorrow(t *testing.T) {
	// 09:00 now, 08:00 slot, no explicit day: rolls to tomorrow.
	trigger, err := BuildTrigger("08:00", model.RepeatOnce, model.ReminderNotification, nil, testNow)
	require.NoError(t, err)
	want := time.Date(2024, 3, 2, 8, 0, 0, 0, time.Local)
	assert.True(t, trigger.At.Equal(want))
}

func TestBuildTriggerOnceExplicitPastFails(t *testing.T) {
	past := time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local)
	_, err := BuildTrigger("08:00", model.RepeatOnce, model.ReminderNotification, &past, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrScheduleInPast))
}

func TestBuildTriggerOnceExplicitFutureDay(t *testing.T) {
	future := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	trigger, err := BuildTrigger("07:15", model.RepeatOnce, model.ReminderAlarm, &future, testNow)
	require.NoError(t, err)
	want := time.Date(2024, 3, 10, 7, 15, 0, 0, time.Local)
	assert.True(t, trigger.At.Equal(want))
}

func TestBuildTriggerBadTimeOfDay(t *testing.T) {
	for _, bad := range []string{"25:00", "10:65", "noon", "10", ""} {
		_, err := BuildTrigger(bad, model.RepeatDaily, model.ReminderNotification, nil, testNow)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, errors.ErrInvalidTimeOfDay), bad)
	}
}

func TestBuildTriggerBadRepetition(t *testing.T) {
	_, err := BuildTrigger("08:00", model.Repetition("monthly"), model.ReminderNotification, nil, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRepetition))
}

func TestSnoozeTrigger(t *testing.T) {
	trigger := SnoozeTrigger(testNow, 15, model.ReminderAlarm)
	assert.Equal(t, notify.TriggerOneShot, trigger.Kind)
	assert.True(t, trigger.At.Equal(testNow.Add(15*time.Minute)))
	assert.Equal(t, notify.ChannelAlarm, trigger.Channel)
}

func TestContent(t *testing.T) {
	med := &model.MedicineReminder{
		ID:           "m1",
		Name:         "Vitamin D",
		ReminderType: model.ReminderNotification,
	}
	n := Content(med)
	assert.Equal(t, "Medicine Reminder", n.Title)
	assert.Equal(t, "Time to take: Vitamin D", n.Body)
	assert.Equal(t, "m1", n.Data["medicineId"])

	med.ReminderType = model.ReminderAlarm
	assert.Equal(t, "Medicine Alarm", Content(med).Title)
}
