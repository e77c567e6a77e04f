package medicine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/notify"
)

func setupService(t *testing.T) (*Service, *notify.Recorder) {
	recorder := notify.NewRecorder()
	svc := NewService(setupStore(t), recorder)
	svc.SetClock(func() time.Time { return testNow })
	svc.Store().SetClock(func() time.Time { return testNow })
	return svc, recorder
}

// =============================================================================
// Service Tests
// =============================================================================

func TestAddWithScheduleAttachesHandle(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Vitamin D", "08:30",
		model.ReminderNotification, model.RepeatDaily, nil)
	require.NoError(t, err)

	call, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notify.TriggerDaily, call.Kind)
	assert.Equal(t, 8, call.Hour)
	assert.Equal(t, 30, call.Minute)
	assert.Equal(t, call.Handle, svc.Store().Get(med.ID).NotificationID)
}

func TestAddOnceInPastRollsBack(t *testing.T) {
	svc, recorder := setupService(t)

	past := testNow.AddDate(0, 0, -1)
	_, err := svc.AddWithSchedule(context.Background(), "Antibiotic", "08:00",
		model.ReminderNotification, model.RepeatOnce, &past)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrScheduleInPast))

	// The half-created reminder must not survive.
	assert.Empty(t, svc.Store().List())
	assert.Empty(t, recorder.Scheduled)
}

func TestAddRepeatingSurvivesScheduleFailure(t *testing.T) {
	svc, recorder := setupService(t)
	recorder.ScheduleErr = assert.AnError

	med, err := svc.AddWithSchedule(context.Background(), "Iron", "12:00",
		model.ReminderNotification, model.RepeatDaily, nil)
	require.NoError(t, err)
	require.NotNil(t, med)

	got := svc.Store().Get(med.ID)
	require.NotNil(t, got)
	assert.Empty(t, got.NotificationID)
}

func TestAddPermissionDeniedOnceFails(t *testing.T) {
	svc, recorder := setupService(t)
	recorder.PermissionErr = assert.AnError

	_, err := svc.AddWithSchedule(context.Background(), "Antibiotic", "23:00",
		model.ReminderNotification, model.RepeatOnce, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPermissionDenied))
	assert.Empty(t, svc.Store().List())
}

func TestDisableCancelsNotification(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Calcium", "21:00",
		model.ReminderAlarm, model.RepeatDaily, nil)
	require.NoError(t, err)
	handle := svc.Store().Get(med.ID).NotificationID

	require.NoError(t, svc.SetEnabled(context.Background(), med.ID, false))

	assert.Contains(t, recorder.Cancelled, handle)
	got := svc.Store().Get(med.ID)
	assert.False(t, got.Enabled)
	assert.Empty(t, got.NotificationID)
}

func TestEnableReschedules(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Calcium", "21:00",
		model.ReminderAlarm, model.RepeatDaily, nil)
	require.NoError(t, err)
	require.NoError(t, svc.SetEnabled(context.Background(), med.ID, false))

	before := len(recorder.Scheduled)
	require.NoError(t, svc.SetEnabled(context.Background(), med.ID, true))

	assert.Len(t, recorder.Scheduled, before+1)
	got := svc.Store().Get(med.ID)
	assert.True(t, got.Enabled)
	assert.NotEmpty(t, got.NotificationID)
}

func TestSetEnabledUnknownID(t *testing.T) {
	svc, _ := setupService(t)
	err := svc.SetEnabled(context.Background(), "nope", true)
	assert.True(t, errors.Is(err, errors.ErrMedicineNotFound))
}

func TestRemoveCancelsAndDeletes(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Iron", "12:00",
		model.ReminderNotification, model.RepeatDaily, nil)
	require.NoError(t, err)
	handle := svc.Store().Get(med.ID).NotificationID

	require.NoError(t, svc.Remove(context.Background(), med.ID))
	assert.Contains(t, recorder.Cancelled, handle)
	assert.Nil(t, svc.Store().Get(med.ID))
}

func TestSnoozeLogsAndSchedulesOneShot(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Antibiotic", "20:00",
		model.ReminderAlarm, model.RepeatDaily, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Snooze(context.Background(), med.ID, 15))

	call, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notify.TriggerOneShot, call.Kind)
	assert.True(t, call.At.Equal(testNow.Add(15*time.Minute)))
	assert.Equal(t, notify.ChannelAlarm, call.Notification.Channel)

	logs := svc.Store().GetTodayLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.StatusSnoozed, logs[0].Status)
	assert.Len(t, logs[0].SnoozeHistory, 1)
}

func TestSnoozeDeliveryFailureDegradesSilently(t *testing.T) {
	svc, recorder := setupService(t)

	med, err := svc.AddWithSchedule(context.Background(), "Iron", "12:00",
		model.ReminderNotification, model.RepeatDaily, nil)
	require.NoError(t, err)

	recorder.ScheduleErr = assert.AnError
	require.NoError(t, svc.Snooze(context.Background(), med.ID, 10))

	// The snooze is still on the log even though the nudge failed.
	logs := svc.Store().GetTodayLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.StatusSnoozed, logs[0].Status)
}
