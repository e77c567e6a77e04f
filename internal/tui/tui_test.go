package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/medicine"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/settings"
	"github.com/nestlingapp/nestling/internal/storage"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.NotEmpty(t, bar)
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar10 := ProgressBar(50, 10)
	bar20 := ProgressBar(50, 20)
	assert.Greater(t, len(bar20), len(bar10))
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func setupDashboard(t *testing.T) (*DashboardModel, *medicine.Store, *settings.ModeStore) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kicks := tracker.NewKickStore(db)
	pees := tracker.NewPeeStore(db)
	poops := tracker.NewPoopStore(db)
	feedings := tracker.NewFeedingStore(db)
	meds := medicine.NewStore(db)
	cfg := settings.NewStore(db)
	mode := settings.NewModeStore(db)

	kicks.Load()
	pees.Load()
	poops.Load()
	feedings.Load()
	meds.Load()
	cfg.Load()
	mode.Load()

	t.Cleanup(func() {
		kicks.Close()
		pees.Close()
		poops.Close()
		feedings.Close()
		meds.Close()
		cfg.Close()
		mode.Close()
	})

	m := NewDashboardModel(DashboardConfig{
		Kicks:    kicks,
		Pees:     pees,
		Poops:    poops,
		Feedings: feedings,
		Medicine: meds,
		Settings: cfg,
		Mode:     mode,
	})
	m.width = 80
	m.height = 24
	return m, meds, mode
}

func TestDashboardViewBornMode(t *testing.T) {
	m, _, mode := setupDashboard(t)
	mode.SetMode(settings.ModeBorn)
	m.loadData()

	view := m.View()
	assert.Contains(t, view, "Nestling")
	assert.Contains(t, view, "Wet diapers")
	assert.Contains(t, view, "Dirty diapers")
	assert.Contains(t, view, "Feedings")
	assert.NotContains(t, view, "Kicks")
}

func TestDashboardViewPregnantMode(t *testing.T) {
	m, _, mode := setupDashboard(t)
	mode.SetMode(settings.ModePregnant)
	m.loadData()

	view := m.View()
	assert.Contains(t, view, "Kicks")
	assert.NotContains(t, view, "Wet diapers")
}

func TestDashboardShowsMedicines(t *testing.T) {
	m, meds, mode := setupDashboard(t)
	mode.SetMode(settings.ModeBorn)
	med := meds.Add("Vitamin D", "08:30", model.ReminderNotification, model.RepeatDaily)
	meds.MarkTaken(med.ID, nil)
	m.loadData()

	view := m.View()
	assert.Contains(t, view, "Medicines")
	assert.Contains(t, view, "Vitamin D")
	assert.Contains(t, view, "taken")
}

func TestDashboardKeyRecordsInPregnantMode(t *testing.T) {
	m, _, mode := setupDashboard(t)
	mode.SetMode(settings.ModePregnant)
	m.loadData()

	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})

	require.Len(t, m.rows, 1)
	assert.Equal(t, 1, m.rows[0].count)
}

func TestDashboardKeyIgnoredOutsidePregnantMode(t *testing.T) {
	m, _, mode := setupDashboard(t)
	mode.SetMode(settings.ModeBorn)
	m.loadData()

	m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Empty(t, m.kicks.Today())
}

func TestDashboardQuitKey(t *testing.T) {
	m, _, _ := setupDashboard(t)
	_, cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardDayChangedMessage(t *testing.T) {
	m, _, _ := setupDashboard(t)
	updated, _ := m.Update(dayChangedMsg{day: "2024-03-02"})
	dm := updated.(*DashboardModel)
	assert.Contains(t, dm.message, "New day")
}

func TestDashboardLoadingWithoutSize(t *testing.T) {
	m, _, _ := setupDashboard(t)
	m.width = 0
	assert.Equal(t, "Loading...", m.View())
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, renderStatus(model.StatusTaken), "taken")
	assert.Contains(t, renderStatus(model.StatusMissed), "missed")
	assert.Contains(t, renderStatus(model.StatusSnoozed), "snoozed")
	assert.Contains(t, renderStatus(model.StatusPending), "pending")
}
