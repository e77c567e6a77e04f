package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/medicine"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/settings"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// dayChangedMsg is sent when the local calendar day rolls over.
type dayChangedMsg struct {
	day dates.DayKey
}

// trackerRow is one tracker's rendered state for today.
type trackerRow struct {
	label   string
	count   int
	goal    int
	last    *time.Time
	tenth   *time.Time
	detail  string
	hasGoal bool
}

// DashboardModel is the bubbletea model for the today dashboard.
type DashboardModel struct {
	kicks    *tracker.EventStore
	pees     *tracker.EventStore
	poops    *tracker.EventStore
	feedings *tracker.FeedingStore
	medicine *medicine.Store
	settings *settings.Store
	mode     *settings.ModeStore

	rows []trackerRow
	meds []medLine

	width      int
	height     int
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// medLine is one medicine's adherence state for today.
type medLine struct {
	name   string
	time   string
	status model.MedicineStatus
}

// DashboardConfig holds the stores the dashboard reads from.
type DashboardConfig struct {
	Kicks           *tracker.EventStore
	Pees            *tracker.EventStore
	Poops           *tracker.EventStore
	Feedings        *tracker.FeedingStore
	Medicine        *medicine.Store
	Settings        *settings.Store
	Mode            *settings.ModeStore
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &DashboardModel{
		kicks:           config.Kicks,
		pees:            config.Pees,
		poops:           config.Poops,
		feedings:        config.Feedings,
		medicine:        config.Medicine,
		settings:        config.Settings,
		mode:            config.Mode,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case dayChangedMsg:
		m.loadData()
		m.setMessage("New day: "+msg.day.Display(), 3*time.Second)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "k":
		if m.mode.Mode() == settings.ModePregnant {
			tracker.RecordEvent(m.kicks)
			m.loadData()
			m.setMessage("Kick recorded", 2*time.Second)
		}
		return m, nil

	case "p":
		if m.showBabyTrackers() && m.settings.Get().PeeEnabled {
			tracker.RecordEvent(m.pees)
			m.loadData()
			m.setMessage("Wet diaper recorded", 2*time.Second)
		}
		return m, nil

	case "o":
		if m.showBabyTrackers() && m.settings.Get().PoopEnabled {
			tracker.RecordEvent(m.poops)
			m.loadData()
			m.setMessage("Dirty diaper recorded", 2*time.Second)
		}
		return m, nil

	case "f":
		// Feed type and amount need flags; point at the CLI.
		m.setMessage("Use 'nestling feed --type breast|formula' to log a feed", 3*time.Second)
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	for _, row := range m.rows {
		sections = append(sections, m.renderTracker(row))
	}

	if med := m.renderMedicines(); med != "" {
		sections = append(sections, med)
	}

	sections = append(sections, m.helpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Nestling")
	day := StyleSubtitle.Render(dates.Today().Display() + "  " + time.Now().Format("15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", day) + "\n"
}

// renderTracker renders one tracker's progress box.
func (m *DashboardModel) renderTracker(row trackerRow) string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render(row.label))
	content.WriteString("\n")
	content.WriteString(StyleCount.Render(fmt.Sprintf("%d", row.count)))
	if row.hasGoal {
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf(" / %d", row.goal)))
	}
	content.WriteString("\n")

	if row.hasGoal && row.goal > 0 {
		barWidth := m.width - 12
		if barWidth < 10 {
			barWidth = 10
		}
		pct := float64(row.count) / float64(row.goal) * 100
		content.WriteString(ProgressBar(pct, barWidth))
		content.WriteString("\n")
	}

	if row.last != nil {
		content.WriteString(StyleSubtitle.Render("Last: " + dates.Clock(*row.last)))
		content.WriteString("\n")
	}
	if row.tenth != nil {
		content.WriteString(StyleSuccess.Render("★ Tenth kick at " + dates.Clock(*row.tenth)))
		content.WriteString("\n")
	}
	if row.detail != "" {
		content.WriteString(StyleSubtitle.Render(row.detail))
		content.WriteString("\n")
	}

	box := StyleTrackerBox
	if row.hasGoal && row.count >= row.goal {
		box = StyleTrackerDoneBox
	}
	return box.Width(m.width - 4).Render(strings.TrimRight(content.String(), "\n"))
}

// renderMedicines renders today's medicine adherence.
func (m *DashboardModel) renderMedicines() string {
	if len(m.meds) == 0 {
		return ""
	}

	var content strings.Builder
	content.WriteString(StyleTitle.Render("Medicines"))
	content.WriteString("\n")

	for i, med := range m.meds {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(med.name + "  " + StyleSubtitle.Render(med.time) + "  " + renderStatus(med.status))
	}

	return StyleMedicineBox.Width(m.width - 4).Render(content.String())
}

func renderStatus(status model.MedicineStatus) string {
	switch status {
	case model.StatusTaken:
		return StyleSuccess.Render("✓ taken")
	case model.StatusMissed:
		return StyleError.Render("✗ missed")
	case model.StatusSnoozed:
		return StyleWarning.Render("⏰ snoozed")
	default:
		return StyleSubtitle.Render("pending")
	}
}

// loadData recomputes today's rows from the stores.
func (m *DashboardModel) loadData() {
	cfg := m.settings.Get()
	m.rows = nil

	if m.mode.Mode() == settings.ModePregnant {
		kicks := m.kicks.Today()
		sum := tracker.SummarizeKicks(kicks)
		row := trackerRow{
			label:   "Kicks",
			count:   sum.Count,
			goal:    cfg.KickGoal,
			hasGoal: true,
			last:    sum.End,
			tenth:   sum.Tenth,
		}
		m.rows = append(m.rows, row)
	}

	if m.showBabyTrackers() {
		if cfg.PeeEnabled {
			m.rows = append(m.rows, eventRow("Wet diapers", m.pees.Today(), cfg.PeeGoal))
		}
		if cfg.PoopEnabled {
			m.rows = append(m.rows, eventRow("Dirty diapers", m.poops.Today(), cfg.PoopGoal))
		}
		m.rows = append(m.rows, m.feedingRow(cfg))
	}

	m.loadMedicines()
}

func eventRow(label string, records []model.EventRecord, goal int) trackerRow {
	sum := tracker.Summarize(records)
	return trackerRow{
		label:   label,
		count:   sum.Count,
		goal:    goal,
		hasGoal: true,
		last:    sum.End,
	}
}

func (m *DashboardModel) feedingRow(cfg settings.Settings) trackerRow {
	feeds := m.feedings.Today()
	sum := tracker.Summarize(feeds)
	row := trackerRow{
		label:   "Feedings",
		count:   sum.Count,
		goal:    cfg.FeedingGoal,
		hasGoal: true,
		last:    sum.End,
	}

	var parts []string
	if cfg.FeedingSeparateSections {
		if cfg.BreastFeedEnabled {
			parts = append(parts, fmt.Sprintf("breast %d", model.BreastFeedCount(feeds)))
		}
		if cfg.FormulaFeedEnabled {
			parts = append(parts, fmt.Sprintf("formula %d", model.FormulaFeedCount(feeds)))
		}
	}
	if cfg.FeedingLogAmount {
		parts = append(parts, fmt.Sprintf("%d ml total", model.TotalMl(feeds)))
	}
	row.detail = strings.Join(parts, "  ·  ")
	return row
}

// loadMedicines joins enabled reminders with today's adherence logs.
func (m *DashboardModel) loadMedicines() {
	m.meds = nil
	logs := m.medicine.GetTodayLogs()
	byMedicine := make(map[string]model.MedicineStatus, len(logs))
	for _, log := range logs {
		byMedicine[log.MedicineID] = log.Status
	}

	for _, med := range m.medicine.List() {
		if !med.Enabled {
			continue
		}
		status, ok := byMedicine[med.ID]
		if !ok {
			status = model.StatusPending
		}
		m.meds = append(m.meds, medLine{name: med.Name, time: med.Time, status: status})
	}
}

func (m *DashboardModel) showBabyTrackers() bool {
	mode := m.mode.Mode()
	return mode == settings.ModeBorn || mode == settings.ModeNotSet
}

// helpBar renders the keyboard shortcut bar.
func (m *DashboardModel) helpBar() string {
	keys := []struct {
		key  string
		desc string
	}{}

	if m.mode.Mode() == settings.ModePregnant {
		keys = append(keys, struct{ key, desc string }{"k", "kick"})
	} else {
		keys = append(keys,
			struct{ key, desc string }{"p", "pee"},
			struct{ key, desc string }{"o", "poop"},
			struct{ key, desc string }{"f", "feed"},
		)
	}
	keys = append(keys,
		struct{ key, desc string }{"r", "refresh"},
		struct{ key, desc string }{"q", "quit"},
	)

	var parts []string
	for _, k := range keys {
		parts = append(parts, StyleHelpKey.Render(k.key)+" "+StyleHelpDesc.Render(k.desc))
	}
	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI. A day-rollover watcher re-keys the view
// shortly after local midnight so an overnight session shows the right
// day.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())

	rollover := dates.NewRollover(func(day dates.DayKey) {
		p.Send(dayChangedMsg{day: day})
	})
	rollover.Start()
	defer rollover.Stop()

	_, err := p.Run()
	return err
}
