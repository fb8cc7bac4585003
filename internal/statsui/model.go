// Package statsui provides the Bubble Tea activity dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/codestreak/internal/model"
	"github.com/verte-zerg/codestreak/internal/stats"
	"github.com/verte-zerg/codestreak/internal/store"
)

const (
	tabOverview = iota
	tabHeatmap
	tabProblems
)

const defaultTrendWindow = 4

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#39D353"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	difficultyStyle = map[model.Difficulty]lipgloss.Style{
		model.Easy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00B8A3")),
		model.Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC01E")),
		model.Hard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF375F")),
	}
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig
	today time.Time

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	eventTable  table.Model
	trendWindow int

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a dashboard model. today anchors streaks and the heatmap.
func NewModel(st *store.Store, cfg model.StatsConfig, today time.Time) *Model {
	m := &Model{
		store:       st,
		cfg:         cfg,
		today:       today,
		tabs:        []string{"Overview", "Heatmap", "Problems"},
		trendWindow: defaultTrendWindow,
	}
	m.initInputs()
	m.initViewports()
	m.eventTable = buildEventTable(nil, 0, 1)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.trendWindow++
			m.renderTabContents()
			return m, nil
		case "-":
			if m.trendWindow > 1 {
				m.trendWindow--
			}
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabProblems {
				m.eventTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabProblems {
				m.eventTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabProblems {
				var cmd tea.Cmd
				m.eventTable, cmd = m.eventTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Platform: "),
		newFilterInput("Since (YYYY-MM-DD): "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.Platform))
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format(model.DayLayout))
	} else {
		m.filterInputs[1].SetValue("")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.eventTable.SetWidth(m.width)
	m.eventTable.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabProblems {
		m.eventTable.Focus()
	} else {
		m.eventTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	platform := m.cfg.Platform
	if platform == "" {
		platform = "all"
	}
	summary := fmt.Sprintf("Filters: platform=%s  range=%s..%s  trend=%dw",
		platform, model.DayKey(m.report.Start), model.DayKey(m.report.End), m.trendWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Trend: -/=  Filters: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabProblems {
		if len(m.report.Events) == 0 {
			return fitLines("No activity found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.eventTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg, m.today)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.eventTable.SetRows(buildEventRows(report.Events))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.trendWindow, width))
	m.viewports[tabHeatmap].SetContent(renderHeatmap(m.report, width))
}

func renderOverview(report stats.Report, window, width int) string {
	if report.Summary.Total == 0 {
		return "No activity found."
	}
	cards := renderSummaryCards(report.Summary, report.Streaks, width)
	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, report.Weekly, window); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	if err := stats.RenderLanguageTable(&buf, report.Summary); err != nil {
		return fmt.Sprintf("Failed to render languages: %v", err)
	}
	if len(report.WeakTags) > 0 {
		parts := make([]string, 0, len(report.WeakTags))
		for _, tag := range report.WeakTags {
			parts = append(parts, fmt.Sprintf("%s %.0f%%", tag.Tag, tag.Acceptance()*100))
		}
		fmt.Fprintf(&buf, "Weakest tags: %s\n", strings.Join(parts, ", "))
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(s stats.Summary, streaks model.StreakStats, width int) string {
	cards := []string{
		metricCard("Solved", fmt.Sprintf("%d", s.Total)),
		metricCard("Current Streak", fmt.Sprintf("%dd", streaks.CurrentStreak)),
		metricCard("Longest Streak", fmt.Sprintf("%dd", streaks.LongestStreak)),
		metricCard("Easy/Med/Hard", fmt.Sprintf("%s/%s/%s",
			difficultyStyle[model.Easy].Render(fmt.Sprintf("%d", s.Breakdown.Easy)),
			difficultyStyle[model.Medium].Render(fmt.Sprintf("%d", s.Breakdown.Medium)),
			difficultyStyle[model.Hard].Render(fmt.Sprintf("%d", s.Breakdown.Hard)))),
		metricCard("Acceptance", fmt.Sprintf("%.1f%%", s.AcceptanceRate*100)),
		metricCard("Active Days", fmt.Sprintf("%d", s.ActiveDays)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHeatmap(report stats.Report, width int) string {
	var buf bytes.Buffer
	hm := report.Heatmap.TrimToWidth(width)
	if err := stats.RenderHeatmap(&buf, hm, true); err != nil {
		return fmt.Sprintf("Failed to render heatmap: %v", err)
	}
	header := headerStyle.Render(fmt.Sprintf("%d solved on %d days", report.Summary.Total, report.Summary.ActiveDays))
	return strings.TrimRight(header+"\n\n"+buf.String(), "\n")
}

func eventColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Problem", Width: 36},
		{Title: "Difficulty", Width: 10},
		{Title: "Language", Width: 10},
		{Title: "Min", Width: 4},
		{Title: "Tries", Width: 5},
		{Title: "Status", Width: 8},
	}
}

func buildEventTable(events []model.Event, width, height int) table.Model {
	t := table.New(
		table.WithColumns(eventColumns()),
		table.WithRows(buildEventRows(events)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(eventTableStyles())
	return t
}

// buildEventRows lists events newest first.
func buildEventRows(events []model.Event) []table.Row {
	rows := make([]table.Row, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		status := "accepted"
		if !ev.IsAccepted {
			status = "failed"
		}
		rows = append(rows, table.Row{
			model.DayKey(ev.SolvedDate),
			truncateLine(ev.ProblemTitle, 36),
			string(ev.Difficulty),
			ev.Language,
			fmt.Sprintf("%d", ev.TimeSpent),
			fmt.Sprintf("%d", ev.AttemptCount),
			status,
		})
	}
	return rows
}

func eventTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.filterInputs[0].Value(), m.filterInputs[1].Value())
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func parseFilter(platformInput, sinceInput string) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Platform: strings.TrimSpace(platformInput)}
	sinceInput = strings.TrimSpace(sinceInput)
	if sinceInput != "" {
		parsed, err := time.ParseInLocation(model.DayLayout, sinceInput, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
