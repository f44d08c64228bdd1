// Package statsui is the interactive stats browser.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/stats"
)

type tab int

const (
	tabOverview tab = iota
	tabHistory
	tabGoals
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabHistory:
		return "History"
	case tabGoals:
		return "Goals"
	default:
		return "Overview"
	}
}

const plotHeight = 10

// Model browses a user's progress, goals and learning curves.
type Model struct {
	src    stats.Source
	userID string
	now    func() time.Time
	cfg    model.StatsConfig

	report stats.Report
	errMsg string

	activeTab tab
	overview  viewport.Model
	tables    map[tab]*table.Model
	filter    filterForm
	help      help.Model

	width, height int
}

// NewModel loads the first report for userID.
func NewModel(src stats.Source, userID string, cfg model.StatsConfig, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	history := newTable(historyColumns())
	goalTable := newTable(goalColumns())
	m := &Model{
		src:      src,
		userID:   userID,
		now:      now,
		cfg:      cfg,
		overview: viewport.New(0, 0),
		tables:   map[tab]*table.Model{tabHistory: &history, tabGoals: &goalTable},
		filter:   newFilterForm(),
		help:     help.New(),
	}
	m.reload()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filter.open {
			cfg, cmd := m.filter.handle(msg)
			if cfg != nil {
				m.cfg = *cfg
				m.reload()
				m.resize()
			}
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.tables[m.activeTab]
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Prev):
		m.switchTab(-1)
		return m, tea.ClearScreen
	case key.Matches(msg, keys.Next):
		m.switchTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, keys.WiderCurve):
		m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
		m.renderOverview()
	case key.Matches(msg, keys.NarrowCurve):
		m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
		m.renderOverview()
	case key.Matches(msg, keys.Reload):
		m.reload()
	case key.Matches(msg, keys.Filter):
		return m, m.filter.show(m.cfg)
	case key.Matches(msg, keys.Top):
		if current != nil {
			current.GotoTop()
		} else {
			m.overview.GotoTop()
		}
	case key.Matches(msg, keys.Bottom):
		if current != nil {
			current.GotoBottom()
		} else {
			m.overview.GotoBottom()
		}
	default:
		var cmd tea.Cmd
		if current != nil {
			*current, cmd = current.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		frame(m.renderBody(), m.width, bodyHeight),
		footer,
	)
}

func (m *Model) switchTab(delta int) {
	m.activeTab = tab((int(m.activeTab) + delta + int(tabCount)) % int(tabCount))
	for id, t := range m.tables {
		if id == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

// bodyHeight is the space left between the header and the footer.
func (m *Model) bodyHeight() int {
	return max(1, m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()))
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := m.bodyHeight()
	m.overview.Width, m.overview.Height = m.width, h
	for _, t := range m.tables {
		fitTable(t, m.width, h)
	}
	m.filter.resize(m.width)
	m.help.Width = m.width
	m.renderOverview()
}

// reload rebuilds the report from the source with the current filters.
func (m *Model) reload() {
	report, err := stats.BuildReport(context.Background(), m.src, m.userID, m.cfg, m.now())
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.tables[tabHistory].SetRows(historyRows(report.Records))
	m.tables[tabGoals].SetRows(goalRows(report.Goals))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		m.overview.SetContent("Failed to load stats.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
}

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, tabCount)
	for t := tabOverview; t < tabCount; t++ {
		style := tabStyle
		if t == m.activeTab {
			style = currentTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		mutedStyle.Render(truncateLine(m.filterSummary(), m.width)),
	)
}

func (m *Model) filterSummary() string {
	method, since, last := "all", "any", "all"
	if m.cfg.Method != "" {
		method = m.cfg.Method
	}
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format(dateLayout)
	}
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	return fmt.Sprintf("method %s · since %s · last %s · window %d", method, since, last, m.cfg.CurveWindow)
}

func (m *Model) renderFooter() string {
	if m.filter.open {
		return m.help.ShortHelpView(filterKeys)
	}
	footer := m.help.View(keys)
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) renderBody() string {
	if m.filter.open {
		return m.filter.view()
	}
	switch m.activeTab {
	case tabHistory:
		if len(m.report.Records) == 0 {
			return "No progress records found."
		}
		return m.tables[tabHistory].View()
	case tabGoals:
		if len(m.report.Goals) == 0 {
			return "No goals yet. Add one with `readpace goals add`."
		}
		return m.tables[tabGoals].View()
	default:
		return m.overview.View()
	}
}
