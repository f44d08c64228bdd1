// Package tui provides the Bubble Tea reading trainer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/pacing"
	"github.com/verte-zerg/readpace/internal/session"
)

// Trainer is the session and pacing backend the UI drives.
type Trainer interface {
	StartSession(method string, settings map[string]any) (model.TrainingSession, error)
	UpdateSession(id string, changes ...session.Change) error
	CompleteSession(ctx context.Context, id string) (*model.ProgressRecord, error)
	CheckComprehension(score float64, method string, wpm float64, window int) (model.ComprehensionScore, pacing.Decision)
	Refresh(ctx context.Context) error
	Stats() (model.UserStats, bool)
}

type state int

const (
	stateReady state = iota
	stateReading
	statePaused
	stateCheck
	stateDone
)

type tickMsg struct {
	seq int
}

// Model implements the Bubble Tea reading UI.
type Model struct {
	config  model.Config
	trainer Trainer
	pacer   pacing.Pacer
	title   string
	units   []string

	width  int
	height int

	state     state
	seq       int
	pos       int
	wpm       int
	sessionID string
	finished  bool
	err       string

	wordsRead     int
	passageWords  int
	pendingWords  int
	wpmWordSum    float64
	comprehension []float64
	lastDecision  pacing.Decision
	hasDecision   bool
	lastRecord    *model.ProgressRecord
	allTime       model.UserStats
	hasAllTime    bool
	pivotColumn   int
	passagesRead  int
	passagesTotal int
}

var (
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pivotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a reading TUI model over pre-split display units.
func NewModel(cfg model.Config, trainer Trainer, title string, units []string) *Model {
	pacer := pacing.Pacer{Step: cfg.Step, Min: cfg.MinWPM, Max: cfg.MaxWPM}
	if pacer.Step <= 0 {
		pacer.Step = pacing.DefaultStep
	}
	if pacer.Min <= 0 {
		pacer.Min = pacing.DefaultMinWPM
	}
	if pacer.Max <= 0 {
		pacer.Max = pacing.DefaultMaxWPM
	}
	m := &Model{
		config:  cfg,
		trainer: trainer,
		pacer:   pacer,
		title:   title,
		units:   units,
		wpm:     min(max(cfg.WPM, pacer.Min), pacer.Max),
	}
	m.passagesTotal = m.countPassages()
	m.pivotColumn = 4
	m.loadFooterStats()
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
		return m, nil
	case tickMsg:
		if msg.seq != m.seq || m.state != stateReading {
			return m, nil
		}
		return m, m.advance()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.String() == "q" || msg.Type == tea.KeyEsc {
		m.finish()
		return m, tea.Quit
	}
	switch m.state {
	case stateReady:
		if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
			return m, m.start()
		}
	case stateReading:
		if msg.Type == tea.KeySpace {
			m.state = statePaused
			m.seq++
			break
		}
		switch msg.String() {
		case "+", "=", "up":
			m.wpm = m.pacer.Next(m.wpm, pacing.Increase)
		case "-", "down":
			m.wpm = m.pacer.Next(m.wpm, pacing.Decrease)
		}
	case statePaused:
		if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
			m.state = stateReading
			return m, m.schedule()
		}
	case stateCheck:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '5' {
			return m, m.submitScore(float64(msg.Runes[0] - '0'))
		}
	}
	return m, nil
}

func (m *Model) start() tea.Cmd {
	if len(m.units) == 0 {
		m.err = "nothing to read"
		return nil
	}
	s, err := m.trainer.StartSession(m.config.Method, map[string]any{
		"wpm":     m.wpm,
		"chunk":   m.config.ChunkSize,
		"passage": m.config.PassageSize,
		"source":  m.config.SourceID,
	})
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.sessionID = s.ID
	if m.config.WordListID != "" {
		m.push(session.SetWordList(m.config.WordListID))
	}
	m.state = stateReading
	return m.schedule()
}

func (m *Model) schedule() tea.Cmd {
	m.seq++
	seq := m.seq
	return tea.Tick(unitInterval(m.units[m.pos], m.wpm), func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// unitInterval is the display time for a unit: 60s/wpm per word.
func unitInterval(unit string, wpm int) time.Duration {
	if wpm <= 0 {
		wpm = pacing.DefaultMinWPM
	}
	return time.Duration(wordCount(unit)) * time.Minute / time.Duration(wpm)
}

// advance retires the unit on screen and either shows the next one or asks
// for a comprehension rating at a passage boundary.
func (m *Model) advance() tea.Cmd {
	n := wordCount(m.units[m.pos])
	m.wordsRead += n
	m.passageWords += n
	m.wpmWordSum += float64(m.wpm * n)
	m.pos++
	if m.pos >= len(m.units) || m.passageWords >= m.passageSize() {
		m.state = stateCheck
		return nil
	}
	return m.schedule()
}

func (m *Model) submitScore(score float64) tea.Cmd {
	_, decision := m.trainer.CheckComprehension(score, m.config.Method, float64(m.wpm), m.config.CheckWindow)
	m.lastDecision = decision
	m.hasDecision = true
	m.comprehension = append(m.comprehension, pacing.Percent(score))
	m.wpm = m.pacer.Next(m.wpm, decision)
	m.passagesRead++

	m.pendingWords += m.passageWords
	m.passageWords = 0
	m.push(
		session.AddWords(m.pendingWords),
		session.SetAverageWPM(m.averageWPM()),
		session.SetAverageComprehension(m.averageComprehension()),
		session.SetSetting("wpm", m.wpm),
	)

	if m.pos >= len(m.units) {
		m.state = stateDone
		m.finish()
		return nil
	}
	m.state = stateReading
	return m.schedule()
}

// push applies changes to the running session. Words stay pending until an
// update succeeds.
func (m *Model) push(changes ...session.Change) {
	if m.sessionID == "" {
		return
	}
	if err := m.trainer.UpdateSession(m.sessionID, changes...); err != nil {
		m.err = err.Error()
		return
	}
	m.pendingWords = 0
}

func (m *Model) finish() {
	if m.sessionID == "" || m.finished {
		return
	}
	m.finished = true
	if m.passageWords > 0 {
		m.pendingWords += m.passageWords
		m.passageWords = 0
		m.push(session.AddWords(m.pendingWords), session.SetAverageWPM(m.averageWPM()))
	}
	ctx := context.Background()
	rec, err := m.trainer.CompleteSession(ctx, m.sessionID)
	if err != nil {
		m.err = fmt.Sprintf("failed to save session: %v", err)
	}
	m.lastRecord = rec
	if err := m.trainer.Refresh(ctx); err != nil && m.err == "" {
		m.err = fmt.Sprintf("failed to refresh stats: %v", err)
	}
	m.loadFooterStats()
}

func (m *Model) averageWPM() float64 {
	if m.wordsRead == 0 {
		return 0
	}
	return m.wpmWordSum / float64(m.wordsRead)
}

func (m *Model) averageComprehension() float64 {
	if len(m.comprehension) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m.comprehension {
		sum += v
	}
	return sum / float64(len(m.comprehension))
}

func (m *Model) passageSize() int {
	if m.config.PassageSize <= 0 {
		return 100
	}
	return m.config.PassageSize
}

func (m *Model) countPassages() int {
	total, words := 0, 0
	for _, unit := range m.units {
		words += wordCount(unit)
		if words >= m.passageSize() {
			total++
			words = 0
		}
	}
	if words > 0 {
		total++
	}
	return total
}

func (m *Model) loadFooterStats() {
	st, ok := m.trainer.Stats()
	m.allTime = st
	m.hasAllTime = ok
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderBody() string {
	switch m.state {
	case stateReady:
		lines := []string{accentStyle.Render(m.title), "", promptStyle.Render(fmt.Sprintf("%d WPM · space to start · q to quit", m.wpm))}
		if m.err != "" {
			lines = append(lines, pivotStyle.Render(m.err))
		}
		return strings.Join(lines, "\n")
	case stateCheck:
		return strings.Join([]string{
			wordStyle.Render("How much of that passage did you follow?"),
			"",
			promptStyle.Render("1 lost · 2 little · 3 some · 4 most · 5 all"),
		}, "\n")
	case stateDone:
		return m.renderSummary()
	default:
		unit := m.units[m.pos]
		runes := buildStyledRunes(unit)
		if pad := pivotPad(unit, m.pivotColumn); pad > 0 {
			runes = append([]styledRune{{s: strings.Repeat(" ", pad), width: pad}}, runes...)
		}
		out := wrapStyledRunes(runes, m.contentWidth())
		if m.state == statePaused {
			out += "\n\n" + promptStyle.Render("paused · space to resume")
		}
		return out
	}
}

func (m *Model) renderSummary() string {
	lines := []string{accentStyle.Render("Session complete")}
	if m.lastRecord != nil {
		lines = append(lines,
			fmt.Sprintf("%d words · %.0f WPM · %.0f%% comprehension · %ds",
				m.lastRecord.WordsRead, m.lastRecord.WPM, m.lastRecord.Comprehension, m.lastRecord.DurationSeconds),
		)
	}
	if m.err != "" {
		lines = append(lines, pivotStyle.Render(m.err))
	}
	lines = append(lines, "", promptStyle.Render("q to quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("%d WPM", m.wpm), fmt.Sprintf("Words %d", m.wordsRead)}
	if m.passagesTotal > 0 {
		segments = append(segments, fmt.Sprintf("Passage %d/%d", min(m.passagesRead+1, m.passagesTotal), m.passagesTotal))
	}
	if m.hasDecision {
		segments = append(segments, fmt.Sprintf("Last check: %s", m.lastDecision))
	}
	if m.hasAllTime && m.allTime.TotalSessions > 0 {
		segments = append(segments, fmt.Sprintf("All-time %d WPM · %d sessions · streak %d",
			m.allTime.AverageWPM, m.allTime.TotalSessions, m.allTime.CurrentStreak))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
