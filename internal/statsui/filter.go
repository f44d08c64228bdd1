package statsui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readpace/internal/model"
)

const (
	fieldMethod = iota
	fieldSince
	fieldLast
	fieldWindow
)

const dateLayout = "2006-01-02"

// filterForm edits the report filters in place of the body.
type filterForm struct {
	inputs []textinput.Model
	focus  int
	err    string
	open   bool
}

func newFilterForm() filterForm {
	prompts := []string{"Method: ", "Since (YYYY-MM-DD): ", "Last sessions: ", "Curve window: "}
	inputs := make([]textinput.Model, len(prompts))
	for i, prompt := range prompts {
		inputs[i] = textinput.New()
		inputs[i].Prompt = prompt
		inputs[i].PromptStyle = mutedStyle
	}
	return filterForm{inputs: inputs}
}

// show fills the fields from cfg and focuses the first one.
func (f *filterForm) show(cfg model.StatsConfig) tea.Cmd {
	f.inputs[fieldMethod].SetValue(cfg.Method)
	f.inputs[fieldSince].SetValue("")
	if cfg.Since != nil {
		f.inputs[fieldSince].SetValue(cfg.Since.Format(dateLayout))
	}
	f.inputs[fieldLast].SetValue("")
	if cfg.Last > 0 {
		f.inputs[fieldLast].SetValue(strconv.Itoa(cfg.Last))
	}
	f.inputs[fieldWindow].SetValue(strconv.Itoa(max(1, cfg.CurveWindow)))
	f.err = ""
	f.open = true
	return f.focusField(fieldMethod)
}

func (f *filterForm) resize(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-lipgloss.Width(f.inputs[i].Prompt)-2)
	}
}

func (f *filterForm) focusField(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = (i%n + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

// handle processes a key while the form is open. It returns the parsed
// config once the user applies valid values.
func (f *filterForm) handle(msg tea.KeyMsg) (*model.StatsConfig, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		f.open = false
		return nil, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(f.inputs)
		if err != nil {
			f.err = err.Error()
			return nil, nil
		}
		f.open = false
		return &cfg, nil
	case tea.KeyTab, tea.KeyDown:
		return nil, f.focusField(f.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return nil, f.focusField(f.focus - 1)
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return nil, cmd
}

func (f *filterForm) view() string {
	var b strings.Builder
	b.WriteString("Filters\n\n")
	for _, input := range f.inputs {
		b.WriteString(input.View())
		b.WriteByte('\n')
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err))
	}
	return strings.TrimRight(b.String(), "\n")
}

func parseFilter(inputs []textinput.Model) (model.StatsConfig, error) {
	value := func(i int) string { return strings.TrimSpace(inputs[i].Value()) }
	cfg := model.StatsConfig{Method: value(fieldMethod), CurveWindow: 1}

	if v := value(fieldSince); v != "" {
		since, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return model.StatsConfig{}, errors.New("since must be a YYYY-MM-DD date")
		}
		cfg.Since = &since
	}
	if v := value(fieldLast); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return model.StatsConfig{}, errors.New("last must be 0 or a positive number")
		}
		cfg.Last = n
	}
	if v := value(fieldWindow); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return model.StatsConfig{}, errors.New("curve window must be at least 1")
		}
		cfg.CurveWindow = n
	}
	return cfg, nil
}
