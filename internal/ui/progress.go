// Package ui renders the live view of `slang diag DIR --ui`.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"slang/internal/driver"
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowWorking
	rowDone
	rowCached
	rowFailed
)

func (s rowState) finished() bool { return s >= rowDone }

// stages: подпись и доля прогресса, достигнутая к началу стадии
var stages = map[driver.Stage]struct {
	label string
	share float64
}{
	driver.StageTokenize: {"lexing", 0.1},
	driver.StageSyntax:   {"parsing", 0.4},
	driver.StageSema:     {"checking", 0.7},
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stateStyle = map[rowState]lipgloss.Style{
		rowQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		rowWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		rowDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type row struct {
	path  string
	state rowState
	stage driver.Stage
	took  time.Duration
}

func (r row) label() string {
	switch r.state {
	case rowWorking:
		if s, ok := stages[r.stage]; ok {
			return s.label
		}
		return "working"
	case rowDone:
		return "ok"
	case rowCached:
		return "cached"
	case rowFailed:
		return "error"
	}
	return "queued"
}

func (r row) share() float64 {
	if r.state.finished() {
		return 1
	}
	return stages[r.stage].share
}

type diagModel struct {
	title  string
	events <-chan driver.ProgressEvent
	spin   spinner.Model
	bar    progress.Model
	rows   []row
	byPath map[string]int
	width  int
	done   bool
}

type eventMsg driver.ProgressEvent
type doneMsg struct{}

// NewProgressModel shows one row per file plus an overall bar. The model
// quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	m := &diagModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(stateStyle[rowWorking])),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = row{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *diagModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for one driver event.
func (m *diagModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *diagModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.ProgressEvent(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 24)
		m.bar.Width = m.width - 4
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *diagModel) apply(ev driver.ProgressEvent) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	switch ev.Status {
	case driver.StatusQueued:
		r.state = rowQueued
	case driver.StatusWorking:
		r.state = rowWorking
		r.stage = ev.Stage
	case driver.StatusDone:
		r.state, r.took = rowDone, ev.Elapsed
	case driver.StatusCached:
		r.state, r.took = rowCached, ev.Elapsed
	case driver.StatusError:
		r.state, r.took = rowFailed, ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *diagModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.share()
	}
	return sum / float64(len(m.rows))
}

func (m *diagModel) counts() (finished, failed int) {
	for _, r := range m.rows {
		if r.state.finished() {
			finished++
		}
		if r.state == rowFailed {
			failed++
		}
	}
	return finished, failed
}

func (m *diagModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	finished, failed := m.counts()
	var b strings.Builder
	if m.done {
		b.WriteString(styleTitle.Render("done: " + m.title))
	} else {
		b.WriteString(m.spin.View() + " " + styleTitle.Render(m.title))
	}
	b.WriteString(styleDim.Render(fmt.Sprintf("  %d/%d files", finished, len(m.rows))))
	b.WriteString("\n\n")

	pathWidth := max(m.width-24, 16)
	for _, r := range m.rows {
		took := ""
		if r.state.finished() && r.took > 0 {
			took = styleDim.Render(fmt.Sprintf(" %s", r.took.Round(time.Millisecond)))
		}
		fmt.Fprintf(&b, "  %s %s%s\n", stateStyle[r.state].Render(fmt.Sprintf("%9s", r.label())), shortenPath(r.path, pathWidth), took)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	if failed > 0 {
		b.WriteString(stateStyle[rowFailed].Render(fmt.Sprintf("%d file(s) with errors", failed)) + "\n")
	}
	return b.String()
}

// shortenPath keeps the tail of a path, where the file name is, and marks
// the cut with "...". Widths are terminal cells.
func shortenPath(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	const marker = "..."
	budget := width - len(marker)
	if budget <= 0 {
		return marker[:width]
	}
	runes := []rune(path)
	cut := len(runes)
	for used := 0; cut > 0; cut-- {
		w := runewidth.RuneWidth(runes[cut-1])
		if used+w > budget {
			break
		}
		used += w
	}
	return marker + string(runes[cut:])
}
