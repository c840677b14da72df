// Package ui renders check progress in the terminal.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"dalc/internal/driver"
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []unitItem
	index   map[string]int
	width   int
	done    bool
}

type unitItem struct {
	path   string
	status driver.Status
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that lists units with their
// status and an overall progress bar. It quits when events is closed.
func NewProgressModel(title string, paths []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]unitItem, 0, len(paths))
	index := make(map[string]int, len(paths))
	for i, path := range paths {
		items = append(items, unitItem{path: path, status: driver.StatusQueued})
		index[path] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.prog.Update(msg)
		m.prog = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %s (%d/%d)", m.spinner.View(), m.title, m.finished(), len(m.items))
	if m.done {
		header = fmt.Sprintf("done: %s (%d units)", m.title, len(m.items))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := item.status.String()
		styled := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, status))
		fmt.Fprintf(&b, "  %s %s\n", styled, truncate(filepath.ToSlash(item.path), nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if item.status.Finished() {
			n++
		}
	}
	return n
}

// percent counts a unit being checked as half done.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 1
	}
	total := 0.0
	for _, item := range m.items {
		switch {
		case item.status.Finished():
			total++
		case item.status == driver.StatusChecking:
			total += 0.5
		}
	}
	return total / float64(len(m.items))
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone, driver.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusChecking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
