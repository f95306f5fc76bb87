// Package tui renders live solve progress for long-running forward
// computations.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type ProgressMsg struct {
	Done, Total int
}

type DoneMsg struct {
	Err error
}

type solveModel struct {
	title     string
	start     time.Time
	done      int
	total     int
	err       error
	finished  bool
	cancel    func()
	cancelled bool
}

func (m solveModel) Init() tea.Cmd { return nil }

func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.done, m.total = msg.Done, msg.Total
		return m, nil
	case DoneMsg:
		m.err = msg.Err
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil && !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m solveModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteByte('\n')

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	filled := int(frac * barWidth)
	sb.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	sb.WriteString(dimStyle.Render(strings.Repeat("░", barWidth-filled)))
	sb.WriteString(fmt.Sprintf(" %5.1f%%  %d/%d points", frac*100, m.done, m.total))
	sb.WriteByte('\n')

	elapsed := time.Since(m.start).Round(time.Millisecond)
	line := fmt.Sprintf("elapsed %v", elapsed)
	if frac > 0 && frac < 1 {
		eta := time.Duration(float64(elapsed)*(1-frac)/frac).Round(time.Second)
		line += fmt.Sprintf("  eta %v", eta)
	}
	if m.cancelled {
		line += "  cancelling..."
	} else {
		line += "  (q to cancel)"
	}
	sb.WriteString(dimStyle.Render(line))
	sb.WriteByte('\n')
	return sb.String()
}

// RunSolve drives a solve under a progress display. start is called on
// its own goroutine with a report callback to feed the bar; cancel is
// invoked when the user aborts. The solve's error is returned.
func RunSolve(title string, cancel func(), start func(report func(done, total int)) error) error {
	p := tea.NewProgram(solveModel{title: title, start: time.Now(), cancel: cancel})

	go func() {
		err := start(func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		p.Send(DoneMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(solveModel); ok {
		return m.err
	}
	return nil
}
