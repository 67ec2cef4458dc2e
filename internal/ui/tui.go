// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/registry"
)

// GroupSource is the part of the engine the group browser needs.
type GroupSource interface {
	Game() string
	GroupIDs() []string
	GetContainerGroup(groupID string) *container.Group
	Stats() registry.Stats
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	tickInterval time.Duration
}

// WithRefreshInterval sets how often group state is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// RunTUI starts the group browser.
func RunTUI(ctx context.Context, src GroupSource, opts ...TUIOption) error {
	c := &tuiConfig{tickInterval: time.Second}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newTUIModel(src, c.tickInterval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type groupRow struct {
	id      string
	enabled int
	total   int
}

func (r groupRow) state() string {
	switch {
	case r.enabled == r.total:
		return "on"
	case r.enabled == 0:
		return "off"
	default:
		return "mixed"
	}
}

type tuiModel struct {
	src          GroupSource
	rows         []groupRow
	stats        registry.Stats
	cursor       int
	message      string
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(src GroupSource, interval time.Duration) *tuiModel {
	m := &tuiModel{src: src, tickInterval: interval}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ", "enter":
			m.toggle()
		case "e":
			m.setAll(true)
		case "d":
			m.setAll(false)
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

// toggle flips the selected group. A mixed group is enabled.
func (m *tuiModel) toggle() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	group := m.src.GetContainerGroup(row.id)
	if row.state() == "on" {
		group.Disable()
		m.message = "disabled " + row.id
	} else {
		group.Enable()
		m.message = "enabled " + row.id
	}
	m.refresh()
}

func (m *tuiModel) setAll(enabled bool) {
	for _, row := range m.rows {
		group := m.src.GetContainerGroup(row.id)
		if enabled {
			group.Enable()
		} else {
			group.Disable()
		}
	}
	if enabled {
		m.message = "enabled all groups"
	} else {
		m.message = "disabled all groups"
	}
	m.refresh()
}

func (m *tuiModel) refresh() {
	ids := m.src.GroupIDs()
	rows := make([]groupRow, 0, len(ids))
	for _, id := range ids {
		group := m.src.GetContainerGroup(id)
		rows = append(rows, groupRow{id: id, enabled: group.EnabledCount(), total: group.Len()})
	}
	m.rows = rows
	m.stats = m.src.Stats()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.src.Game())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeStats(&b, m.stats)
	writeGroups(&b, m.rows, m.cursor)
	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, game string) {
	title := "Ryo Groups"
	if game != "" {
		title += " - " + game
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeStats(b *strings.Builder, s registry.Stats) {
	b.WriteString(fmt.Sprintf("  Cues: %d  Files: %d  Data: %d  Movies: %d  Containers: %d\n\n",
		s.Cues, s.Files, s.Data, s.Movies, s.Containers))
}

func writeGroups(b *strings.Builder, rows []groupRow, cursor int) {
	b.WriteString("Groups\n\n")
	if len(rows) == 0 {
		b.WriteString("  No groups configured. Set group_id in a media config.\n\n")
		return
	}
	for i, row := range rows {
		pointer := " "
		if i == cursor {
			pointer = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%-5s] %s (%d/%d enabled)\n", pointer, row.state(), row.id, row.enabled, row.total))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  up/k down/j  Move\n")
	b.WriteString("  space, enter Toggle group\n")
	b.WriteString("  e            Enable all groups\n")
	b.WriteString("  d            Disable all groups\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | space to toggle | q to quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
