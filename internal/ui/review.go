// Package ui contains the interactive fix-review screen. It shows one
// candidate fix at a time with a preview of the replacement and lets
// the user accept or skip it.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ReviewItem is one fix offered for review.
type ReviewItem struct {
	FixID   string
	Path    string
	Line    uint32
	Message string
	Title   string
	OldText string
	NewText string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	oldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	counterStyle = lipgloss.NewStyle().Bold(true)
)

type reviewModel struct {
	items    []ReviewItem
	index    int
	accepted []string
	view     viewport.Model
	width    int
	done     bool
	aborted  bool
}

func newReviewModel(items []ReviewItem) *reviewModel {
	vp := viewport.New(78, 12)
	return &reviewModel{items: items, view: vp, width: 80}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.view.Width = msg.Width - 2
		m.view.Height = msg.Height - 8
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "enter":
			m.accepted = append(m.accepted, m.items[m.index].FixID)
			return m.advance()
		case "n", "s":
			return m.advance()
		case "a":
			// принять текущий и все оставшиеся
			for _, it := range m.items[m.index:] {
				m.accepted = append(m.accepted, it.FixID)
			}
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *reviewModel) advance() (tea.Model, tea.Cmd) {
	m.index++
	if m.index >= len(m.items) {
		m.done = true
		return m, tea.Quit
	}
	m.syncViewport()
	return m, nil
}

func (m *reviewModel) syncViewport() {
	m.view.SetContent(m.preview(m.items[m.index]))
	m.view.GotoTop()
}

func (m *reviewModel) preview(it ReviewItem) string {
	var b strings.Builder
	for _, line := range strings.Split(it.OldText, "\n") {
		b.WriteString(oldStyle.Render("- "+line) + "\n")
	}
	for _, line := range strings.Split(it.NewText, "\n") {
		b.WriteString(newStyle.Render("+ "+line) + "\n")
	}
	return b.String()
}

func (m *reviewModel) View() string {
	if m.done || m.aborted || m.index >= len(m.items) {
		return ""
	}
	it := m.items[m.index]

	location := fmt.Sprintf("%s:%d", it.Path, it.Line)
	header := headerStyle.Render(it.Message)
	counter := counterStyle.Render(fmt.Sprintf("[%d/%d]", m.index+1, len(m.items)))

	title := it.Title
	if title == "" {
		title = "suggested fix"
	}

	var b strings.Builder
	b.WriteString(counter + " " + header + "\n")
	b.WriteString(pathStyle.Render(runewidth.Truncate(location, m.width-1, "…")) + "\n")
	b.WriteString(hintStyle.Render(title) + "\n\n")
	b.WriteString(m.view.View() + "\n")
	b.WriteString(hintStyle.Render("y accept · n skip · a accept rest · q quit"))
	return b.String()
}

// Review runs the interactive screen and returns the IDs of accepted
// fixes. An empty item list returns immediately.
func Review(items []ReviewItem) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	model := newReviewModel(items)
	model.syncViewport()

	prog := tea.NewProgram(model)
	out, err := prog.Run()
	if err != nil {
		return nil, err
	}
	final, ok := out.(*reviewModel)
	if !ok || final.aborted {
		return nil, nil
	}
	return final.accepted, nil
}
