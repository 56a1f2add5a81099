// Package tui implements the Bubble Tea findings browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/prsift/internal/model"
)

// fileGroup pairs one changed file with its findings. A trailing group
// with an empty path collects findings that name no file.
type fileGroup struct {
	path     string
	file     *model.FileChange
	findings []model.Finding
}

func (g fileGroup) label() string {
	if g.path == "" {
		return "(change-set)"
	}
	return g.path
}

// Model is the top-level Bubble Tea model for prsift.
type Model struct {
	result *model.Result
	groups []fileGroup

	// UI state
	width  int
	height int

	fileIndex    int // currently selected group
	scrollOffset int // scroll position within the findings panel

	// Rendered lines for the current group
	lines []string

	showHelp bool
}

// New creates a TUI model from an analysis result.
func New(result *model.Result) Model {
	m := Model{
		result: result,
		groups: buildGroups(result),
	}
	m.updateLines()
	return m
}

func buildGroups(result *model.Result) []fileGroup {
	byPath := make(map[string][]model.Finding)
	for _, f := range result.Findings {
		byPath[f.FilePath] = append(byPath[f.FilePath], f)
	}

	var groups []fileGroup
	seen := make(map[string]bool)
	for i := range result.KeyFiles {
		f := &result.KeyFiles[i]
		groups = append(groups, fileGroup{
			path:     f.Path,
			file:     f,
			findings: byPath[f.Path],
		})
		seen[f.Path] = true
	}

	// findings outside the key file list, including file-less ones
	var loose []model.Finding
	for _, f := range result.Findings {
		if !seen[f.FilePath] {
			loose = append(loose, f)
		}
	}
	if len(loose) > 0 {
		groups = append(groups, fileGroup{findings: loose})
	}

	return groups
}

func (m *Model) updateLines() {
	if len(m.groups) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFindings(m.groups[m.fileIndex])
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.groups)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.NextFinding):
			m.jumpToFinding(1)

		case key.Matches(msg, keys.PrevFinding):
			m.jumpToFinding(-1)

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

// jumpToFinding moves the selection to the next or previous group that has
// findings.
func (m *Model) jumpToFinding(dir int) {
	for i := m.fileIndex + dir; i >= 0 && i < len(m.groups); i += dir {
		if len(m.groups[i].findings) > 0 {
			m.fileIndex = i
			m.scrollOffset = 0
			m.updateLines()
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	fileListWidth := m.fileListWidth()
	findingWidth := m.width - fileListWidth - 1

	fileList := m.renderFileList(fileListWidth, m.height-2)
	findingView := m.renderFindingView(findingWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", findingView)
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) fileListWidth() int {
	maxLen := 20
	for _, g := range m.groups {
		if n := len(g.label()); n > maxLen {
			maxLen = n
		}
	}
	w := maxLen + 8 // padding + finding count
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	for i, g := range m.groups {
		name := g.label()

		maxName := width - 8
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		marker := "  "
		if n := len(g.findings); n > 0 {
			marker = fmt.Sprintf("%d!", n)
		}
		line := fmt.Sprintf("%-*s %s", maxName, name, marker)

		var style lipgloss.Style
		switch {
		case i == m.fileIndex:
			style = fileItemSelectedStyle
		case len(g.findings) == 0:
			style = fileItemCleanStyle
		default:
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(m.groups)-1 {
			b.WriteByte('\n')
		}
	}

	return fileListStyle.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderFindingView(width, height int) string {
	innerHeight := height - 2
	if len(m.groups) == 0 {
		return findingViewStyle.Width(width).Height(innerHeight).Render("No files analyzed")
	}

	g := m.groups[m.fileIndex]
	header := fileHeaderStyle.Render(g.label())

	visibleLines := innerHeight - 2
	if visibleLines < 1 {
		visibleLines = 1
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	end := m.scrollOffset + visibleLines
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(m.lines[i])
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return findingViewStyle.Width(width).Height(innerHeight).Render(b.String())
}

// renderFindings produces display lines for one file group.
func renderFindings(g fileGroup) []string {
	if len(g.findings) == 0 {
		lines := []string{fileItemCleanStyle.Render("No findings for this file.")}
		if g.file != nil {
			lines = append(lines, "",
				fmt.Sprintf("%s  +%d -%d", g.file.Status, g.file.Additions, g.file.Deletions))
		}
		return lines
	}

	var lines []string
	for i, f := range g.findings {
		badge := severityStyleFor(f.Severity).Render(strings.ToUpper(f.Severity.String()))
		lines = append(lines, fmt.Sprintf("%s %s %s",
			badge,
			categoryStyle.Render("["+f.Category.String()+"]"),
			findingTitleStyle.Render(f.Title)))

		if f.Line > 0 {
			lines = append(lines, findingDetailStyle.Render(fmt.Sprintf("  line %d", f.Line)))
		}
		if f.Description != "" && f.Description != f.Title {
			lines = append(lines, findingDetailStyle.Render("  "+f.Description))
		}
		if f.Snippet != "" {
			lines = append(lines, "  "+snippetStyle.Render(highlightSnippet(g.path, f.Snippet)))
		}
		if f.Suggestion != "" {
			lines = append(lines, suggestionStyle.Render("  → "+f.Suggestion))
		}
		if i < len(g.findings)-1 {
			lines = append(lines, "")
		}
	}
	return lines
}

func severityStyleFor(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityHigh:
		return severityHighStyle
	case model.SeverityMedium:
		return severityMediumStyle
	case model.SeverityLow:
		return severityLowStyle
	default:
		return severityInfoStyle
	}
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" File %d/%d", m.fileIndex+1, len(m.groups))
	if len(m.lines) > 0 {
		left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
	}

	right := fmt.Sprintf("%s  ? help ", m.result.SummaryLine())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(fileHeaderStyle.Render("prsift — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"↑/k", "Scroll up"},
		{"↓/j", "Scroll down"},
		{"n/Tab", "Next file"},
		{"N/S-Tab", "Previous file"},
		{"]", "Next file with findings"},
		{"[", "Previous file with findings"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

// Run starts the TUI application.
func Run(result *model.Result) error {
	m := New(result)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
