package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emberdeep/emberdeep-resume/internal/saves"
	"github.com/emberdeep/emberdeep-resume/pkg/models"
)

type model struct {
	saveDir       string
	catalog       *saves.Catalog
	selected      *models.SaveRecord
	loadingState  saves.LoadingState
	indicator     *LoadingIndicator
	leftViewport  viewport.Model // saves list
	rightViewport viewport.Model // details pane
	ready         bool
	err           error
	width         int
	height        int
	ctx           context.Context
	cancel        context.CancelFunc
}

func initialModel(saveDir string) model {
	ctx, cancel := context.WithCancel(context.Background())
	return model{
		saveDir:      saveDir,
		loadingState: saves.StateLoadingSaves,
		indicator:    NewLoadingIndicator("Scanning saves..."),
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadCatalogCmd(m.ctx, m.saveDir),
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := msg.Width/2 - 1
		rightWidth := msg.Width - leftWidth - 1
		viewHeight := msg.Height - 3

		if !m.ready {
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.updateViewport()

	case CatalogLoadedMsg:
		m.catalog = msg.Catalog
		m.loadingState = saves.StateIdle
		m.updateViewport()

	case TickMsg:
		if m.loadingState == saves.StateLoadingSaves {
			m.indicator.Tick()
			return m, tickCmd()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Cancel: the interaction ends without a selection.
			m.cancel()
			m.selected = nil
			return m, tea.Quit

		case "up", "k":
			if m.catalog != nil {
				m.catalog.MoveSelection(saves.Previous)
				m.updateViewport()
			}

		case "down", "j":
			if m.catalog != nil {
				m.catalog.MoveSelection(saves.Next)
				m.updateViewport()
			}

		case "enter":
			if m.catalog == nil {
				return m, nil
			}
			if _, err := m.catalog.CommitSelection(); err != nil {
				// Empty catalog: commit is a disabled action, not a crash.
				return m, nil
			}
			m.selected = m.catalog.Selected()
			m.cancel()
			return m, tea.Quit
		}
	}

	var leftCmd, rightCmd tea.Cmd
	m.leftViewport, leftCmd = m.leftViewport.Update(msg)
	m.rightViewport, rightCmd = m.rightViewport.Update(msg)
	cmds = append(cmds, leftCmd, rightCmd)

	return m, tea.Batch(cmds...)
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.leftViewport.SetContent(m.renderSavesList())
	m.rightViewport.SetContent(m.renderDetails())
}

func (m model) renderSavesList() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Saves") + "\n")
	s.WriteString(strings.Repeat("─", max(m.leftViewport.Width-2, 10)) + "\n\n")

	if m.catalog == nil || m.catalog.Len() == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No saves found."))
		return s.String()
	}

	for i, rec := range m.catalog.Records() {
		cursor := "  "
		if i == m.catalog.Cursor() {
			cursor = "> "
		}

		nameStyle := lipgloss.NewStyle()
		if i == m.catalog.Cursor() {
			nameStyle = nameStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			nameStyle = nameStyle.Foreground(lipgloss.Color("252"))
		}
		s.WriteString(nameStyle.Render(cursor+rec.Filename) + "\n")

		timeStyle := lipgloss.NewStyle()
		if i == m.catalog.Cursor() {
			timeStyle = timeStyle.Foreground(lipgloss.Color("245"))
		} else {
			timeStyle = timeStyle.Foreground(lipgloss.Color("238"))
		}
		s.WriteString(timeStyle.Render("  "+rec.SavedAt) + "\n")

		if i < m.catalog.Len()-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderDetails() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Details") + "\n")
	s.WriteString(strings.Repeat("─", max(m.rightViewport.Width-2, 10)) + "\n\n")

	var rec *models.SaveRecord
	if m.catalog != nil {
		rec = m.catalog.Selected()
	}
	if rec == nil {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("Nothing selected"))
		return s.String()
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	wrapWidth := max(m.rightViewport.Width-14, 20)
	fields := []struct {
		label string
		value string
	}{
		{"Character", rec.CharacterName},
		{"Scene", rec.Scene},
		{"Saved", rec.SavedAt},
		{"File", rec.Filename},
		{"Modified", rec.ModTime.Format("2006-01-02 15:04")},
	}
	for _, f := range fields {
		lines := wrapText(f.value, wrapWidth)
		s.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", f.label)))
		for j, line := range lines {
			if j > 0 {
				s.WriteString(strings.Repeat(" ", 10))
			}
			s.WriteString(valueStyle.Render(line) + "\n")
		}
	}

	return s.String()
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.loadingState == saves.StateLoadingSaves {
		return fmt.Sprintf("%s\n%s\n%s",
			header,
			LoadingOverlay(m.width, m.height-3, m.indicator),
			footer)
	}

	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)

	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render("Emberdeep - Load Game")
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: load • esc: cancel • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

// ShowTUI displays the load screen and returns the committed save record,
// or nil when the user cancelled.
func ShowTUI(saveDir string) (*models.SaveRecord, error) {
	p := tea.NewProgram(
		initialModel(saveDir),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selected, nil
}
