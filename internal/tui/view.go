// internal/tui/view.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuxai/tuxlaunch/internal/util"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	stageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View renders the UI for the model's current state.
func (m *model) View() string {
	switch m.state {
	case viewModeSelector:
		var b strings.Builder
		b.WriteString(m.modeList.View())
		if m.err != nil {
			b.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}
		b.WriteString("\n" + helpStyle.Render("enter: load · q: quit"))
		return b.String()

	case viewLoading:
		stage := m.loadPlan[m.loadStage]
		percent := float64(m.loadStage) / float64(len(m.loadPlan))
		return fmt.Sprintf(
			"\n  %s Loading %s model\n\n  %s\n\n  %s\n",
			m.spinner.View(),
			m.selectedMode,
			m.progress.ViewAs(percent),
			stageStyle.Render(fmt.Sprintf("[%d/%d] %s", m.loadStage+1, len(m.loadPlan), stage.Name)),
		)

	case viewChat:
		header := titleStyle.Render("Tux AI") + stageStyle.Render("  ("+m.selectedMode+" mode, local)")
		footer := m.textArea.View()
		if m.isReplying {
			footer = m.spinner.View() + " thinking..."
		}
		help := helpStyle.Render("enter: send · tab: model modes · ctrl+c: quit")
		return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, m.viewport.View(), footer, help)
	}
	return ""
}

// refreshViewport re-renders the transcript, including any in-flight
// streaming reply, and pins the viewport to the bottom.
func (m *model) refreshViewport() {
	wrap := func(s string) string {
		return util.WrapToWidth(s, m.viewport.Width-6)
	}
	var b strings.Builder
	for _, msg := range m.chatHistory {
		switch msg.role {
		case "user":
			b.WriteString(userStyle.Render("You: ") + wrap(msg.content) + "\n\n")
		default:
			b.WriteString(assistantStyle.Render("Tux: ") + wrap(msg.content) + "\n\n")
		}
	}
	if m.responseBuf.Len() > 0 {
		b.WriteString(assistantStyle.Render("Tux: ") + wrap(m.responseBuf.String()))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}
