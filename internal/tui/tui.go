// internal/tui/tui.go
// Package tui implements the chat interface. The model selector, loading
// screen, and chat flow are real; the model behind them is not — loading is a
// timed animation over modelmgr's load plan and replies come from the canned
// responder, streamed in word chunks to look alive.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuxai/tuxlaunch/internal/appconfig"
	"github.com/tuxai/tuxlaunch/internal/logging"
	"github.com/tuxai/tuxlaunch/internal/modelmgr"
	"github.com/tuxai/tuxlaunch/internal/responder"
)

// viewState represents the current view or screen of the application.
type viewState int

const (
	// viewModeSelector is the state where the user selects a model mode.
	viewModeSelector viewState = iota
	// viewLoading is the state where the simulated model load plays out.
	viewLoading
	// viewChat is the state where the user is interacting with the chat.
	viewChat
)

// chatMessage is a single exchange entry in the transcript.
type chatMessage struct {
	role    string
	content string
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	config  *appconfig.Config
	manager modelmgr.Manager

	state         viewState
	err           error
	width, height int

	modeList list.Model
	spinner  spinner.Model
	progress progress.Model
	textArea textarea.Model
	viewport viewport.Model

	selectedMode string
	loadPlan     []modelmgr.LoadStage
	loadStage    int

	chatHistory  []chatMessage
	pendingReply []string
	responseBuf  strings.Builder
	isReplying   bool
}

// item represents a selectable item in a Bubble Tea list.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// stageDoneMsg advances the simulated load to the next stage.
type stageDoneMsg struct{ next int }

// loadCompleteMsg is sent when the simulated load has finished.
type loadCompleteMsg struct{}

// replyChunkMsg carries the next chunk of a simulated streaming reply.
type replyChunkMsg struct{}

// initialModel creates and initializes a new model with default values.
func initialModel(cfg *appconfig.Config, mgr modelmgr.Manager) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()
	ta.Prompt = "Ask Tux: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	modeItems := make([]list.Item, 0, len(modelmgr.Modes))
	for _, info := range mgr.Available() {
		desc := "Not installed — run `tuxlaunch install`"
		if info.Present {
			desc = info.Path
		}
		modeItems = append(modeItems, item{title: info.Mode, desc: desc})
	}
	modeDelegate := list.NewDefaultDelegate()
	modeList := list.New(modeItems, modeDelegate, 0, 0)
	modeList.Title = "Select a Model Mode"

	vp := viewport.New(100, 5)

	return &model{
		config:   cfg,
		manager:  mgr,
		state:    viewModeSelector,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		textArea: ta,
		modeList: modeList,
		viewport: vp,
	}
}

// stageCmd schedules the end of the current load stage.
func stageCmd(plan []modelmgr.LoadStage, idx int) tea.Cmd {
	return tea.Tick(plan[idx].Duration, func(time.Time) tea.Msg {
		if idx+1 >= len(plan) {
			return loadCompleteMsg{}
		}
		return stageDoneMsg{next: idx + 1}
	})
}

// replyTickCmd paces the simulated streaming of a canned reply.
func replyTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replyChunkMsg{}
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != viewChat {
				return m, tea.Quit
			}
		case "tab":
			if m.state == viewChat {
				m.state = viewModeSelector
				return m, nil
			}
		case "enter":
			switch m.state {
			case viewModeSelector:
				return m.startLoading()
			case viewChat:
				return m.submitPrompt()
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modeList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		m.progress.Width = msg.Width - 8
		headerHeight := 4
		footerHeight := 5
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.refreshViewport()

	case stageDoneMsg:
		m.loadStage = msg.next
		return m, stageCmd(m.loadPlan, m.loadStage)

	case loadCompleteMsg:
		m.state = viewChat
		m.textArea.Focus()
		m.chatHistory = append(m.chatHistory, chatMessage{
			role:    "assistant",
			content: fmt.Sprintf("Model ready in %s mode. How can I help?", m.selectedMode),
		})
		m.refreshViewport()
		logging.LogStage("chat", "event=model-ready", "mode="+m.selectedMode)
		return m, nil

	case replyChunkMsg:
		if len(m.pendingReply) == 0 {
			return m, nil
		}
		if m.responseBuf.Len() > 0 {
			m.responseBuf.WriteByte(' ')
		}
		m.responseBuf.WriteString(m.pendingReply[0])
		m.pendingReply = m.pendingReply[1:]
		m.refreshViewport()
		if len(m.pendingReply) == 0 {
			m.chatHistory = append(m.chatHistory, chatMessage{
				role:    "assistant",
				content: m.responseBuf.String(),
			})
			m.responseBuf.Reset()
			m.isReplying = false
			m.textArea.Focus()
			m.refreshViewport()
			return m, nil
		}
		return m, replyTickCmd(m.config.ReplyDelay())

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state {
	case viewModeSelector:
		m.modeList, cmd = m.modeList.Update(msg)
		cmds = append(cmds, cmd)
	case viewChat:
		if !m.isReplying {
			m.textArea, cmd = m.textArea.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startLoading validates the highlighted mode and kicks off the simulated
// load sequence.
func (m *model) startLoading() (tea.Model, tea.Cmd) {
	selected, ok := m.modeList.SelectedItem().(item)
	if !ok {
		return m, nil
	}
	mode, err := m.manager.Switch(m.selectedMode, selected.title)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.selectedMode = mode
	m.loadPlan = modelmgr.LoadPlan(mode)
	m.loadStage = 0
	m.state = viewLoading
	logging.LogStage("chat", "event=load-start", "mode="+mode)
	return m, tea.Batch(m.spinner.Tick, stageCmd(m.loadPlan, 0))
}

// submitPrompt appends the user's message to the transcript and schedules the
// canned reply as a chunked stream.
func (m *model) submitPrompt() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.textArea.Value())
	if prompt == "" || m.isReplying {
		return m, nil
	}
	m.chatHistory = append(m.chatHistory, chatMessage{role: "user", content: prompt})
	m.textArea.Reset()
	m.textArea.Blur()
	m.pendingReply = strings.Fields(responder.Reply(prompt))
	m.isReplying = true
	m.refreshViewport()
	return m, replyTickCmd(m.config.ReplyDelay())
}

// Start runs the chat program until the user quits. It is the application
// entry point the launcher hands control to after the environment is ready.
func Start(cfg *appconfig.Config) error {
	mgr := modelmgr.Manager{ModelsDir: cfg.ModelsDir()}
	m := initialModel(cfg, mgr)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat program: %w", err)
	}
	return nil
}
