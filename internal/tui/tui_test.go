// internal/tui/tui_test.go
package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuxai/tuxlaunch/internal/appconfig"
	"github.com/tuxai/tuxlaunch/internal/modelmgr"
)

// newTestModel builds a model backed by a fully materialized model layout.
func newTestModel(t *testing.T) *model {
	t.Helper()
	mgr := modelmgr.Manager{ModelsDir: filepath.Join(t.TempDir(), "models")}
	if err := mgr.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	cfg := &appconfig.Config{ReplyDelayMS: 1}
	return initialModel(cfg, mgr)
}

// TestUpdate tests the Update function of the Bubble Tea model. It verifies
// that the model correctly handles quit keys, window size changes, and the
// enter-driven transition from the mode selector into the simulated loading
// state.
func TestUpdate(t *testing.T) {
	m := newTestModel(t)

	if m.state != viewModeSelector {
		t.Errorf("Expected initial state to be viewModeSelector, got %v", m.state)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected a quit command, but got nil")
	}

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = newModel.(*model)
	if m.width != 100 || m.height != 40 {
		t.Errorf("Expected width and height to be set, got %d and %d", m.width, m.height)
	}

	newModel, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	if m.state != viewLoading {
		t.Errorf("Expected state to be viewLoading after enter, got %v", m.state)
	}
	if cmd == nil {
		t.Error("Expected a stage command after entering loading state")
	}
	if m.selectedMode != modelmgr.ModeFull {
		t.Errorf("Expected first listed mode to be selected, got %q", m.selectedMode)
	}
}

// TestLoadingProgression walks the stage messages through to completion and
// verifies the transition into the chat view with a greeting in the
// transcript.
func TestLoadingProgression(t *testing.T) {
	m := newTestModel(t)
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)

	for i := 1; i < len(m.loadPlan); i++ {
		newModel, cmd := m.Update(stageDoneMsg{next: i})
		m = newModel.(*model)
		if m.loadStage != i {
			t.Fatalf("loadStage = %d, want %d", m.loadStage, i)
		}
		if cmd == nil {
			t.Fatal("expected a follow-up stage command")
		}
	}

	newModel, _ = m.Update(loadCompleteMsg{})
	m = newModel.(*model)
	if m.state != viewChat {
		t.Fatalf("expected viewChat after load completion, got %v", m.state)
	}
	if len(m.chatHistory) != 1 || m.chatHistory[0].role != "assistant" {
		t.Fatalf("expected a greeting message, got %+v", m.chatHistory)
	}
}

// TestChatRoundTrip submits a prompt and drains the reply chunks, verifying
// the transcript picks up both sides of the exchange and input is re-enabled.
func TestChatRoundTrip(t *testing.T) {
	m := newTestModel(t)
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	newModel, _ = m.Update(loadCompleteMsg{})
	m = newModel.(*model)

	m.textArea.SetValue("hello")
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	if cmd == nil {
		t.Fatal("expected a reply tick command")
	}
	if !m.isReplying {
		t.Fatal("expected the model to be replying")
	}
	if m.chatHistory[len(m.chatHistory)-1].content != "hello" {
		t.Fatalf("expected user message in transcript, got %+v", m.chatHistory)
	}

	for i := 0; i < 200 && m.isReplying; i++ {
		newModel, _ = m.Update(replyChunkMsg{})
		m = newModel.(*model)
	}
	if m.isReplying {
		t.Fatal("reply never completed")
	}
	last := m.chatHistory[len(m.chatHistory)-1]
	if last.role != "assistant" || last.content == "" {
		t.Fatalf("expected a completed assistant reply, got %+v", last)
	}
}

// TestView checks that the correct UI is rendered for different states of the
// application: the mode selector, the loading screen with its stage caption,
// and the chat transcript.
func TestView(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if view := m.View(); !strings.Contains(view, "Select a Model Mode") {
		t.Errorf("mode selector view missing title: %q", view)
	}

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	if view := m.View(); !strings.Contains(view, m.loadPlan[0].Name) {
		t.Errorf("loading view missing stage name: %q", view)
	}

	newModel, _ = m.Update(loadCompleteMsg{})
	m = newModel.(*model)
	if view := m.View(); !strings.Contains(view, "Tux AI") {
		t.Errorf("chat view missing header: %q", view)
	}
}

// TestEmptyPromptIgnored verifies that submitting a blank prompt neither
// mutates the transcript nor schedules a reply.
func TestEmptyPromptIgnored(t *testing.T) {
	m := newTestModel(t)
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	newModel, _ = m.Update(loadCompleteMsg{})
	m = newModel.(*model)

	before := len(m.chatHistory)
	m.textArea.SetValue("   ")
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(*model)
	if len(m.chatHistory) != before {
		t.Fatal("blank prompt should not enter the transcript")
	}
	if m.isReplying {
		t.Fatal("blank prompt should not start a reply")
	}
}
