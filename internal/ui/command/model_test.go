package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeLine(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func submit(t *testing.T, m Model) (Model, CommandMsg) {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(CommandMsg)
	if !ok {
		t.Fatalf("enter produced %T", cmd())
	}
	return m, msg
}

func TestEnterEmitsTrimmedCommand(t *testing.T) {
	m := New(80, 20, []string{"exportar"})
	m.Focus()
	m = typeLine(m, "  exportar datos.yaml ")

	m, msg := submit(t, m)
	if msg != "exportar datos.yaml" {
		t.Errorf("CommandMsg = %q", msg)
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset: %q", m.input.Value())
	}
}

func TestEscDismisses(t *testing.T) {
	m := New(80, 20, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || cmd() != CommandMsg("") {
		t.Error("esc should emit an empty CommandMsg")
	}
}

func TestHistoryRecall(t *testing.T) {
	m := New(80, 20, nil)
	m.Focus()
	m = typeLine(m, "panel")
	m, _ = submit(t, m)
	m = typeLine(m, "ics")
	m, _ = submit(t, m)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "ics" {
		t.Fatalf("first up = %q, want ics", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "panel" {
		t.Fatalf("up past oldest = %q, want panel", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "" {
		t.Errorf("down past newest = %q, want empty", got)
	}
}

func TestMatchesByPrefix(t *testing.T) {
	m := New(80, 20, []string{"exportar", "entregas", "eventos"})
	m.Focus()
	m = typeLine(m, "e")
	if got := m.matches(); len(got) != 3 {
		t.Errorf("matches(e) = %v", got)
	}
	m = typeLine(m, "x")
	if got := m.matches(); len(got) != 1 || got[0] != "exportar" {
		t.Errorf("matches(ex) = %v", got)
	}
}
