package editor

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// visibleRows is how many entries the list shows at once.
const visibleRows = 10

// EditorScreen adds, deletes, and saves the entries of the loaded set.
type EditorScreen struct {
	engine *session.Engine
	cursor int
	offset int

	adding bool
	prompt components.TextInput
	answer components.TextInput

	dirty        bool
	discardArmed bool
	status       string
	errMsg       string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.EscapeCapturer = (*EditorScreen)(nil)

// New creates an EditorScreen over the set loaded in engine.
func New(engine *session.Engine) *EditorScreen {
	e := &EditorScreen{
		engine: engine,
		prompt: components.NewTextInput("Question", 0),
		answer: components.NewTextInput("Answer", 0),
	}
	e.prompt.Blur()
	e.answer.Blur()
	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	return nil
}

func (e *EditorScreen) Title() string {
	return "Edit " + e.engine.Name()
}

// CapturesEscape is always true: Esc closes the add form first and guards
// unsaved changes.
func (e *EditorScreen) CapturesEscape() bool {
	return true
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.adding {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Switch field"},
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A", Description: "Add"},
		{Key: "D", Description: "Delete"},
		{Key: "S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// Dirty reports whether there are edits that have not been saved.
func (e *EditorScreen) Dirty() bool {
	return e.dirty
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, e.forwardToInput(msg)
	}
	if e.adding {
		return e, e.handleFormKey(kmsg)
	}
	return e, e.handleListKey(kmsg)
}

func (e *EditorScreen) handleListKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "esc" {
		e.discardArmed = false
	}

	switch key {
	case "esc":
		if e.dirty && !e.discardArmed {
			e.discardArmed = true
			e.status = "Unsaved changes. Press Esc again to discard, S to save."
			return nil
		}
		if e.dirty {
			// Put back the stored set so the discarded edits don't reach a quiz.
			name := e.engine.Name()
			if err := e.engine.Load(context.Background(), name); err != nil {
				e.discardArmed = false
				e.status = ""
				e.errMsg = fmt.Sprintf("Could not restore %s: %v", name, err)
				return nil
			}
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < e.engine.Len()-1 {
			e.cursor++
		}
	case "a":
		e.adding = true
		e.status, e.errMsg = "", ""
		e.answer.Blur()
		return e.prompt.Focus()
	case "d", "x", "delete":
		e.delete()
	case "s", "ctrl+s":
		e.save()
	}
	e.scroll()
	return nil
}

func (e *EditorScreen) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.adding = false
		e.prompt.Blur()
		e.answer.Blur()
		return nil
	case "tab", "shift+tab":
		return e.switchField()
	case "enter":
		if e.prompt.Focused() {
			return e.switchField()
		}
		return e.add()
	}
	return e.forwardToInput(msg)
}

func (e *EditorScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	if !e.adding {
		return nil
	}
	var cmd tea.Cmd
	if e.prompt.Focused() {
		e.prompt, cmd = e.prompt.Update(msg)
	} else {
		e.answer, cmd = e.answer.Update(msg)
	}
	return cmd
}

func (e *EditorScreen) switchField() tea.Cmd {
	if e.prompt.Focused() {
		e.prompt.Blur()
		return e.answer.Focus()
	}
	e.answer.Blur()
	return e.prompt.Focus()
}

// add appends the form's entry to the set and readies the form for another.
func (e *EditorScreen) add() tea.Cmd {
	entry := deck.Entry{Prompt: e.prompt.Value(), Answer: e.answer.Value()}
	if entry.Prompt == "" {
		e.errMsg = "A question needs a prompt."
		e.answer.Blur()
		return e.prompt.Focus()
	}

	e.engine.AddQuestion(entry)
	e.dirty = true
	e.errMsg = ""
	e.status = "Added: " + entry.String()
	e.cursor = e.engine.Len() - 1
	e.scroll()

	e.prompt.Reset()
	e.answer.Reset()
	e.answer.Blur()
	return e.prompt.Focus()
}

func (e *EditorScreen) delete() {
	entries := e.engine.Entries()
	if err := e.engine.DeleteQuestion(e.cursor); err != nil {
		e.errMsg = err.Error()
		return
	}
	e.dirty = true
	e.errMsg = ""
	e.status = "Deleted: " + entries[e.cursor].String()
	if e.cursor >= e.engine.Len() && e.cursor > 0 {
		e.cursor--
	}
}

func (e *EditorScreen) save() {
	if err := e.engine.Save(context.Background(), e.engine.Name()); err != nil {
		e.errMsg = err.Error()
		return
	}
	e.dirty = false
	e.errMsg = ""
	e.status = fmt.Sprintf("Saved %d questions to %s", e.engine.Len(), e.engine.Name())
}

// scroll keeps the cursor inside the visible window.
func (e *EditorScreen) scroll() {
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+visibleRows {
		e.offset = e.cursor - visibleRows + 1
	}
}

func (e *EditorScreen) View(width, height int) string {
	cw := min(width-4, 76)
	var b strings.Builder

	entries := e.engine.Entries()
	title := fmt.Sprintf("%s  (%d questions)", e.engine.Name(), len(entries))
	if e.dirty {
		title += "  *"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(cw, 0))))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(theme.Hint.Render("  No questions yet. Press A to add one."))
		b.WriteString("\n")
	}
	end := min(e.offset+visibleRows, len(entries))
	for i := e.offset; i < end; i++ {
		line := truncate(fmt.Sprintf("%3d  %s", i+1, entries[i].String()), cw-2)
		if i == e.cursor && !e.adding {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if end < len(entries) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(entries)-end)))
		b.WriteString("\n")
	}

	if e.adding {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("New question"))
		b.WriteString("\n")
		b.WriteString("  Question: " + e.prompt.View())
		b.WriteString("\n")
		b.WriteString("  Answer:   " + e.answer.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if e.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("⚠ " + e.errMsg))
	} else if e.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.status))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
