package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/quiz"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// Menu rows. The first four are the mode toggles.
const (
	rowNoFail = iota
	rowLearn
	rowRandom
	rowTimed
	rowStart
	rowBack
)

var toggleLabels = [...]string{
	rowNoFail: "No incorrect answers",
	rowLearn:  "Learn mode",
	rowRandom: "Randomize set",
	rowTimed:  "Timed",
}

var toggleHelp = [...]string{
	rowNoFail: "A single miss restarts the whole set.",
	rowLearn:  "Missed questions come back until you get them all.",
	rowRandom: "Questions are shuffled every pass.",
	rowTimed:  "Time from the first question to the last.",
}

// SetupScreen picks the session modes before a quiz starts.
type SetupScreen struct {
	engine *session.Engine
	cfg    session.Config
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen for the set loaded in engine, starting from defaults.
func New(engine *session.Engine, defaults session.Config) *SetupScreen {
	s := &SetupScreen{engine: engine, cfg: defaults}

	items := make([]components.MenuItem, rowBack+1)
	for row := rowNoFail; row <= rowTimed; row++ {
		items[row] = components.MenuItem{Action: func() tea.Cmd {
			s.toggle(row)
			return nil
		}}
	}
	items[rowStart] = components.MenuItem{Label: "START", Action: s.start}
	items[rowBack] = components.MenuItem{Label: "BACK", Action: func() tea.Cmd {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}}
	s.menu = components.NewMenu(items)
	s.menu.Selected = rowStart
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Config returns the modes currently selected.
func (s *SetupScreen) Config() session.Config {
	return s.cfg
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "space":
			if s.menu.Selected <= rowTimed {
				s.toggle(s.menu.Selected)
			}
			return s, nil
		case "1", "2", "3", "4":
			s.toggle(int(kmsg.String()[0] - '1'))
			return s, nil
		case "s":
			return s, s.start()
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) toggle(row int) {
	switch row {
	case rowNoFail:
		s.cfg.NoFail = !s.cfg.NoFail
	case rowLearn:
		s.cfg.LearnMode = !s.cfg.LearnMode
	case rowRandom:
		s.cfg.Randomize = !s.cfg.Randomize
	case rowTimed:
		s.cfg.Timed = !s.cfg.Timed
	}
}

func (s *SetupScreen) enabled(row int) bool {
	switch row {
	case rowNoFail:
		return s.cfg.NoFail
	case rowLearn:
		return s.cfg.LearnMode
	case rowRandom:
		return s.cfg.Randomize
	case rowTimed:
		return s.cfg.Timed
	}
	return false
}

// start begins a session and pushes the quiz.
func (s *SetupScreen) start() tea.Cmd {
	if s.engine.Len() == 0 {
		s.errMsg = "This set has no questions. Add some in the editor first."
		return nil
	}
	s.errMsg = ""
	s.engine.Start(s.cfg)
	q := quiz.New(s.engine)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: q}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(s.engine.Name()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d questions", s.engine.Len())))
	b.WriteString("\n\n")

	for row := rowNoFail; row <= rowTimed; row++ {
		box := "[ ]"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.enabled(row) {
			box = "[x]"
			style = style.Foreground(theme.Success)
		}
		prefix := "  "
		if row == s.menu.Selected {
			prefix = "▸ "
			style = style.Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d %s %s", prefix, row+1, box, toggleLabels[row])))
		b.WriteString("\n")
	}

	help := ""
	if s.menu.Selected <= rowTimed {
		help = toggleHelp[s.menu.Selected]
	}
	b.WriteString(theme.Hint.Render("   " + help))
	b.WriteString("\n\n")

	b.WriteString(components.ArcadeButton("START", s.menu.Selected == rowStart, 18))
	b.WriteString("\n")
	b.WriteString(components.ArcadeButton("BACK", s.menu.Selected == rowBack, 18))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("⚠ " + s.errMsg))
	}

	card := components.ArcadeCard(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
