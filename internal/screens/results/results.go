package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// ResultsScreen displays the summary of a finished session.
type ResultsScreen struct {
	summary session.Summary
	cfg     session.Config
	replay  func() screen.Screen
	button  components.Button
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. replay starts a new session with the same
// modes and returns its quiz screen.
func New(summary session.Summary, cfg session.Config, replay func() screen.Screen) *ResultsScreen {
	s := &ResultsScreen{summary: summary, cfg: cfg, replay: replay}
	s.button = components.NewButton("Play again", replay != nil, s.playAgain)
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "H", Description: "Home"},
		{Key: "Esc", Description: "Back to setup"},
	}
}

// Summary returns the summary being shown.
func (s *ResultsScreen) Summary() session.Summary {
	return s.summary
}

func (s *ResultsScreen) playAgain() tea.Cmd {
	next := s.replay()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "h" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	var cmd tea.Cmd
	s.button, cmd = s.button.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	var b strings.Builder

	headline := "Session complete!"
	if sum.Incorrect == 0 && sum.Correct > 0 {
		headline = "Perfect pass!"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(sum.SetName))
	b.WriteString("\n\n")

	correct := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("Correct  %d", sum.Correct))
	incorrect := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render(fmt.Sprintf("Incorrect  %d", sum.Incorrect))
	b.WriteString(correct + "        " + incorrect)
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Accuracy: %.0f%%", sum.Accuracy()*100)
	if sum.Passes > 1 {
		stats += fmt.Sprintf("    Passes: %d", sum.Passes)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(stats))

	if sum.Timed {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("Time: " + formatDuration(sum)))
	}
	b.WriteString("\n\n")
	b.WriteString(s.button.View())

	card := components.ArcadeCard(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// formatDuration renders the session's elapsed time as m:ss.t.
func formatDuration(sum session.Summary) string {
	d := sum.Elapsed
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}
