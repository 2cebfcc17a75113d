package quiz

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestionView renders the stats line, the prompt, and the answer input.
func (s *QuizScreen) renderQuestionView(width int) string {
	var b strings.Builder

	correct := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("✓ %d", s.engine.CorrectCount()))
	remaining := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d left", s.engine.Remaining()))
	incorrect := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render(fmt.Sprintf("✗ %d", s.engine.IncorrectCount()))

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Pass %d", s.engine.Pass()))

	infoRight := correct + "   " + remaining + "   " + incorrect
	if s.engine.Config().Timed {
		infoRight += "   " + lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱ "+formatDuration(s.elapsed))
	}

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if s.passTotal > 0 {
		done := float64(s.passTotal-s.engine.Remaining()) / float64(s.passTotal)
		bar := components.NewProgressBar("", done, true, min(width-8, 60)).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	}
	b.WriteString("\n\n")

	if s.notice != "" {
		noticeColor := theme.Accent
		if strings.HasPrefix(s.notice, "✓") {
			noticeColor = theme.Success
		}
		b.WriteString(centered(width).Foreground(noticeColor).Render(s.notice))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render(s.question))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Render("Answer: " + s.input.View()))

	return b.String()
}

// renderFeedback shows the correct answer after a miss.
func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Error).
		Bold(true).
		Render("Not quite"))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render(s.lastPrompt))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("You said: " + s.lastResponse))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Success).
		Bold(true).
		Render("Correct answer: " + s.corrective))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Scores are not kept."))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
