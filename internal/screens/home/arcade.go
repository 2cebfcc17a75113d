package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const arcadeTitleFull = `┏━╸╻  ┏━┓┏━┓╻ ╻┏━┓╻ ╻╻╺━┓
┣╸ ┃  ┣━┫┗━┓┣━┫┃┓┃┃ ┃┃┏━┛
╹  ┗━╸╹ ╹┗━┛╹ ╹┗┻┛┗━┛╹┗━╸`

const arcadeTitleCompact = "F · L · A · S · H · Q · U · I · Z"

// maxVisibleSets caps the set list so the cabinet never overflows.
const maxVisibleSets = 8

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderSourceBar renders the set count and source location in a bordered
// box matching content width.
func renderSourceBar(sets int, location string, cw int) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	label := "SETS"
	if sets == 1 {
		label = "SET"
	}
	stats := countStyle.Render(fmt.Sprintf("▤ %d %s", sets, label))
	if location != "" {
		stats += dimStyle.Render("  in " + truncate(location, cw-16))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// setLabel formats a set for the menu, flagging sets that failed to decode.
func setLabel(info deck.SetInfo) string {
	if info.Entries < 0 {
		return info.Name + "  (unreadable)"
	}
	if info.Entries == 1 {
		return info.Name + "  (1 card)"
	}
	return fmt.Sprintf("%s  (%d cards)", info.Name, info.Entries)
}

// renderSetList renders a window of the set menu around the selection as
// simple text lines.
func renderSetList(menu components.Menu, cw int) string {
	if len(menu.Items) == 0 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No question sets found.\nAdd one with: flashquiz sets add <set> <prompt> <answer>")
	}

	start := 0
	if menu.Selected >= maxVisibleSets {
		start = menu.Selected - maxVisibleSets + 1
	}
	end := min(start+maxVisibleSets, len(menu.Items))

	var lines []string
	for i := start; i < end; i++ {
		item := menu.Items[i]
		label := truncate(item.Label, cw-4)
		var line string
		if item.Disabled {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == menu.Selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	if end < len(menu.Items) {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("   … %d more", len(menu.Items)-end)))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Render(strings.Join(lines, "\n"))
}

func renderLoading(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Loading sets...")
}

// renderError renders a one-line error under the menu.
func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
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
