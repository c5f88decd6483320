package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SoarinFerret/kensho/internal/engine"
	"github.com/SoarinFerret/kensho/internal/layout"
	"github.com/SoarinFerret/kensho/internal/state"
)

func (m Model) View() string {
	var body string
	switch {
	case m.showHelp:
		body = m.help.FullHelpView(m.keys.FullHelp())
	case m.window.Mode == state.ModeWidget:
		body = m.widgetView()
	default:
		body = m.cardsView()
	}

	status := m.status
	if m.update.Held {
		status = "on hold while away • " + status
	}
	footer := statusStyle.Render(status)
	if m.renaming {
		footer = m.input.View()
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		body,
		footer,
		m.help.ShortHelpView(m.keys.ShortHelp()),
	))
}

func (m Model) cardsView() string {
	result := m.computeLayout()
	width := max(layout.CardWidth(m.scale)/cellUnits, 12)
	gap := strings.Repeat(" ", int(layout.Gap)/cellUnits+1)

	cards := make([]string, 0, len(m.update.Clocks)+1)
	for i, v := range m.update.Clocks {
		cards = append(cards, m.renderCard(v, i == m.selected, width))
	}
	if !m.update.Full {
		cards = append(cards, addStyle.Render("+"))
	}

	if result.Arrangement == layout.Column {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	joined := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			joined = append(joined, gap)
		}
		joined = append(joined, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joined...)
}

func (m Model) renderCard(v engine.View, selected bool, width int) string {
	style := cardStyle
	switch {
	case v.Due:
		style = cardDue
	case selected:
		style = cardSelected
	}
	inner := max(width-4, 4)

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s  %s", v.Identifier, v.Label)),
		mutedStyle.Render(intervalText(v)),
		barStyle.Render(progressBar(v.Progress, inner)),
	}
	ping := nextPingText(v)
	if v.Due {
		ping = hotStyle.Render(ping)
	}
	lines = append(lines, ping, mutedStyle.Render(countText(v.CheckInsToday)))

	if v.Expanded {
		bars, labels := trendBars(v.Recent)
		lines = append(lines,
			"",
			mutedStyle.Render(fmt.Sprintf("Last %d days", len(v.Recent))),
			barStyle.Render(bars),
			mutedStyle.Render(labels),
			mutedStyle.Render("sound: "+v.SoundID),
		)
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// widgetView is the compact one-line-per-clock mode.
func (m Model) widgetView() string {
	rows := make([]string, 0, len(m.update.Clocks))
	for i, v := range m.update.Clocks {
		marker := " "
		if i == m.selected {
			marker = ">"
		}
		left := "ready"
		switch {
		case v.Paused && !v.Due:
			left = "paused"
		case !v.Due:
			left = formatRemaining(v.RemainingSeconds)
		}
		row := fmt.Sprintf("%s %s %-16s %8s %s %d", marker, v.Identifier, truncate(v.Label, 16), left, progressBar(v.Progress, 10), v.CheckInsToday)
		if v.Due {
			row = hotStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
