package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/air-alert-monitor/internal/domain"
)

const (
	helpText         = "q вихід · m карта · r оновити"
	loadingText      = "Завантаження…"
	statusRefreshing = "Оновлення…"
	statusOpenFailed = "Не вдалося відкрити карту: "
)

var (
	colorRed    = lipgloss.Color("9")
	colorYellow = lipgloss.Color("11")
	colorGreen  = lipgloss.Color("10")
	colorGray   = lipgloss.Color("245")

	lineStyles = map[domain.ColorTag]lipgloss.Style{
		domain.ColorFull:    lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		domain.ColorPartial: lipgloss.NewStyle().Foreground(colorYellow),
		domain.ColorClear:   lipgloss.NewStyle().Foreground(colorGreen),
		domain.ColorError:   lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		domain.ColorMuted:   lipgloss.NewStyle().Italic(true).Foreground(colorGray),
	}

	borderColors = map[domain.ColorTag]lipgloss.Color{
		domain.ColorClear: colorGreen,
		domain.ColorError: colorRed,
	}

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(colorGray).PaddingLeft(1)
)

func renderPanel(p domain.Panel, status string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteByte('\n')
	for _, l := range p.Lines {
		b.WriteString(styleFor(l.Color).Render(l.Text))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(styleFor(p.Footer.Color).Render(p.Footer.Text))

	border, ok := borderColors[p.Border]
	if !ok {
		border = colorRed
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(b.String())

	help := helpText
	if status != "" {
		help = status + " · " + helpText
	}
	return lipgloss.JoinVertical(lipgloss.Left, box, helpStyle.Render(help))
}

func renderLoading() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyles[domain.ColorMuted].Render(loadingText),
		helpStyle.Render(helpText),
	)
}

func styleFor(tag domain.ColorTag) lipgloss.Style {
	if s, ok := lineStyles[tag]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
