// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	help := "ctrl+c: quit"
	if strings.TrimSpace(hotKeys) != "" {
		help = hotKeys + " │ " + help
	}
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

func renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + errorStyle.Render("Error: "+msg) + "\n"
}
