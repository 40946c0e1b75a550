// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionModel shows the logged-in account and can copy the bearer token
// to the system clipboard.
type SessionModel struct {
	copyText func(string) error

	username string
	email    string
	token    string
	status   string
}

// NewSessionModel takes the clipboard writer, clipboard.WriteAll outside
// of tests.
func NewSessionModel(copyText func(string) error) *SessionModel {
	return &SessionModel{copyText: copyText}
}

func (m *SessionModel) Init() tea.Cmd {
	return nil
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResult:
		m.username = msg.account.Username
		m.email = msg.account.Email
		m.token = msg.token
		m.status = ""
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.status = "copy to clipboard: " + msg.err.Error()
		} else {
			m.status = "token copied to clipboard"
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			if m.token == "" {
				return m, nil
			}
			token := m.token
			copyText := m.copyText
			return m, func() tea.Msg { return copiedMsg{err: copyText(token)} }
		case "esc", "enter":
			notice := menuNotice{text: fmt.Sprintf("logged in as %q", m.username)}
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: notice} }
		}
	}
	return m, nil
}

func (m *SessionModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Username │ %s\n", m.username)
	fmt.Fprintf(&b, "E-mail   │ %s\n", m.email)
	fmt.Fprintf(&b, "Token    │ %s\n", maskToken(m.token))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return renderPage("SESSION", strings.TrimRight(b.String(), "\n"), "c: copy token │ enter: menu")
}

// maskToken keeps the first and last characters of a token.
func maskToken(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:6] + "…" + token[len(token)-6:]
}
