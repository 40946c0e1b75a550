// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string
}

type MenuModel struct {
	items  []menuItem
	idx    int
	notice string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Register", page: pageRegister},
			{title: "Log in", page: pageLogin},
			{title: "Confirm e-mailed link", page: pageConfirm},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if n, ok := msg.(menuNotice); ok {
		m.notice = n.text
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "q":
		return m, tea.Quit
	case "enter":
		page := m.items[m.idx].page
		m.notice = ""
		return m, func() tea.Msg { return NavigateTo{Page: page} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d  %s\n", cursor, i+1, item.title))
	}

	return renderPage("ACCOUNT KEEPER", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move │ q: quit")
}
