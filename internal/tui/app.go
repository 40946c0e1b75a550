// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import tea "github.com/charmbracelet/bubbletea"

const (
	pageMenu     = "menu"
	pageRegister = "register"
	pageLogin    = "login"
	pageConfirm  = "confirm"
	pageSession  = "session"
)

// RootModel routes between pages: it handles ctrl+c and NavigateTo and
// hands every other message to the active page.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
}

func NewRootModel(pages map[string]tea.Model, startPage string) RootModel {
	return RootModel{
		pages:   pages,
		current: pages[startPage],
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return r, tea.Quit
	}

	if nav, ok := msg.(NavigateTo); ok {
		next, exists := r.pages[nav.Page]
		if !exists {
			return r, nil
		}
		r.current = next

		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.current == nil {
		return renderPage("ACCOUNT KEEPER", "", "")
	}
	return r.current.View()
}
