// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/client"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the login page. The token of a successful login is saved
// to the token store, so the one-shot commands see the same session.
type LoginModel struct {
	ctx      context.Context
	accounts adapter.AccountAdapter
	tokens   client.TokenStore

	form       form
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, accounts adapter.AccountAdapter, tokens client.TokenStore) *LoginModel {
	return &LoginModel{
		ctx:      ctx,
		accounts: accounts,
		tokens:   tokens,
		form: newForm(
			field{label: "Username", placeholder: "username", limit: 64},
			field{label: "Password", placeholder: "password", secret: true, limit: 256},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResult); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}

		m.errMsg = ""
		m.form.reset()
		return m, func() tea.Msg { return NavigateTo{Page: pageSession, Payload: result} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "tab":
			m.form.focusNext()
			return m, nil
		case "shift+tab":
			m.form.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			username := m.form.value(0)
			password := m.form.inputs[1].Value()
			if username == "" || password == "" {
				m.errMsg = "username and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(username, password string) tea.Cmd {
	ctx := m.ctx
	accounts := m.accounts
	tokens := m.tokens

	return func() tea.Msg {
		acc, err := accounts.Login(ctx, models.LoginRequest{Username: username, Password: password})
		if err != nil {
			return loginResult{err: err}
		}
		token := accounts.Token()
		if err = tokens.Save(token); err != nil {
			return loginResult{err: err}
		}
		return loginResult{account: acc, token: token}
	}
}
