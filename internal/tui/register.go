// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel is the registration page. The password is optional: the
// server generates one and mails it when it is left empty.
type RegisterModel struct {
	ctx      context.Context
	accounts adapter.AccountAdapter

	form       form
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, accounts adapter.AccountAdapter) *RegisterModel {
	return &RegisterModel{
		ctx:      ctx,
		accounts: accounts,
		form: newForm(
			field{label: "Username", placeholder: "username", limit: 64},
			field{label: "E-mail", placeholder: "e-mail", limit: 256},
			field{label: "Password", placeholder: "empty: generate", secret: true, limit: 256},
			field{label: "Repeat password", placeholder: "repeat password", secret: true, limit: 256},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles esc (back to the menu), tab and shift+tab (focus) and
// enter (submit). A successful registerResult resets the form and returns
// to the menu with a notice.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(registerResult); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}

		m.errMsg = ""
		m.form.reset()
		notice := menuNotice{text: fmt.Sprintf("account %q created, check %s for the activation link",
			result.account.Username, result.account.Email)}
		return m, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: notice} }
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

			req := models.RegisterRequest{
				Username: m.form.value(0),
				Email:    m.form.value(1),
				Password: m.form.inputs[2].Value(),
			}
			if req.Username == "" || req.Email == "" {
				m.errMsg = "username and e-mail are required"
				return m, nil
			}
			if req.Password != m.form.inputs[3].Value() {
				m.errMsg = "passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	accounts := m.accounts

	return func() tea.Msg {
		acc, err := accounts.Register(ctx, req)
		return registerResult{account: acc, err: err}
	}
}
