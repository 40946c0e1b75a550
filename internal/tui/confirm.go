// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/client"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel redeems a confirmation link pasted from an e-mail.
type ConfirmModel struct {
	ctx      context.Context
	accounts adapter.AccountAdapter

	form       form
	submitting bool
	errMsg     string
}

func NewConfirmModel(ctx context.Context, accounts adapter.AccountAdapter) *ConfirmModel {
	return &ConfirmModel{
		ctx:      ctx,
		accounts: accounts,
		form:     newForm(field{label: "Link", placeholder: "https://.../confirm/a/<code>"}),
	}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(confirmResult); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
			return m, nil
		}

		m.errMsg = ""
		m.form.reset()
		notice := menuNotice{text: fmt.Sprintf("confirmed for %q", result.account.Username)}
		return m, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: notice} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			kind, code, err := client.ParseConfirmLink(m.form.value(0))
			if err != nil {
				m.errMsg = "not a confirmation link"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdConfirm(kind, code)
		}
	}

	return m, m.form.update(msg)
}

func (m *ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	if m.submitting {
		b.WriteString("\n[Confirming...]\n")
	} else {
		b.WriteString("\n[Confirm]\n")
	}
	b.WriteString(renderError(m.errMsg))

	return renderPage("CONFIRM", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: submit")
}

func (m *ConfirmModel) cmdConfirm(kind, code string) tea.Cmd {
	ctx := m.ctx
	accounts := m.accounts

	return func() tea.Msg {
		acc, err := accounts.Confirm(ctx, kind, code)
		return confirmResult{account: acc, err: err}
	}
}
