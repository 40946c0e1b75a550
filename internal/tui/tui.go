// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interactive front end of the account client. It
// offers the register, log in and confirm commands as full-screen forms.
package tui

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/client"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	accounts adapter.AccountAdapter
	tokens   client.TokenStore
	logger   *logger.Logger
}

func New(accounts adapter.AccountAdapter, tokens client.TokenStore, log *logger.Logger) *TUI {
	return &TUI{accounts: accounts, tokens: tokens, logger: log}
}

// Run shows the menu and returns when the user quits.
func (t *TUI) Run(ctx context.Context) error {
	token, err := t.tokens.Load()
	if err != nil {
		return err
	}
	t.accounts.SetToken(token)

	final, err := tea.NewProgram(t.newRoot(ctx), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if _, ok := final.(RootModel); !ok {
		return tea.ErrProgramKilled
	}
	t.logger.Debug().Str("func", "TUI.Run").Msg("interactive session closed")
	return nil
}

func (t *TUI) newRoot(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageRegister: NewRegisterModel(ctx, t.accounts),
		pageLogin:    NewLoginModel(ctx, t.accounts, t.tokens),
		pageConfirm:  NewConfirmModel(ctx, t.accounts),
		pageSession:  NewSessionModel(clipboard.WriteAll),
	}
	return NewRootModel(pages, pageMenu)
}
