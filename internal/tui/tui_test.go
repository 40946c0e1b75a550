// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccounts embeds the interface; calls nobody stubbed panic.
type fakeAccounts struct {
	adapter.AccountAdapter

	token string

	registered models.RegisterRequest
	confirmed  [2]string
	loginErr   error
}

func (f *fakeAccounts) SetToken(token string) { f.token = token }
func (f *fakeAccounts) Token() string         { return f.token }

func (f *fakeAccounts) Register(_ context.Context, req models.RegisterRequest) (models.AccountResponse, error) {
	f.registered = req
	return models.AccountResponse{ID: 1, Username: req.Username, Email: req.Email}, nil
}

func (f *fakeAccounts) Login(_ context.Context, req models.LoginRequest) (models.AccountResponse, error) {
	if f.loginErr != nil {
		return models.AccountResponse{}, f.loginErr
	}
	f.token = "header.payload.signature"
	return models.AccountResponse{ID: 1, Username: req.Username, Email: "alice@example.com"}, nil
}

func (f *fakeAccounts) Confirm(_ context.Context, kind, code string) (models.AccountResponse, error) {
	f.confirmed = [2]string{kind, code}
	return models.AccountResponse{Username: "alice"}, nil
}

type memTokens struct {
	token string
}

func (m *memTokens) Load() (string, error)   { return m.token, nil }
func (m *memTokens) Save(token string) error { m.token = token; return nil }
func (m *memTokens) Clear() error            { m.token = ""; return nil }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestMenu_NavigatesToSelectedPage(t *testing.T) {
	m := NewMenuModel()

	_, cmd := m.Update(key("down"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(key("enter"))

	assert.Equal(t, NavigateTo{Page: pageLogin}, run(t, cmd))
}

func TestMenu_ShowsNotice(t *testing.T) {
	m := NewMenuModel()

	m.Update(menuNotice{text: "account \"alice\" created"})

	assert.Contains(t, m.View(), "account \"alice\" created")
}

func TestRegister_Submit(t *testing.T) {
	accounts := &fakeAccounts{}
	m := NewRegisterModel(context.Background(), accounts)
	m.form.inputs[0].SetValue("alice")
	m.form.inputs[1].SetValue("alice@example.com")
	m.form.inputs[2].SetValue("secret1")
	m.form.inputs[3].SetValue("secret1")

	_, cmd := m.Update(key("enter"))
	assert.True(t, m.submitting)

	result := run(t, cmd)
	assert.Equal(t, models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}, accounts.registered)

	_, cmd = m.Update(result)
	nav, ok := run(t, cmd).(NavigateTo)
	require.True(t, ok)
	assert.Equal(t, pageMenu, nav.Page)
	assert.Equal(t, menuNotice{text: `account "alice" created, check alice@example.com for the activation link`}, nav.Payload)
	assert.Empty(t, m.form.inputs[0].Value())
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values [4]string
		want   string
	}{
		{name: "missing e-mail", values: [4]string{"alice", "", "", ""}, want: "username and e-mail are required"},
		{name: "passwords differ", values: [4]string{"alice", "alice@example.com", "secret1", "secret2"}, want: "passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRegisterModel(context.Background(), &fakeAccounts{})
			for i, v := range tt.values {
				m.form.inputs[i].SetValue(v)
			}

			_, cmd := m.Update(key("enter"))
			assert.Nil(t, cmd)
			assert.False(t, m.submitting)
			assert.Equal(t, tt.want, m.errMsg)
		})
	}
}

func TestLogin_SavesTokenAndOpensSession(t *testing.T) {
	accounts := &fakeAccounts{}
	tokens := &memTokens{}
	m := NewLoginModel(context.Background(), accounts, tokens)
	m.form.inputs[0].SetValue("alice")
	m.form.inputs[1].SetValue("secret1")

	_, cmd := m.Update(key("enter"))
	result := run(t, cmd)
	assert.Equal(t, "header.payload.signature", tokens.token)

	_, cmd = m.Update(result)
	nav, ok := run(t, cmd).(NavigateTo)
	require.True(t, ok)
	assert.Equal(t, pageSession, nav.Page)
	assert.Equal(t, "header.payload.signature", nav.Payload.(loginResult).token)
}

func TestLogin_ShowsError(t *testing.T) {
	accounts := &fakeAccounts{loginErr: errors.New("dial tcp 127.0.0.1:8080: connection refused")}
	m := NewLoginModel(context.Background(), accounts, &memTokens{})
	m.form.inputs[0].SetValue("alice")
	m.form.inputs[1].SetValue("secret1")

	_, cmd := m.Update(key("enter"))
	_, cmd = m.Update(run(t, cmd))

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Equal(t, msgUnavailable, m.errMsg)
}

func TestConfirm_ParsesLink(t *testing.T) {
	accounts := &fakeAccounts{}
	m := NewConfirmModel(context.Background(), accounts)
	m.form.inputs[0].SetValue("https://example.com/confirm/d/abc123")

	_, cmd := m.Update(key("enter"))
	result := run(t, cmd)
	assert.Equal(t, [2]string{"d", "abc123"}, accounts.confirmed)

	_, cmd = m.Update(result)
	nav, ok := run(t, cmd).(NavigateTo)
	require.True(t, ok)
	assert.Equal(t, menuNotice{text: `confirmed for "alice"`}, nav.Payload)
}

func TestConfirm_RejectsGarbage(t *testing.T) {
	m := NewConfirmModel(context.Background(), &fakeAccounts{})
	m.form.inputs[0].SetValue("nonsense")

	_, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, "not a confirmation link", m.errMsg)
}

func TestSession_CopiesToken(t *testing.T) {
	var copied string
	m := NewSessionModel(func(s string) error { copied = s; return nil })
	m.Update(loginResult{account: models.AccountResponse{Username: "alice"}, token: "header.payload.signature"})

	assert.NotContains(t, m.View(), "header.payload.signature")

	_, cmd := m.Update(key("c"))
	m.Update(run(t, cmd))

	assert.Equal(t, "header.payload.signature", copied)
	assert.Equal(t, "token copied to clipboard", m.status)
}

func TestSession_CopyFailure(t *testing.T) {
	m := NewSessionModel(func(string) error { return errors.New("no display") })
	m.Update(loginResult{token: "header.payload.signature"})

	_, cmd := m.Update(key("c"))
	m.Update(run(t, cmd))

	assert.Equal(t, "copy to clipboard: no display", m.status)
}

func TestRoot_RoutesNavigation(t *testing.T) {
	ui := New(&fakeAccounts{}, &memTokens{}, logger.Nop())
	root := ui.newRoot(context.Background())

	updated, _ := root.Update(NavigateTo{Page: pageConfirm})
	root = updated.(RootModel)
	assert.IsType(t, &ConfirmModel{}, root.current)

	updated, cmd := root.Update(NavigateTo{Page: pageMenu, Payload: menuNotice{text: "done"}})
	root = updated.(RootModel)
	assert.Equal(t, menuNotice{text: "done"}, run(t, cmd))

	updated, _ = root.Update(NavigateTo{Page: "missing"})
	assert.IsType(t, &MenuModel{}, updated.(RootModel).current)
}

func TestRoot_CtrlCQuits(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu)

	_, cmd := root.Update(key("ctrl+c"))

	assert.Equal(t, tea.QuitMsg{}, run(t, cmd))
}
