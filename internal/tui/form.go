// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is the input list shared by the register, login and confirm pages.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

func newForm(fields ...field) form {
	f := form{}
	for _, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.placeholder
		in.Width = 40
		if fd.limit > 0 {
			in.CharLimit = fd.limit
		}
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *form) view() string {
	width := 0
	for _, l := range f.labels {
		width = max(width, len(l))
	}

	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(f.labels[i])
		b.WriteString(strings.Repeat(" ", width-len(f.labels[i])))
		b.WriteString(" │ [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}
	return b.String()
}
