// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig describes the outgoing mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends messages through an SMTP relay.
type SMTPNotifier struct {
	addr     string
	auth     smtp.Auth
	sender   string
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPNotifier returns a notifier for cfg. PLAIN authentication is used
// when a username is configured.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	port := cfg.Port
	if port == 0 {
		port = 25
	}
	n := &SMTPNotifier{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		sender:   cfg.Sender,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
	if cfg.Username != "" {
		n.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return n
}

// Send delivers msg. An empty From falls back to the configured sender.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = n.sender
	}

	if err := n.sendMail(n.addr, n.auth, msg.From, []string{msg.To}, n.compose(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", n.addr, err)
	}
	return nil
}

func (n *SMTPNotifier) compose(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(msg.Subject) + "\r\n")
	b.WriteString("Date: " + n.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
