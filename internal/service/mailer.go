package service

import (
	"context"
	"maps"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
)

// Outbox accepts account e-mails. Send never fails; Record reports a
// message that could not even be composed.
type Outbox interface {
	Send(ctx context.Context, msg notify.Message) error
	Record(ctx context.Context, msg notify.Message, err error)
}

// mailKind selects the subject and default template of an operation.
type mailKind int

const (
	mailActivation mailKind = iota
	mailReset
	mailDelete
	mailSuspend
	mailCustom
)

// mailer renders lifecycle e-mails and hands them to the outbox.
type mailer struct {
	outbox   Outbox
	sender   string
	baseURL  string
	subjects map[mailKind]string
}

func newMailer(outbox Outbox, cfg config.Mail) *mailer {
	return &mailer{
		outbox:  outbox,
		sender:  cfg.Sender,
		baseURL: strings.TrimRight(cfg.ConfirmBaseURL, "/"),
		subjects: map[mailKind]string{
			mailActivation: cfg.ActivationSubject,
			mailReset:      cfg.ResetSubject,
			mailDelete:     cfg.DeleteSubject,
			mailSuspend:    cfg.SuspendSubject,
		},
	}
}

var defaultTemplates = map[mailKind]string{
	mailActivation: notify.ActivationTemplate,
	mailReset:      notify.ResetTemplate,
	mailDelete:     notify.DeleteTemplate,
	mailSuspend:    notify.SuspendTemplate,
}

// pendingMail is a message composed inside an operation and sent after
// the operation's transaction committed.
type pendingMail struct {
	msg notify.Message
	err error
}

// compose renders n for a. Operation vars override the defaults (sender,
// username, email, base); n.Vars override both.
func (m *mailer) compose(a *account.Account, kind mailKind, n Notification, vars notify.Vars) *pendingMail {
	msg := notify.Message{
		To:      a.Email(),
		From:    m.sender,
		Subject: n.Subject,
	}
	if msg.Subject == "" {
		msg.Subject = m.subjects[kind]
	}

	tmpl := n.Template
	if tmpl == "" {
		tmpl = defaultTemplates[kind]
	}

	all := notify.Vars{
		notify.VarSender:   m.sender,
		notify.VarUsername: a.Username(),
		notify.VarEmail:    a.Email(),
		notify.VarBase:     m.baseURL,
	}
	maps.Copy(all, vars)
	maps.Copy(all, n.Vars)

	body, err := notify.Render(tmpl, all)
	if err != nil {
		return &pendingMail{msg: msg, err: err}
	}
	msg.Body = body
	return &pendingMail{msg: msg}
}

// deliver sends p, or records why it could not be composed. A nil p is a
// no-op.
func (m *mailer) deliver(ctx context.Context, p *pendingMail) {
	if p == nil {
		return
	}
	if p.err != nil {
		logger.FromContext(ctx).Warn().Err(p.err).Str("func", "mailer.deliver").Str("subject", p.msg.Subject).Msg("cannot render e-mail")
		m.outbox.Record(ctx, p.msg, p.err)
		return
	}
	_ = m.outbox.Send(ctx, p.msg)
}
