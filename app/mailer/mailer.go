package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/yeonho-kim/newsdigest/app/digest"
)

// Sender delivers one composed message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient string, content digest.Content) error
}

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Timeout  time.Duration
}

// SMTPMailer sends digests over authenticated SMTP with mandatory
// STARTTLS. A fresh client is dialed per message so one recipient's
// connection state can never leak into the next send.
type SMTPMailer struct {
	opts Options
}

var _ Sender = (*SMTPMailer)(nil)

func NewSMTPMailer(opts Options) *SMTPMailer {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &SMTPMailer{opts: opts}
}

func (m *SMTPMailer) Send(ctx context.Context, recipient string, content digest.Content) error {
	msg := mail.NewMsg()
	if err := msg.From(m.opts.Sender); err != nil {
		return Classify(fmt.Errorf("set sender: %w", err))
	}
	if err := msg.To(recipient); err != nil {
		return Classify(fmt.Errorf("set recipient: %w", err))
	}
	msg.Subject(content.Subject)
	msg.SetBodyString(mail.TypeTextPlain, content.Body)

	client, err := mail.NewClient(m.opts.Host,
		mail.WithPort(m.opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.opts.Username),
		mail.WithPassword(m.opts.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.opts.Timeout),
	)
	if err != nil {
		return Classify(fmt.Errorf("create client: %w", err))
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.opts.Timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return Classify(err)
	}

	return nil
}
