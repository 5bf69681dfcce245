package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"

	"github.com/wneessen/go-mail"
)

type Reason string

const (
	ReasonAuth      Reason = "auth_failure"
	ReasonTransport Reason = "transport_error"
	ReasonTimeout   Reason = "timeout"
)

// SendError wraps a delivery failure with its classified reason so the
// dispatch engine can report per-recipient failures uniformly.
type SendError struct {
	Reason Reason
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send failed (%s): %v", e.Reason, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Classify maps a raw SMTP error onto the failure taxonomy. Timeouts
// take precedence over everything else, then authentication rejections,
// and anything left is a transport error.
func Classify(err error) *SendError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &SendError{Reason: ReasonTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &SendError{Reason: ReasonTimeout, Err: err}
	}

	var mailErr *mail.SendError
	if errors.As(err, &mailErr) && mailErr.Reason == mail.ErrSMTPAuth {
		return &SendError{Reason: ReasonAuth, Err: err}
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return &SendError{Reason: ReasonAuth, Err: err}
		}
	}

	return &SendError{Reason: ReasonTransport, Err: err}
}
