package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"testing"

	"github.com/wneessen/go-mail"
)

func TestClassify_Timeout(t *testing.T) {
	sendErr := Classify(context.DeadlineExceeded)
	if sendErr.Reason != ReasonTimeout {
		t.Errorf("Expected reason %s, got %s", ReasonTimeout, sendErr.Reason)
	}

	wrapped := Classify(fmt.Errorf("dial: %w", context.DeadlineExceeded))
	if wrapped.Reason != ReasonTimeout {
		t.Errorf("Expected reason %s for wrapped deadline, got %s", ReasonTimeout, wrapped.Reason)
	}
}

func TestClassify_AuthFailure(t *testing.T) {
	authErr := &mail.SendError{Reason: mail.ErrSMTPAuth}
	if sendErr := Classify(authErr); sendErr.Reason != ReasonAuth {
		t.Errorf("Expected reason %s, got %s", ReasonAuth, sendErr.Reason)
	}

	for _, code := range []int{530, 534, 535} {
		protoErr := &textproto.Error{Code: code, Msg: "authentication failed"}
		if sendErr := Classify(protoErr); sendErr.Reason != ReasonAuth {
			t.Errorf("Expected reason %s for code %d, got %s", ReasonAuth, code, sendErr.Reason)
		}
	}
}

func TestClassify_TransportDefault(t *testing.T) {
	sendErr := Classify(errors.New("connection refused"))
	if sendErr.Reason != ReasonTransport {
		t.Errorf("Expected reason %s, got %s", ReasonTransport, sendErr.Reason)
	}

	protoErr := &textproto.Error{Code: 550, Msg: "mailbox unavailable"}
	if sendErr := Classify(protoErr); sendErr.Reason != ReasonTransport {
		t.Errorf("Expected reason %s for 550, got %s", ReasonTransport, sendErr.Reason)
	}
}

func TestClassify_NilError(t *testing.T) {
	if sendErr := Classify(nil); sendErr != nil {
		t.Errorf("Expected nil for nil error, got %v", sendErr)
	}
}

func TestSendError_Unwrap(t *testing.T) {
	inner := errors.New("broken pipe")
	sendErr := Classify(fmt.Errorf("write: %w", inner))

	if !errors.Is(sendErr, inner) {
		t.Error("Expected SendError to unwrap to the original error")
	}
}
