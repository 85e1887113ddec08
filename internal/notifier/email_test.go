package notifier

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestEmailSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	email := NewEmail("smtp.example.com", 587, "bot@example.com", []string{"team@example.com"}, "secret")
	email.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := email.Send(context.Background(), testReport()); err != nil {
		t.Fatal(err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("unexpected addr %q", gotAddr)
	}
	if gotFrom != "bot@example.com" {
		t.Errorf("unexpected from %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "team@example.com" {
		t.Errorf("unexpected recipients %v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: t\r\n") {
		t.Errorf("expected subject header, got:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "c") {
		t.Errorf("expected body at end of message, got:\n%s", msg)
	}
}

func TestEmailSendNoRecipients(t *testing.T) {
	email := NewEmail("smtp.example.com", 587, "bot@example.com", nil, "secret")
	if err := email.Send(context.Background(), testReport()); err == nil {
		t.Error("expected error with no recipients")
	}
}
