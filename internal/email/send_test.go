package email

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codr1/CopticLeague/internal/config"
)

type fakeEmailSender struct {
	sendCalls    int32
	sendStarted  chan struct{}
	sendCtxErrCh chan error
	recipients   chan string
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{
		sendStarted:  make(chan struct{}, 1),
		sendCtxErrCh: make(chan error, 1),
		recipients:   make(chan string, 1),
	}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	atomic.AddInt32(&f.sendCalls, 1)
	select {
	case f.recipients <- recipient:
	default:
	}
	select {
	case f.sendStarted <- struct{}{}:
	default:
	}
	select {
	case <-ctx.Done():
		err := ctx.Err()
		select {
		case f.sendCtxErrCh <- err:
		default:
		}
		return err
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}, message string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(200 * time.Millisecond):
		t.Fatal(message)
	}
}

func TestSendRegistrationConfirmation_OutlivesRequestContext(t *testing.T) {
	sender := newFakeEmailSender()

	ctx, cancel := context.WithCancel(context.Background())
	SendRegistrationConfirmation(ctx, sender, " player@example.com ", Message{
		Subject: "Subject",
		Body:    "Body",
	}, nil)

	waitForSignal(t, sender.sendStarted, "expected confirmation send to start")
	cancel()

	select {
	case err := <-sender.sendCtxErrCh:
		if errors.Is(err, context.Canceled) {
			t.Fatal("expected send to be detached from request cancellation")
		}
	case <-time.After(300 * time.Millisecond):
	}
	if got := <-sender.recipients; got != "player@example.com" {
		t.Fatalf("expected trimmed recipient, got %q", got)
	}
}

func TestSendRegistrationConfirmation_SkipsIncompleteMessages(t *testing.T) {
	sender := newFakeEmailSender()

	SendRegistrationConfirmation(context.Background(), sender, "", Message{Subject: "s", Body: "b"}, nil)
	SendRegistrationConfirmation(context.Background(), sender, "player@example.com", Message{Subject: "s"}, nil)
	SendRegistrationConfirmation(context.Background(), nil, "player@example.com", Message{Subject: "s", Body: "b"}, nil)

	time.Sleep(50 * time.Millisecond)
	if calls := atomic.LoadInt32(&sender.sendCalls); calls != 0 {
		t.Fatalf("expected no sends, got %d", calls)
	}
}

func TestBuildRegistrationConfirmation(t *testing.T) {
	msg := BuildRegistrationConfirmation(RegistrationDetails{
		PlayerName:       "Mina Girgis",
		LeagueName:       "Fall Mens",
		Division:         "Mens",
		Season:           "Fall 2025",
		RegistrationType: "player",
		AmountDue:        "$75.00",
		StartDate:        time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC),
	})

	if msg.Subject != "Registration Received - Fall Mens" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"Hi Mina Girgis,", "Registered as: Player", "Team: Individual", "Saturday, Sep 13, 2025", "Amount due: $75.00"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, msg.Body)
		}
	}
}

func TestNewSESClientChecksConfig(t *testing.T) {
	valid := config.EmailConfig{
		Enabled:         true,
		Region:          "us-east-1",
		Sender:          "league@example.com",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	}

	if _, err := NewSESClient(config.EmailConfig{}, "Coptic League"); !errors.Is(err, ErrEmailDisabled) {
		t.Fatalf("expected ErrEmailDisabled, got %v", err)
	}

	missing := valid
	missing.SecretAccessKey = ""
	if _, err := NewSESClient(missing, "Coptic League"); err == nil {
		t.Fatal("expected error without credentials")
	}

	badSender := valid
	badSender.Sender = "not an address"
	if _, err := NewSESClient(badSender, "Coptic League"); err == nil {
		t.Fatal("expected error for invalid sender")
	}

	client, err := NewSESClient(valid, "Coptic League")
	if err != nil {
		t.Fatalf("new ses client: %v", err)
	}
	if !strings.Contains(client.From(), "Coptic League") || !strings.Contains(client.From(), "<league@example.com>") {
		t.Fatalf("unexpected from address %q", client.From())
	}
}
