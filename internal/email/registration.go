package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const registrationEmailTimeout = 5 * time.Second

// EmailSender delivers one plain-text message. SESClient is the production
// implementation.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SendRegistrationConfirmation sends message to recipient asynchronously.
// The send keeps ctx's values but not its cancellation, so it outlives the
// request that created the registration. Failures are logged and never
// reach the caller.
func SendRegistrationConfirmation(ctx context.Context, client EmailSender, recipient string, message Message, logger *zerolog.Logger) {
	if client == nil {
		return
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || message.Subject == "" || message.Body == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	detached := context.WithoutCancel(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(detached, registrationEmailTimeout)
		defer cancel()
		if err := client.Send(sendCtx, recipient, message.Subject, message.Body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Str("subject", message.Subject).Msg("Failed to send registration confirmation")
		}
	}()
}
