package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CopticLeague/internal/config"
)

var ErrEmailDisabled = errors.New("email is disabled")

// SESClient sends league mail through AWS SESv2 from one configured sender.
type SESClient struct {
	client *sesv2.Client
	from   string
}

// NewSESClient builds a client from the email config. displayName, usually
// the league's name, is shown as the sender.
func NewSESClient(cfg config.EmailConfig, displayName string) (*SESClient, error) {
	if !cfg.Enabled {
		return nil, ErrEmailDisabled
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Region == "" {
		return nil, fmt.Errorf("ses credentials and region are required")
	}
	sender, err := mail.ParseAddress(cfg.Sender)
	if err != nil {
		return nil, fmt.Errorf("invalid ses sender %q: %w", cfg.Sender, err)
	}
	if sender.Name == "" {
		sender.Name = strings.TrimSpace(displayName)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESClient{
		client: sesv2.NewFromConfig(awsCfg),
		from:   sender.String(),
	}, nil
}

// From is the formatted sender address.
func (c *SESClient) From() string {
	return c.from
}

// Send delivers a plain-text email to a single recipient.
func (c *SESClient) Send(ctx context.Context, recipient, subject, body string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("ses client is not initialized")
	}
	if strings.TrimSpace(recipient) == "" {
		return fmt.Errorf("recipient is required")
	}

	input := &sesv2.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
		FromEmailAddress: aws.String(c.from),
	}

	out, err := c.client.SendEmail(ctx, input)
	if err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("recipient", recipient).
			Str("subject", subject).
			Msg("Failed to send SES email")
		return fmt.Errorf("send ses email: %w", err)
	}
	log.Ctx(ctx).Debug().Str("recipient", recipient).Str("message_id", aws.ToString(out.MessageId)).Msg("SES email sent")
	return nil
}
