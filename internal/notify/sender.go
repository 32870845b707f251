package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Sender delivers a composed email. Transport failures are the sender's to
// report; the caller never retries or confirms delivery.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// GmailSender sends through the Gmail API using service-account credentials.
type GmailSender struct {
	srv *gmail.Service
}

// NewGmailSender builds a Gmail-backed sender. sender is the account to
// impersonate for domain-wide delegation; empty uses the credential subject.
func NewGmailSender(ctx context.Context, credentialsJSON, sender string) (*GmailSender, error) {
	config, err := google.JWTConfigFromJSON([]byte(credentialsJSON), gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	if sender != "" {
		config.Subject = sender
	}

	client := config.Client(ctx)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create gmail client: %w", err)
	}

	return &GmailSender{srv: srv}, nil
}

func (s *GmailSender) Send(ctx context.Context, email Email) error {
	message := &gmail.Message{Raw: encodeRaw(email)}

	if _, err := s.srv.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail send to %s: %w", email.To, err)
	}

	return nil
}

// LogSender is the fallback used when no transport is configured: it logs the
// composed message instead of delivering it.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, email Email) error {
	log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Int("body_bytes", len(email.Body)).
		Msg("email transport disabled, order email not delivered")
	return nil
}
