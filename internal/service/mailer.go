package service

import (
	"context"
	"log/slog"
)

// LogMailer is the default Mailer: it records the reset link instead of
// delivering it. Real delivery is an external collaborator.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a Mailer that logs reset links.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	m.logger.InfoContext(ctx, "password reset requested", "email", email, "reset_url", resetURL)
	return nil
}

// NoopMailer discards reset links. Useful for tests.
type NoopMailer struct{}

func (NoopMailer) SendPasswordReset(context.Context, string, string) error { return nil }
