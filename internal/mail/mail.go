// Package mail holds the outbound-mail collaborator boundary. Real delivery
// is an external system; the service only composes the login link.
package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes login links to the log instead of sending them. It is the
// local-dev stand-in for the external delivery collaborator.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendLoginLink(_ context.Context, email, link string) error {
	m.log.Info("login link issued",
		slog.String("email", email),
		slog.String("link", link),
	)
	return nil
}
