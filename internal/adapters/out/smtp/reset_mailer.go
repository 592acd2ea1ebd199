package smtp

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

// Config carries SMTP connectivity and the per-client reset page locations.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	WebBaseURL string
	// Mobile clients open the link through deep-linking schemes.
	AndroidBaseURL string
	IOSBaseURL     string
}

// GomailResetMailer sends password-reset links over SMTP.
type GomailResetMailer struct {
	config Config
	dialer *gomail.Dialer
}

// NewGomailResetMailer creates a mailer from SMTP settings.
func NewGomailResetMailer(config Config) (*GomailResetMailer, error) {
	if config.Host == "" || config.Port == 0 || config.From == "" {
		return nil, errs.NewValueIsRequiredError("smtp host, port and sender")
	}

	return &GomailResetMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// SendResetLink mails the plaintext token embedded in a client-specific link.
// The send runs in a goroutine so a stalled SMTP conversation cannot outlive
// the request context.
func (m *GomailResetMailer) SendResetLink(
	ctx context.Context,
	email string,
	role account.Role,
	token string,
	client ports.ClientType,
) error {
	link, err := m.resetLink(role, token, client)
	if err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.config.From)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Password reset request")
	message.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for your %s account.\n\n"+
			"Open the link below within 30 minutes to choose a new password:\n\n%s\n\n"+
			"If you did not request this, ignore this message.", role, link))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(message)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err = <-done:
		if err != nil {
			return fmt.Errorf("send reset mail: %w", err)
		}
	}

	return nil
}

func (m *GomailResetMailer) resetLink(role account.Role, token string, client ports.ClientType) (string, error) {
	var base string
	switch client {
	case ports.ClientTypeWeb:
		base = m.config.WebBaseURL
	case ports.ClientTypeAndroid:
		base = m.config.AndroidBaseURL
	case ports.ClientTypeIOS:
		base = m.config.IOSBaseURL
	default:
		return "", errs.NewValueIsInvalidError("client")
	}

	return fmt.Sprintf("%s/%s/reset-password/%s", base, role, token), nil
}
