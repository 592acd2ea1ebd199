package cmd

import "marketplace/internal/adapters/out/smtp"

// Config carries every setting the application reads at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	ResetWebBaseURL     string
	ResetAndroidBaseURL string
	ResetIOSBaseURL     string
}

// SMTPConfig assembles the mailer settings from the flat config.
func (c Config) SMTPConfig() smtp.Config {
	return smtp.Config{
		Host:           c.SMTPHost,
		Port:           c.SMTPPort,
		Username:       c.SMTPUser,
		Password:       c.SMTPPassword,
		From:           c.SMTPFrom,
		WebBaseURL:     c.ResetWebBaseURL,
		AndroidBaseURL: c.ResetAndroidBaseURL,
		IOSBaseURL:     c.ResetIOSBaseURL,
	}
}
