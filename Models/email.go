package Models

import (
	"fmt"
	"os"
	"strconv"
)

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To          []string
	CC          []string
	BCC         []string
	Subject     string
	Body        string
	IsHTML      bool
	Attachments []Attachment
}

// Attachment represents a file attachment
type Attachment struct {
	Filename string
	Data     []byte
	MimeType string
}

// LoadEmailConfig reads the SMTP configuration from the environment.
func LoadEmailConfig() (EmailConfig, error) {
	server := os.Getenv("SMTP_SERVER")
	if server == "" {
		return EmailConfig{}, fmt.Errorf("SMTP_SERVER is not set")
	}

	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return EmailConfig{}, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		port = parsed
	}

	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Solara Billing"
	}

	return EmailConfig{
		SMTPServer:   server,
		SMTPPort:     port,
		Username:     os.Getenv("SMTP_USERNAME"),
		Password:     os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("SMTP_FROM_EMAIL"),
		FromName:     fromName,
		TLSEnabled:   os.Getenv("SMTP_TLS") != "false",
		SkipTLSCheck: os.Getenv("SMTP_SKIP_TLS_CHECK") == "true",
	}, nil
}
