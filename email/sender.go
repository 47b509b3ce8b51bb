package email

import (
	"Solara/Models"
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SendEmail sends an email using the provided configuration and message details
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	body, err := buildMessage(config, message)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	// Set up authentication
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)

	// Create recipient list (to, cc, bcc)
	var recipients []string
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)
	recipients = append(recipients, message.BCC...)

	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	if !config.TLSEnabled {
		// Standard SMTP (non-TLS)
		return smtp.SendMail(serverAddr, auth, config.FromEmail, recipients, body)
	}

	tlsConfig := &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data connection: %w", err)
	}

	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the raw RFC 822 message, using a multipart body
// when attachments are present.
func buildMessage(config Models.EmailConfig, message Models.EmailMessage) ([]byte, error) {
	var buf bytes.Buffer

	write := func(key, value string) {
		buf.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	write("From", fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail))
	write("To", strings.Join(message.To, ", "))
	if len(message.CC) > 0 {
		write("Cc", strings.Join(message.CC, ", "))
	}
	write("Subject", message.Subject)
	write("MIME-Version", "1.0")

	contentType := "text/plain; charset=UTF-8"
	if message.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}

	if len(message.Attachments) == 0 {
		write("Content-Type", contentType)
		buf.WriteString("\r\n")
		buf.WriteString(message.Body)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	write("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", writer.Boundary()))
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(message.Body)); err != nil {
		return nil, err
	}

	for _, attachment := range message.Attachments {
		mimeType := attachment.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", mimeType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.Filename))

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(attachment.Data)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoiceMessage builds the email for sending an invoice to its customer,
// optionally attaching the rendered PDF and copying additional recipients.
func InvoiceMessage(invoice Models.Invoice, customer Models.Customer, pdf []byte, cc []string) Models.EmailMessage {
	message := Models.EmailMessage{
		To:      []string{customer.Email},
		CC:      cc,
		Subject: fmt.Sprintf("Invoice %s from Solara Solar", invoice.InvoiceNumber),
		Body: fmt.Sprintf(
			"Hello %s,\r\n\r\nPlease find invoice %s attached. The amount due is $%s by %s.\r\n\r\nThank you,\r\nSolara Solar",
			customer.Name, invoice.InvoiceNumber,
			invoice.GrandTotal.StringFixed(2), invoice.DueDate.Format("January 2, 2006")),
	}
	if len(pdf) > 0 {
		message.Attachments = []Models.Attachment{{
			Filename: fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber),
			Data:     pdf,
			MimeType: "application/pdf",
		}}
	}
	return message
}

// ReminderMessage builds the payment reminder email for an unpaid invoice.
func ReminderMessage(invoice Models.Invoice, customer Models.Customer) Models.EmailMessage {
	return Models.EmailMessage{
		To:      []string{customer.Email},
		Subject: fmt.Sprintf("Payment reminder for invoice %s", invoice.InvoiceNumber),
		Body: fmt.Sprintf(
			"Hello %s,\r\n\r\nThis is a reminder that invoice %s for $%s was due on %s.\r\n\r\nThank you,\r\nSolara Solar",
			customer.Name, invoice.InvoiceNumber,
			invoice.GrandTotal.StringFixed(2), invoice.DueDate.Format("January 2, 2006")),
	}
}
