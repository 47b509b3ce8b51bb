package email

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"Solara/Models"
)

func testInvoice() (Models.Invoice, Models.Customer) {
	invoice := Models.Invoice{
		InvoiceNumber: "INV-2026-014",
		DueDate:       time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		GrandTotal:    decimal.RequireFromString("5450"),
	}
	customer := Models.Customer{
		Name:  "Dana Whitfield",
		Email: "dana@example.com",
	}
	return invoice, customer
}

func TestInvoiceMessageRecipients(t *testing.T) {
	invoice, customer := testInvoice()
	cc := []string{"office@example.com", "accounting@example.com"}

	message := InvoiceMessage(invoice, customer, []byte("%PDF"), cc)

	if len(message.To) != 1 || message.To[0] != customer.Email {
		t.Errorf("To = %v, want [%s]", message.To, customer.Email)
	}
	if len(message.CC) != 2 || message.CC[0] != cc[0] || message.CC[1] != cc[1] {
		t.Errorf("CC = %v, want %v", message.CC, cc)
	}
	if len(message.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(message.Attachments))
	}
	if got := message.Attachments[0].Filename; got != "invoice-INV-2026-014.pdf" {
		t.Errorf("attachment filename = %q", got)
	}
	if message.Attachments[0].MimeType != "application/pdf" {
		t.Errorf("attachment mime type = %q", message.Attachments[0].MimeType)
	}
}

func TestInvoiceMessageWithoutPDF(t *testing.T) {
	invoice, customer := testInvoice()

	message := InvoiceMessage(invoice, customer, nil, nil)
	if len(message.Attachments) != 0 {
		t.Errorf("got %d attachments, want none", len(message.Attachments))
	}
	if len(message.CC) != 0 {
		t.Errorf("CC = %v, want none", message.CC)
	}
}

func TestReminderMessageMentionsDueDate(t *testing.T) {
	invoice, customer := testInvoice()

	message := ReminderMessage(invoice, customer)
	if !strings.Contains(message.Body, "April 15, 2026") {
		t.Errorf("body does not mention the due date: %q", message.Body)
	}
	if !strings.Contains(message.Body, "5450.00") {
		t.Errorf("body does not mention the amount: %q", message.Body)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	config := Models.EmailConfig{
		FromEmail: "billing@solara.example",
		FromName:  "Solara Billing",
	}
	invoice, customer := testInvoice()
	message := InvoiceMessage(invoice, customer, []byte("%PDF"), []string{"office@example.com"})

	raw, err := buildMessage(config, message)
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		"To: dana@example.com",
		"Cc: office@example.com",
		"Subject: Invoice INV-2026-014 from Solara Solar",
		"multipart/mixed",
		"Content-Transfer-Encoding: base64",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessageWithoutAttachments(t *testing.T) {
	config := Models.EmailConfig{
		FromEmail: "billing@solara.example",
		FromName:  "Solara Billing",
	}
	invoice, customer := testInvoice()
	message := ReminderMessage(invoice, customer)

	raw, err := buildMessage(config, message)
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}
	body := string(raw)

	if strings.Contains(body, "multipart/mixed") {
		t.Error("plain reminder should not be multipart")
	}
	if !strings.Contains(body, "Content-Type: text/plain; charset=UTF-8") {
		t.Error("missing plain text content type")
	}
}
