package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"Solara/Billing"
	"Solara/Models"
	"Solara/Reports"
	"Solara/email"
)

// loadInvoiceWithRelations fetches the invoice or writes the error response.
func (c *InvoiceController) loadInvoiceWithRelations(ctx *fiber.Ctx, invoice *Models.Invoice) bool {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
		return false
	}

	err = c.DB.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(invoice, uint(id)).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		} else {
			ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Database error",
				"message": err.Error(),
			})
		}
		return false
	}
	return true
}

// SendInvoice emails the invoice to its customer. A draft is advanced to
// Sent only after the email goes out; sending an already-sent invoice
// re-emails it without changing status.
// POST /api/invoices/:id/send
func (c *InvoiceController) SendInvoice(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	// The body is optional; an empty request sends to the customer alone.
	var req Models.SendInvoiceRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid request body",
				"message": err.Error(),
			})
		}
		if err := validate.Struct(req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":    "Validation failed",
				"messages": validationMessages(err),
			})
		}
	}

	if invoice.Status == Billing.StatusDraft {
		// The send guard: a draft needs a customer and valid items before
		// it can go out.
		draft := Billing.InvoiceDraft{
			CustomerID:    invoice.CustomerID,
			InvoiceNumber: invoice.InvoiceNumber,
			IssueDate:     invoice.IssueDate,
			DueDate:       invoice.DueDate,
			Items:         invoice.LineItems(),
			Adjustment:    invoice.Adjustment,
		}
		if errs := Billing.Validate(draft); len(errs) > 0 {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invoice is not ready to send",
				"errors": errs,
			})
		}
		if err := Billing.Transition(invoice.Status, Billing.StatusSent); err != nil {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
	} else if !Billing.CanEmail(invoice.Status) {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot email a %s invoice", invoice.Status),
		})
	}

	if invoice.Customer.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Customer has no email address",
		})
	}

	config, err := Models.LoadEmailConfig()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Email is not configured",
			"message": err.Error(),
		})
	}

	pdf, err := Reports.InvoicePDF(invoice, invoice.Customer)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to render invoice PDF",
			"message": err.Error(),
		})
	}

	if err := email.SendEmail(config, email.InvoiceMessage(invoice, invoice.Customer, pdf, req.CC)); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to send invoice email",
			"message": err.Error(),
		})
	}

	// Advance the draft only once the email has actually gone out.
	if invoice.Status == Billing.StatusDraft {
		invoice.Status = Billing.StatusSent
		if err := c.DB.Model(&invoice).Update("status", invoice.Status).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Invoice was emailed but its status could not be updated",
				"message": err.Error(),
			})
		}
	}

	return ctx.JSON(fiber.Map{
		"message": "Invoice sent successfully",
		"data":    invoice,
	})
}

// PayInvoice records a payment for the full amount due and marks the
// invoice paid
// POST /api/invoices/:id/pay
func (c *InvoiceController) PayInvoice(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	if !Billing.CanPay(invoice.Status) {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot record a payment for a %s invoice", invoice.Status),
		})
	}

	var req Models.PaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Validation failed",
			"messages": validationMessages(err),
		})
	}

	if err := Billing.Transition(invoice.Status, Billing.StatusPaid); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	payment := Models.Payment{
		InvoiceID: invoice.ID,
		Amount:    invoice.GrandTotal,
		Method:    req.Method,
		Reference: uuid.NewString(),
		PaidAt:    time.Now(),
		Notes:     req.Notes,
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to record payment",
			"message": err.Error(),
		})
	}

	invoice.Status = Billing.StatusPaid
	if err := tx.Model(&invoice).Update("status", invoice.Status).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice status",
			"message": err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"data":    payment,
	})
}

// RemindInvoice emails a payment reminder without changing status
// POST /api/invoices/:id/remind
func (c *InvoiceController) RemindInvoice(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	if !Billing.CanRemind(invoice.Status) {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot send a reminder for a %s invoice", invoice.Status),
		})
	}

	if invoice.Customer.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Customer has no email address",
		})
	}

	config, err := Models.LoadEmailConfig()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Email is not configured",
			"message": err.Error(),
		})
	}

	if err := email.SendEmail(config, email.ReminderMessage(invoice, invoice.Customer)); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to send reminder email",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Reminder sent successfully",
	})
}

// CancelInvoice cancels a sent or overdue invoice
// POST /api/invoices/:id/cancel
func (c *InvoiceController) CancelInvoice(ctx *fiber.Ctx) error {
	return c.transitionInvoice(ctx, Billing.StatusCancelled, "Invoice cancelled successfully")
}

// MarkOverdue manually flags a sent invoice as overdue
// POST /api/invoices/:id/mark-overdue
func (c *InvoiceController) MarkOverdue(ctx *fiber.Ctx) error {
	return c.transitionInvoice(ctx, Billing.StatusOverdue, "Invoice marked overdue")
}

func (c *InvoiceController) transitionInvoice(ctx *fiber.Ctx, to Billing.Status, message string) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	if err := Billing.Transition(invoice.Status, to); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	invoice.Status = to
	if err := c.DB.Model(&invoice).Update("status", invoice.Status).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice status",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": message,
		"data":    invoice,
	})
}
