package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Solara/Models"
)

// PaymentController handles payment-related API endpoints
type PaymentController struct {
	DB *gorm.DB
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetInvoicePayments retrieves all payments recorded against an invoice
// GET /api/invoices/:id/payments
func (c *PaymentController) GetInvoicePayments(ctx *fiber.Ctx) error {
	invoiceID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	// Verify invoice exists
	var invoice Models.Invoice
	if result := c.DB.First(&invoice, invoiceID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}

	var payments []Models.Payment
	result := c.DB.Where("invoice_id = ?", invoiceID).Order("paid_at DESC").Find(&payments)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

// GetPayment retrieves a single payment by ID
// GET /api/payments/:id
func (c *PaymentController) GetPayment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.Payment
	result := c.DB.First(&payment, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	return ctx.JSON(payment)
}
