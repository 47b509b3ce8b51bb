package Controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"Solara/Billing"
	"Solara/Models"
	"Solara/Reports"
)

// ExportExcel streams the invoice register as an xlsx workbook, honoring
// the same filters as the list endpoint
// GET /api/invoices/export
func (c *InvoiceController) ExportExcel(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Invoice{})
	if status := ctx.Query("status"); status != "" {
		if !Billing.Status(status).Valid() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown status filter",
			})
		}
		query = query.Where("status = ?", status)
	}
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var invoices []Models.Invoice
	if err := query.Preload("Customer").Order("issue_date DESC, id DESC").Find(&invoices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	buf, err := Reports.InvoiceRegister(invoices)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to build workbook",
			"message": err.Error(),
		})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// DownloadPDF streams the invoice as a PDF document
// GET /api/invoices/:id/pdf
func (c *InvoiceController) DownloadPDF(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	pdf, err := Reports.InvoicePDF(invoice, invoice.Customer)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to render invoice PDF",
			"message": err.Error(),
		})
	}

	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoice.InvoiceNumber+".pdf"))
	return ctx.Send(pdf)
}

// Preview renders the printable invoice view
// GET /invoices/:id/preview
func (c *InvoiceController) Preview(ctx *fiber.Ctx) error {
	var invoice Models.Invoice
	if !c.loadInvoiceWithRelations(ctx, &invoice) {
		return nil
	}

	type previewItem struct {
		Description string
		Detail      string
		Quantity    float64
		Rate        string
		Discount    float64
		TaxRate     float64
		Amount      string
	}

	items := make([]previewItem, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		amount := Billing.LineTotal(Billing.LineItem{
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Discount: item.Discount,
			TaxRate:  item.TaxRate,
		})
		items = append(items, previewItem{
			Description: item.Description,
			Detail:      item.DetailedDescription,
			Quantity:    item.Quantity,
			Rate:        fmt.Sprintf("%.2f", item.Rate),
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
			Amount:      amount.StringFixed(2),
		})
	}

	adjustmentLabel := string(invoice.AdjustmentDescription)
	if adjustmentLabel == "" {
		adjustmentLabel = "Adjustment"
	}

	return ctx.Render("invoice", fiber.Map{
		"Invoice":         invoice,
		"Customer":        invoice.Customer,
		"Items":           items,
		"IssueDate":       invoice.IssueDate.Format("January 2, 2006"),
		"DueDate":         invoice.DueDate.Format("January 2, 2006"),
		"Subtotal":        invoice.Subtotal.StringFixed(2),
		"DiscountTotal":   invoice.DiscountTotal.StringFixed(2),
		"TaxTotal":        invoice.TaxTotal.StringFixed(2),
		"Adjustment":      fmt.Sprintf("%.2f", invoice.Adjustment),
		"AdjustmentLabel": adjustmentLabel,
		"GrandTotal":      invoice.GrandTotal.StringFixed(2),
	})
}
