package Reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"Solara/Billing"
	"Solara/Models"
)

// InvoicePDF renders the printable PDF document for an invoice.
func InvoicePDF(invoice Models.Invoice, customer Models.Customer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	// Header
	pdf.Cell(40, 10, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber))
	pdf.Ln(12)

	// Customer billing details
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Bill To:")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(95, 6, customer.Name)
	pdf.Ln(6)
	if customer.Company != "" {
		pdf.Cell(95, 6, customer.Company)
		pdf.Ln(6)
	}
	if customer.Address != "" {
		pdf.Cell(95, 6, customer.Address)
		pdf.Ln(6)
	}
	if customer.Email != "" {
		pdf.Cell(95, 6, customer.Email)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Invoice metadata
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, fmt.Sprintf("Issue date: %s", invoice.IssueDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Due date: %s", invoice.DueDate.Format("2006-01-02")))
	pdf.Ln(6)
	if invoice.JobName != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Job: %s", invoice.JobName))
		pdf.Ln(6)
	}
	if invoice.JobLocation != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Location: %s", invoice.JobLocation))
		pdf.Ln(6)
	}
	if invoice.WorkOrderNumber != "" {
		pdf.Cell(95, 6, fmt.Sprintf("Work order: %s", invoice.WorkOrderNumber))
		pdf.Ln(6)
	}
	if invoice.PurchaseOrderNumber != "" {
		pdf.Cell(95, 6, fmt.Sprintf("PO number: %s", invoice.PurchaseOrderNumber))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(18, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(26, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(18, 7, "Disc %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(18, 7, "Tax %", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		amount := Billing.LineTotal(Billing.LineItem{
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Discount: item.Discount,
			TaxRate:  item.TaxRate,
		})
		pdf.CellFormat(70, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%g", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 7, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%g", item.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%g", item.TaxRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block
	totalRow := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(150, 6, label, "0", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, value, "0", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", invoice.Subtotal.StringFixed(2), false)
	totalRow("Discount", invoice.DiscountTotal.StringFixed(2), false)
	totalRow("Tax", invoice.TaxTotal.StringFixed(2), false)
	if invoice.Adjustment != 0 {
		label := string(invoice.AdjustmentDescription)
		if label == "" {
			label = "Adjustment"
		}
		totalRow(label, fmt.Sprintf("%.2f", invoice.Adjustment), false)
	}
	totalRow("Amount Due", invoice.GrandTotal.StringFixed(2), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
