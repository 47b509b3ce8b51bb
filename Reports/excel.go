package Reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"Solara/Models"
)

// InvoiceRegister builds an Excel workbook listing the given invoices, one
// row per invoice with its stored aggregates.
func InvoiceRegister(invoices []Models.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Invoice #", "Customer", "Status", "Type", "Issue Date", "Due Date",
		"Subtotal", "Discount", "Tax", "Total", "Adjustment", "Grand Total",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, invoice := range invoices {
		row := rowIndex + 2

		values := []interface{}{
			invoice.InvoiceNumber,
			invoice.Customer.Name,
			string(invoice.Status),
			string(invoice.InvoiceType),
			invoice.IssueDate.Format("2006-01-02"),
			invoice.DueDate.Format("2006-01-02"),
			invoice.Subtotal.InexactFloat64(),
			invoice.DiscountTotal.InexactFloat64(),
			invoice.TaxTotal.InexactFloat64(),
			invoice.Total.InexactFloat64(),
			invoice.Adjustment,
			invoice.GrandTotal.InexactFloat64(),
		}

		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		col := string('A' + rune(i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %w", err)
	}
	return &buf, nil
}
