package Controllers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Solara/Billing"
	"Solara/Models"
)

// InvoiceController handles invoice-related API endpoints
type InvoiceController struct {
	DB           *gorm.DB
	DeletePolicy Billing.DeletePolicy
}

// NewInvoiceController creates a new InvoiceController. The delete policy
// comes from INVOICE_DELETE_POLICY; "always" restores the legacy behavior of
// allowing paid invoices to be deleted.
func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{
		DB:           db,
		DeletePolicy: Billing.ParseDeletePolicy(os.Getenv("INVOICE_DELETE_POLICY")),
	}
}

// parseDate parses a YYYY-MM-DD value, returning the zero time for empty
// input so missing dates surface as validation errors rather than parse
// failures.
func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

// applyRequest copies request fields onto the invoice, resolving enum
// vocabularies. Totals are computed separately.
func applyRequest(invoice *Models.Invoice, req *Models.InvoiceRequest, issueDate, dueDate time.Time) error {
	invoiceType := Billing.InvoiceType(req.InvoiceType)
	if req.InvoiceType == "" {
		invoiceType = Billing.InvoiceTotalDue
	}
	if !invoiceType.Valid() {
		return fmt.Errorf("unknown invoice type %q", req.InvoiceType)
	}

	adjustmentKind := Billing.AdjustmentKind(req.AdjustmentDescription)
	if req.AdjustmentDescription != "" && !adjustmentKind.Valid() {
		return fmt.Errorf("unknown adjustment description %q", req.AdjustmentDescription)
	}
	// A non-zero adjustment always carries a label from the fixed vocabulary.
	if adjustmentKind == "" && req.Adjustment != 0 {
		adjustmentKind = Billing.AdjustmentOther
	}

	invoice.CustomerID = req.CustomerID
	invoice.InvoiceNumber = req.InvoiceNumber
	invoice.IssueDate = issueDate
	invoice.DueDate = dueDate
	invoice.InvoiceType = invoiceType
	invoice.Adjustment = req.Adjustment
	invoice.AdjustmentDescription = adjustmentKind
	invoice.JobLocation = req.JobLocation
	invoice.JobName = req.JobName
	invoice.WorkOrderNumber = req.WorkOrderNumber
	invoice.PurchaseOrderNumber = req.PurchaseOrderNumber
	return nil
}

// requestItems converts the request's items to persisted rows, preserving
// their order. Item types default to Service.
func requestItems(invoiceID uint, req *Models.InvoiceRequest) ([]Models.InvoiceItem, error) {
	items := make([]Models.InvoiceItem, 0, len(req.Items))
	for i, item := range req.Items {
		itemType := Billing.ItemType(item.Type)
		if item.Type == "" {
			itemType = Billing.ItemService
		}
		if !itemType.Valid() {
			return nil, fmt.Errorf("unknown item type %q", item.Type)
		}
		items = append(items, Models.InvoiceItem{
			InvoiceID:           invoiceID,
			Description:         item.Description,
			DetailedDescription: item.DetailedDescription,
			Quantity:            item.Quantity,
			Rate:                item.Rate,
			Discount:            item.Discount,
			TaxRate:             item.TaxRate,
			Type:                itemType,
			ItemOrder:           i + 1,
		})
	}
	return items, nil
}

// applyTotals recomputes the stored aggregates from the draft.
func applyTotals(invoice *Models.Invoice, draft Billing.InvoiceDraft) {
	totals := Billing.CalculateTotals(draft.Items, draft.Adjustment)
	invoice.Subtotal = totals.Subtotal
	invoice.DiscountTotal = totals.DiscountTotal
	invoice.TaxTotal = totals.TaxTotal
	invoice.Total = totals.Total
	invoice.GrandTotal = totals.GrandTotal
}

func isDuplicateError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "Duplicate entry")
}

// CreateInvoice creates a new invoice in Draft status
// POST /api/invoices
func (c *InvoiceController) CreateInvoice(ctx *fiber.Ctx) error {
	var req Models.InvoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Issue date must be in YYYY-MM-DD format",
		})
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Due date must be in YYYY-MM-DD format",
		})
	}

	draft := Billing.InvoiceDraft{
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         req.LineItems(),
		Adjustment:    req.Adjustment,
	}
	if errs := Billing.Validate(draft); len(errs) > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	// Check if customer exists
	var customer Models.Customer
	if err := c.DB.First(&customer, req.CustomerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Customer not found",
				"message": "The specified customer does not exist",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	invoice := &Models.Invoice{Status: Billing.StatusDraft}
	if err := applyRequest(invoice, &req, issueDate, dueDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}
	applyTotals(invoice, draft)

	if user, ok := ctx.Locals("user").(Models.User); ok {
		invoice.UserID = user.ID
	}

	// Begin transaction
	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Create(invoice).Error; err != nil {
		tx.Rollback()
		if isDuplicateError(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An invoice with this number already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create invoice",
			"message": err.Error(),
		})
	}

	items, err := requestItems(invoice.ID, &req)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create invoice items",
			"message": err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	// Reload with relationships
	c.DB.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(invoice, invoice.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Invoice created successfully",
		"data":    invoice,
	})
}

// GetInvoice retrieves an invoice by ID
// GET /api/invoices/:id
func (c *InvoiceController) GetInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var invoice Models.Invoice
	err = c.DB.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(&invoice, uint(id)).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Invoice retrieved successfully",
		"data":    invoice,
	})
}

// GetAllInvoices retrieves invoices with pagination and filters
// GET /api/invoices?page=1&limit=10&status=Sent&customer_id=3
func (c *InvoiceController) GetAllInvoices(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

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

	var total int64
	query.Count(&total)

	var invoices []Models.Invoice
	err := query.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Order("issue_date DESC, id DESC").Offset(offset).Limit(limit).Find(&invoices).Error

	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Invoices retrieved successfully",
		"data":    invoices,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// UpdateInvoice updates a draft invoice
// PUT /api/invoices/:id
func (c *InvoiceController) UpdateInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var req Models.InvoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	var invoice Models.Invoice
	if err := c.DB.First(&invoice, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	// Only drafts are editable; everything else moves through actions.
	if invoice.Status != Billing.StatusDraft {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot edit a %s invoice", invoice.Status),
		})
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Issue date must be in YYYY-MM-DD format",
		})
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Due date must be in YYYY-MM-DD format",
		})
	}

	draft := Billing.InvoiceDraft{
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         req.LineItems(),
		Adjustment:    req.Adjustment,
	}
	if errs := Billing.Validate(draft); len(errs) > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	var customer Models.Customer
	if err := c.DB.First(&customer, req.CustomerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Customer not found",
				"message": "The specified customer does not exist",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	if err := applyRequest(&invoice, &req, issueDate, dueDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}
	applyTotals(&invoice, draft)

	// Begin transaction
	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		if isDuplicateError(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An invoice with this number already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice",
			"message": err.Error(),
		})
	}

	// Replace existing items wholesale
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&Models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete existing invoice items",
			"message": err.Error(),
		})
	}

	items, err := requestItems(invoice.ID, &req)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create invoice items",
			"message": err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	// Reload with relationships
	c.DB.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(&invoice, invoice.ID)

	return ctx.JSON(fiber.Map{
		"message": "Invoice updated successfully",
		"data":    invoice,
	})
}

// DeleteInvoice deletes an invoice and its items
// DELETE /api/invoices/:id
func (c *InvoiceController) DeleteInvoice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var invoice Models.Invoice
	if err := c.DB.First(&invoice, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	if !c.DeletePolicy.CanDelete(invoice.Status) {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot delete a %s invoice", invoice.Status),
		})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&Models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete invoice items",
			"message": err.Error(),
		})
	}

	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete invoice",
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
		"message": "Invoice deleted successfully",
	})
}
