package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"Solara/Billing"
)

type Invoice struct {
	gorm.Model
	InvoiceNumber string    `json:"invoice_number" gorm:"size:100;not null;uniqueIndex:idx_user_invoice_number"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_invoice_number"`
	CustomerID    uint      `json:"customer_id" gorm:"not null;index"`
	IssueDate     time.Time `json:"issue_date" gorm:"not null"`
	DueDate       time.Time `json:"due_date" gorm:"not null"`

	Status                Billing.Status         `json:"status" gorm:"size:20;not null;default:'Draft';index"`
	InvoiceType           Billing.InvoiceType    `json:"invoice_type" gorm:"size:20;not null;default:'Total Due'"`
	Adjustment            float64                `json:"adjustment" gorm:"not null;default:0"`
	AdjustmentDescription Billing.AdjustmentKind `json:"adjustment_description" gorm:"size:50"`

	JobLocation         string `json:"job_location" gorm:"size:500"`
	JobName             string `json:"job_name" gorm:"size:255"`
	WorkOrderNumber     string `json:"work_order_number" gorm:"size:100"`
	PurchaseOrderNumber string `json:"purchase_order_number" gorm:"size:100"`

	// Server-computed aggregates, recalculated on every save.
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(20,8);not null;default:0"`
	DiscountTotal decimal.Decimal `json:"discount_total" gorm:"type:decimal(20,8);not null;default:0"`
	TaxTotal      decimal.Decimal `json:"tax_total" gorm:"type:decimal(20,8);not null;default:0"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(20,8);not null;default:0"`
	GrandTotal    decimal.Decimal `json:"grand_total" gorm:"type:decimal(20,8);not null;default:0"`

	// Relationships
	Customer Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem represents individual billable line items, owned by their
// invoice and deleted with it.
type InvoiceItem struct {
	gorm.Model
	InvoiceID           uint             `json:"invoice_id" gorm:"not null;index"`
	Description         string           `json:"description" gorm:"size:500;not null"`
	DetailedDescription string           `json:"detailed_description" gorm:"type:text"`
	Quantity            float64          `json:"quantity" gorm:"not null"`
	Rate                float64          `json:"rate" gorm:"not null"`
	Discount            float64          `json:"discount" gorm:"not null;default:0"`
	TaxRate             float64          `json:"tax_rate" gorm:"not null;default:0"`
	Type                Billing.ItemType `json:"type" gorm:"size:20;not null;default:'Service'"`
	ItemOrder           int              `json:"item_order" gorm:"not null;default:0"`
}

// LineItems converts the stored items to the billing engine's shape,
// preserving their order.
func (i *Invoice) LineItems() []Billing.LineItem {
	items := make([]Billing.LineItem, 0, len(i.Items))
	for _, item := range i.Items {
		items = append(items, Billing.LineItem{
			Description:         item.Description,
			DetailedDescription: item.DetailedDescription,
			Quantity:            item.Quantity,
			Rate:                item.Rate,
			Discount:            item.Discount,
			TaxRate:             item.TaxRate,
			Type:                item.Type,
		})
	}
	return items
}

type InvoiceRequest struct {
	CustomerID            uint                 `json:"customer_id"`
	InvoiceNumber         string               `json:"invoice_number"`
	IssueDate             string               `json:"issue_date"`
	DueDate               string               `json:"due_date"`
	InvoiceType           string               `json:"invoice_type"`
	Adjustment            float64              `json:"adjustment"`
	AdjustmentDescription string               `json:"adjustment_description"`
	JobLocation           string               `json:"job_location"`
	JobName               string               `json:"job_name"`
	WorkOrderNumber       string               `json:"work_order_number"`
	PurchaseOrderNumber   string               `json:"purchase_order_number"`
	Items                 []InvoiceItemRequest `json:"items"`
}

// SendInvoiceRequest is the optional body of the send action. CC addresses
// receive a copy of the invoice email alongside the customer.
type SendInvoiceRequest struct {
	CC []string `json:"cc" validate:"omitempty,dive,email"`
}

type InvoiceItemRequest struct {
	Description         string  `json:"description"`
	DetailedDescription string  `json:"detailed_description"`
	Quantity            float64 `json:"quantity"`
	Rate                float64 `json:"rate"`
	Discount            float64 `json:"discount"`
	TaxRate             float64 `json:"tax_rate"`
	Type                string  `json:"type"`
}

// LineItems converts the request payload to the billing engine's shape.
func (r *InvoiceRequest) LineItems() []Billing.LineItem {
	items := make([]Billing.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, Billing.LineItem{
			Description:         item.Description,
			DetailedDescription: item.DetailedDescription,
			Quantity:            item.Quantity,
			Rate:                item.Rate,
			Discount:            item.Discount,
			TaxRate:             item.TaxRate,
			Type:                Billing.ItemType(item.Type),
		})
	}
	return items
}
