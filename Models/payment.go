package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records a completed payment against an invoice. Reference is a
// server-assigned UUID handed back to the caller as a receipt identifier.
type Payment struct {
	gorm.Model
	InvoiceID uint            `json:"invoice_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,8);not null"`
	Method    string          `json:"method" gorm:"size:50;not null"`
	Reference string          `json:"reference" gorm:"size:36;not null;uniqueIndex"`
	PaidAt    time.Time       `json:"paid_at" gorm:"not null"`
	Notes     string          `json:"notes" gorm:"type:text"`
}

type PaymentRequest struct {
	Method string `json:"method" validate:"required"`
	Notes  string `json:"notes"`
}
