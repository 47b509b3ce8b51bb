package CronJobs

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Solara/Billing"
	"Solara/Models"
)

func setupSweepDB(t *testing.T) {
	t.Helper()

	// A named in-memory database keeps each test isolated while letting
	// gorm's pool share the same underlying store.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Models.Customer{}, &Models.Invoice{}, &Models.InvoiceItem{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	previous := Models.DB
	Models.DB = db
	t.Cleanup(func() { Models.DB = previous })
}

func seedInvoice(t *testing.T, number string, status Billing.Status, dueDate time.Time) uint {
	t.Helper()

	invoice := Models.Invoice{
		InvoiceNumber: number,
		UserID:        1,
		CustomerID:    1,
		IssueDate:     dueDate.AddDate(0, -1, 0),
		DueDate:       dueDate,
		Status:        status,
	}
	if err := Models.DB.Create(&invoice).Error; err != nil {
		t.Fatalf("failed to seed invoice %s: %v", number, err)
	}
	return invoice.ID
}

func invoiceStatus(t *testing.T, id uint) Billing.Status {
	t.Helper()

	var invoice Models.Invoice
	if err := Models.DB.First(&invoice, id).Error; err != nil {
		t.Fatalf("failed to reload invoice %d: %v", id, err)
	}
	return invoice.Status
}

func TestOverdueSweepOnlyTouchesPastDueSentInvoices(t *testing.T) {
	setupSweepDB(t)

	customer := Models.Customer{Name: "Harbor View Solar"}
	if err := Models.DB.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	pastDueSent := seedInvoice(t, "INV-001", Billing.StatusSent, yesterday)
	pastDueDraft := seedInvoice(t, "INV-002", Billing.StatusDraft, yesterday)
	futureSent := seedInvoice(t, "INV-003", Billing.StatusSent, nextWeek)
	pastDuePaid := seedInvoice(t, "INV-004", Billing.StatusPaid, yesterday)

	checker := NewOverdueChecker(false)
	checker.runOverdueSweep()

	tests := []struct {
		name string
		id   uint
		want Billing.Status
	}{
		{name: "past-due sent flips to overdue", id: pastDueSent, want: Billing.StatusOverdue},
		{name: "past-due draft untouched", id: pastDueDraft, want: Billing.StatusDraft},
		{name: "future-dated sent untouched", id: futureSent, want: Billing.StatusSent},
		{name: "past-due paid untouched", id: pastDuePaid, want: Billing.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := invoiceStatus(t, tt.id); got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOverdueSweepIsIdempotent(t *testing.T) {
	setupSweepDB(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	id := seedInvoice(t, "INV-010", Billing.StatusSent, yesterday)

	checker := NewOverdueChecker(false)
	checker.runOverdueSweep()
	checker.runOverdueSweep()

	if got := invoiceStatus(t, id); got != Billing.StatusOverdue {
		t.Errorf("status after repeated sweeps = %s, want %s", got, Billing.StatusOverdue)
	}
}

func TestOverdueSweepDueTodayNotTouched(t *testing.T) {
	setupSweepDB(t)

	// Due today means due by end of day, not overdue yet.
	id := seedInvoice(t, "INV-020", Billing.StatusSent, time.Now())

	checker := NewOverdueChecker(false)
	checker.runOverdueSweep()

	if got := invoiceStatus(t, id); got != Billing.StatusSent {
		t.Errorf("status = %s, want %s", got, Billing.StatusSent)
	}
}
