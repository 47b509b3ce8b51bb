package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Solara/Billing"
	"Solara/Models"
)

// DashboardController handles dashboard-related API endpoints
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Summary returns overall billing summary
func (c *DashboardController) Summary(ctx *fiber.Ctx) error {
	type BillingSummary struct {
		CustomerCount  int64            `json:"customer_count"`
		InvoiceCount   int64            `json:"invoice_count"`
		StatusCounts   map[string]int64 `json:"status_counts"`
		Outstanding    float64          `json:"outstanding"`
		TotalCollected float64          `json:"total_collected"`
	}

	summary := BillingSummary{StatusCounts: make(map[string]int64)}

	c.DB.Model(&Models.Customer{}).Count(&summary.CustomerCount)
	c.DB.Model(&Models.Invoice{}).Count(&summary.InvoiceCount)

	for _, status := range []Billing.Status{
		Billing.StatusDraft, Billing.StatusSent, Billing.StatusPaid,
		Billing.StatusOverdue, Billing.StatusCancelled,
	} {
		var count int64
		c.DB.Model(&Models.Invoice{}).Where("status = ?", status).Count(&count)
		summary.StatusCounts[string(status)] = count
	}

	// Outstanding is everything billed but not yet collected
	c.DB.Model(&Models.Invoice{}).
		Where("status IN ?", []Billing.Status{Billing.StatusSent, Billing.StatusOverdue}).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&summary.Outstanding)

	c.DB.Model(&Models.Payment{}).Select("COALESCE(SUM(amount), 0)").Scan(&summary.TotalCollected)

	return ctx.JSON(summary)
}

// MonthlyRevenue returns collected payments summed by month
func (c *DashboardController) MonthlyRevenue(ctx *fiber.Ctx) error {
	type MonthlyData struct {
		Month    string  `json:"month"`
		Revenue  float64 `json:"revenue"`
		Payments int     `json:"payments"`
	}

	// Get start date (12 months ago from today)
	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0)

	// Query all payments in the date range and group them in Go rather
	// than doing date formatting in SQL, which differs per driver
	var payments []Models.Payment

	result := c.DB.Where("paid_at BETWEEN ? AND ? AND deleted_at IS NULL",
		startDate, endDate).
		Find(&payments)

	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	// Group payments by month
	monthlySummary := make(map[string]*MonthlyData)

	// First, create entries for all 12 months (even if no data)
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthKey := date.Format("2006-01")
		monthLabel := date.Format("Jan 2006")

		monthlySummary[monthKey] = &MonthlyData{
			Month:    monthLabel,
			Revenue:  0,
			Payments: 0,
		}
	}

	for _, payment := range payments {
		monthKey := payment.PaidAt.Format("2006-01")

		if data, exists := monthlySummary[monthKey]; exists {
			amount, _ := payment.Amount.Float64()
			data.Revenue += amount
			data.Payments++
		}
	}

	// Convert map to slice for JSON response
	var response []MonthlyData
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthKey := date.Format("2006-01")
		if data, exists := monthlySummary[monthKey]; exists {
			response = append(response, *data)
		}
	}

	// Reverse to get chronological order
	for i, j := 0, len(response)-1; i < j; i, j = i+1, j-1 {
		response[i], response[j] = response[j], response[i]
	}

	return ctx.JSON(response)
}

// TopCustomers returns the top customers by billed volume
func (c *DashboardController) TopCustomers(ctx *fiber.Ctx) error {
	type CustomerSummary struct {
		ID           uint    `json:"id"`
		Name         string  `json:"name"`
		Billed       float64 `json:"billed"`
		Outstanding  float64 `json:"outstanding"`
		InvoiceCount int     `json:"invoice_count"`
	}

	var results []CustomerSummary

	c.DB.Raw(`
		SELECT
			c.id,
			c.name,
			SUM(i.grand_total) as billed,
			SUM(CASE WHEN i.status IN ('Sent', 'Overdue') THEN i.grand_total ELSE 0 END) as outstanding,
			COUNT(i.id) as invoice_count
		FROM customers c
		JOIN invoices i ON c.id = i.customer_id
		WHERE c.deleted_at IS NULL
		AND i.deleted_at IS NULL
		AND i.status != 'Cancelled'
		GROUP BY c.id, c.name
		ORDER BY billed DESC
		LIMIT 5
	`).Scan(&results)

	return ctx.JSON(results)
}

// RecentActivity returns the most recent payments
func (c *DashboardController) RecentActivity(ctx *fiber.Ctx) error {
	type RecentPayment struct {
		ID            uint      `json:"id"`
		PaidAt        time.Time `json:"paid_at"`
		CustomerName  string    `json:"customer_name"`
		InvoiceNumber string    `json:"invoice_number"`
		Amount        float64   `json:"amount"`
		Method        string    `json:"method"`
	}

	var results []RecentPayment

	c.DB.Raw(`
		SELECT
			p.id,
			p.paid_at,
			c.name as customer_name,
			i.invoice_number,
			p.amount,
			p.method
		FROM payments p
		JOIN invoices i ON p.invoice_id = i.id
		JOIN customers c ON i.customer_id = c.id
		WHERE p.deleted_at IS NULL
		AND i.deleted_at IS NULL
		ORDER BY p.paid_at DESC, p.id DESC
		LIMIT 10
	`).Scan(&results)

	return ctx.JSON(results)
}
