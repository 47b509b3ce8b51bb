package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Solara/Billing"
	"Solara/Models"

	"github.com/robfig/cron/v3"
)

// OverdueChecker represents a scheduled overdue invoice sweep service
type OverdueChecker struct {
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

// NewOverdueChecker creates a new overdue checker with the given configuration
func NewOverdueChecker(runImmediately bool) *OverdueChecker {
	return &OverdueChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start initiates the overdue checker cron job
func (s *OverdueChecker) Start() error {
	// Add the scheduled task
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled daily overdue check")
		s.runOverdueSweep()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	// Start the scheduler
	s.cronScheduler.Start()
	fmt.Println("Overdue check scheduler started - will run daily at 1:00 AM")

	// Run immediately if requested
	if s.runImmediately {
		fmt.Println("Running initial overdue check")
		s.runOverdueSweep()
	}

	return nil
}

// Stop terminates the overdue checker
func (s *OverdueChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Overdue check scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the overdue checker
// Format: "0 0 1 * * *" = At 01:00:00 AM every day
func (s *OverdueChecker) UpdateSchedule(schedule string) error {
	// Remove existing job
	s.cronScheduler.Remove(s.jobID)

	// Add with new schedule
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled overdue check")
		s.runOverdueSweep()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Overdue check schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a manual overdue sweep
func (s *OverdueChecker) RunManualCheck() {
	log.Println("Running manual overdue check")
	s.runOverdueSweep()
}

// runOverdueSweep marks sent invoices past their due date as overdue
func (s *OverdueChecker) runOverdueSweep() {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var invoices []Models.Invoice
	result := Models.DB.Where("status = ? AND due_date < ?", Billing.StatusSent, startOfToday).
		Find(&invoices)

	if result.Error != nil {
		log.Printf("Error in overdue check: %v\n", result.Error)
		return
	}

	if len(invoices) == 0 {
		log.Println("No overdue invoices found")
		return
	}

	marked := 0
	for i := range invoices {
		if err := Billing.Transition(invoices[i].Status, Billing.StatusOverdue); err != nil {
			log.Printf("Skipping invoice %s: %v\n", invoices[i].InvoiceNumber, err)
			continue
		}

		invoices[i].Status = Billing.StatusOverdue
		if err := Models.DB.Model(&invoices[i]).Update("status", Billing.StatusOverdue).Error; err != nil {
			log.Printf("Error marking invoice %s overdue: %v\n", invoices[i].InvoiceNumber, err)
			continue
		}
		marked++
	}

	log.Printf("Overdue check complete: %d of %d invoices marked overdue\n", marked, len(invoices))
}
