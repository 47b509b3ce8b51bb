package Models

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"golang.org/x/crypto/bcrypt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database selected by DB_DRIVER (sqlite by default,
// mysql/postgres via DB_DSN) and runs migrations.
func Connect() error {
	var dialector gorm.Dialector
	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dialector = mysql.Open(os.Getenv("DB_DSN"))
	case "postgres":
		dialector = postgres.Open(os.Getenv("DB_DSN"))
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "solara.db"
		}
		dialector = sqlite.Open(path)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	DB = connection

	// 1. Base entities with no dependencies
	if err := DB.AutoMigrate(&User{}, &Customer{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// 2. Entities with foreign key relationships
	if err := DB.AutoMigrate(&Invoice{}, &InvoiceItem{}, &Payment{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return seedAdmin()
}

// seedAdmin creates the initial admin account when the users table is empty.
// ADMIN_EMAIL and ADMIN_PASSWORD must be set, otherwise seeding is skipped.
func seedAdmin() error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("no users found and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := User{
		Name:       "Admin",
		Email:      email,
		Password:   hash,
		Permission: 3,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Printf("seeded admin user %s", email)
	return nil
}

// ImportCustomers loads customers from an xlsx workbook. Expected columns on
// Sheet1: name, email, phone, company, address. The first row is treated as a
// header when its first cell reads "name".
func ImportCustomers(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}

	var customers []Customer
	rows := f.GetRows("Sheet1")
	for rowIndex, row := range rows {
		var customer Customer
		for columnIndex, data := range row {
			switch columnIndex {
			case 0:
				customer.Name = strings.TrimSpace(data)
			case 1:
				customer.Email = strings.TrimSpace(data)
			case 2:
				customer.Phone = strings.TrimSpace(data)
			case 3:
				customer.Company = strings.TrimSpace(data)
			case 4:
				customer.Address = strings.TrimSpace(data)
			}
		}
		if rowIndex == 0 && strings.EqualFold(customer.Name, "name") {
			continue
		}
		if customer.Name == "" {
			continue
		}
		customers = append(customers, customer)
	}

	if len(customers) == 0 {
		return 0, nil
	}
	if err := DB.Create(&customers).Error; err != nil {
		return 0, fmt.Errorf("failed to insert customers: %w", err)
	}
	return len(customers), nil
}
