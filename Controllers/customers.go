package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Solara/Billing"
	"Solara/Models"
)

// CustomerController handles customer-related API endpoints
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetCustomers retrieves all customers, optionally filtered by a name search
func (c *CustomerController) GetCustomers(ctx *fiber.Ctx) error {
	query := c.DB.Order("name ASC")
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var customers []Models.Customer
	if result := query.Find(&customers); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}

	return ctx.JSON(customers)
}

// GetCustomer retrieves a single customer by ID
func (c *CustomerController) GetCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return ctx.JSON(customer)
}

// CreateCustomer creates a new customer
func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input Models.CustomerRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Validation failed",
			"messages": validationMessages(err),
		})
	}

	customer := Models.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Address: input.Address,
		Notes:   input.Notes,
	}

	if result := c.DB.Create(&customer); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create customer",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer updates an existing customer
func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var input Models.CustomerRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Validation failed",
			"messages": validationMessages(err),
		})
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Company = input.Company
	customer.Address = input.Address
	customer.Notes = input.Notes

	if result := c.DB.Save(&customer); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
	}

	return ctx.JSON(customer)
}

// DeleteCustomer deletes a customer with no invoices
func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	// Invoices reference their customer; refuse to orphan them.
	var invoiceCount int64
	c.DB.Model(&Models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&invoiceCount)
	if invoiceCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Customer has invoices and cannot be deleted",
		})
	}

	if result := c.DB.Delete(&customer); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete customer"})
	}

	return ctx.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

// GetCustomerOutstanding returns the customer's unpaid invoice total
func (c *CustomerController) GetCustomerOutstanding(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var outstanding float64
	c.DB.Model(&Models.Invoice{}).
		Where("customer_id = ? AND status IN ?", customer.ID, []Billing.Status{Billing.StatusSent, Billing.StatusOverdue}).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&outstanding)

	var unpaidCount int64
	c.DB.Model(&Models.Invoice{}).
		Where("customer_id = ? AND status IN ?", customer.ID, []Billing.Status{Billing.StatusSent, Billing.StatusOverdue}).
		Count(&unpaidCount)

	return ctx.JSON(fiber.Map{
		"customer_id":     customer.ID,
		"outstanding":     outstanding,
		"unpaid_invoices": unpaidCount,
	})
}

// ImportCustomers loads customers from an xlsx workbook on disk
// POST /api/customers/import
func (c *CustomerController) ImportCustomers(ctx *fiber.Ctx) error {
	var input struct {
		Path string `json:"path" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(input.Path) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	count, err := Models.ImportCustomers(input.Path)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Import failed",
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Customers imported successfully",
		"count":   count,
	})
}
