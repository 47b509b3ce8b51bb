package FiberConfig

import (
	"fmt"
	"os"

	"Solara/Controllers"
	"Solara/Models"
	"Solara/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	customerController := Controllers.NewCustomerController(db)
	invoiceController := Controllers.NewInvoiceController(db)
	paymentController := Controllers.NewPaymentController(db)
	dashboardController := Controllers.NewDashboardController(db)

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	app.Post("/api/auth/login", Controllers.Login)
	app.Post("/api/auth/logout", Controllers.Logout)
	app.Get("/api/auth/user", middleware.Verify(0), Controllers.CurrentUser)

	// API group
	api := app.Group("/api")

	// Customer routes
	customers := api.Group("/customers", middleware.Verify(1))
	customers.Get("/", customerController.GetCustomers)
	customers.Post("/", customerController.CreateCustomer)
	customers.Post("/import", middleware.Verify(3), customerController.ImportCustomers)
	customers.Get("/:id", customerController.GetCustomer)
	customers.Put("/:id", customerController.UpdateCustomer)
	customers.Delete("/:id", middleware.Verify(3), customerController.DeleteCustomer)
	customers.Get("/:id/outstanding", customerController.GetCustomerOutstanding)

	// Invoice routes
	invoices := api.Group("/invoices", middleware.Verify(1))
	invoices.Get("/", invoiceController.GetAllInvoices)
	// Place export BEFORE the ID route to avoid conflicts
	invoices.Get("/export", invoiceController.ExportExcel)
	invoices.Post("/", invoiceController.CreateInvoice)
	invoices.Get("/:id", invoiceController.GetInvoice)
	invoices.Put("/:id", invoiceController.UpdateInvoice)
	invoices.Delete("/:id", middleware.Verify(3), invoiceController.DeleteInvoice)

	// Invoice action routes
	invoices.Post("/:id/send", invoiceController.SendInvoice)
	invoices.Post("/:id/pay", invoiceController.PayInvoice)
	invoices.Post("/:id/remind", invoiceController.RemindInvoice)
	invoices.Post("/:id/cancel", invoiceController.CancelInvoice)
	invoices.Post("/:id/mark-overdue", invoiceController.MarkOverdue)
	invoices.Get("/:id/pdf", invoiceController.DownloadPDF)
	invoices.Get("/:id/payments", paymentController.GetInvoicePayments)

	// Direct payment routes
	payments := api.Group("/payments", middleware.Verify(1))
	payments.Get("/:id", paymentController.GetPayment)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.Verify(1))
	dashboard.Get("/summary", dashboardController.Summary)
	dashboard.Get("/monthly", dashboardController.MonthlyRevenue)
	dashboard.Get("/top-customers", dashboardController.TopCustomers)
	dashboard.Get("/recent-activity", dashboardController.RecentActivity)

	// Printable invoice preview
	app.Get("/invoices/:id/preview", middleware.Verify(1), invoiceController.Preview)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
