package main

import (
	"log"
	"os"

	"Solara/CronJobs"
	"Solara/FiberConfig"
	"Solara/Models"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func main() {
	setupLogging()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := Models.Connect(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	overdueChecker := CronJobs.NewOverdueChecker(true)
	if err := overdueChecker.Start(); err != nil {
		log.Printf("Failed to start overdue checker: %v\n", err)
	}
	defer overdueChecker.Stop()

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	// Set up main application log file
	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
