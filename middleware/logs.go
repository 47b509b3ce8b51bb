package middleware

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"Solara/Models"
)

// LogData contains the fields logged for each request.
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	RequestID string        `json:"request_id"`
	Error     string        `json:"error,omitempty"`
	UserID    interface{}   `json:"user_id,omitempty"`
}

// RequestLogger logs every request as a JSON line to logs/requests.log and
// to stdout. Health checks are skipped.
func RequestLogger() fiber.Handler {
	var file *os.File
	if err := os.MkdirAll("logs", 0755); err == nil {
		file, err = os.OpenFile("logs/requests.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Error opening request log file: %v", err)
		}
	}

	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		start := time.Now()
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			RequestID: requestID,
		}
		if err != nil {
			data.Error = err.Error()
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			data.UserID = user.ID
		}

		line, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			log.Printf("Error marshaling request log: %v", marshalErr)
			return err
		}

		log.Printf("%s %s -> %d (%s)", data.Method, data.Path, data.Status, data.Latency)
		if file != nil {
			file.Write(append(line, '\n'))
		}
		return err
	}
}
