package middleware

import (
	"fmt"
	"time"

	"employee_directory/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDKey is the fiber.Ctx local holding the request id.
const RequestIDKey = "request_id"

// Setup installs the middleware chain shared by every route.
func Setup(app *fiber.App) {
	app.Use(
		requestid.New(requestid.Config{
			Generator:  uuid.NewString,
			ContextKey: RequestIDKey,
		}),
		AccessLog(),
		recover.New(recover.Config{
			EnableStackTrace:  true,
			StackTraceHandler: logPanic,
		}),
	)
}

func logPanic(c *fiber.Ctx, e interface{}) {
	utils.Logger.Error("Recovered from panic",
		zap.String("request_id", RequestID(c)),
		zap.String("path", c.Path()),
		zap.String("panic", fmt.Sprint(e)))
}

// RequestID returns the id assigned to the current request, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}

// AccessLog writes one line per request. Errors returned down the chain are
// rendered through the app's error handler first so the logged status is the
// one sent to the client.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			utils.Logger.Error("Request failed", fields...)
		case status >= fiber.StatusBadRequest:
			utils.Logger.Info("Request rejected", fields...)
		default:
			utils.Logger.Info("Request handled", fields...)
		}
		return nil
	}
}
