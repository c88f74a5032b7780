package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
)

// RespondError 将业务错误映射到统一的 {status, message, error?} 响应。
// 未识别的错误一律 500。
func RespondError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{
			"status":  "error",
			"message": appErr.Message,
		}
		if appErr.Code >= 500 && appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
		return c.Status(appErr.Code).JSON(body)
	}

	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
	})
}

// ErrorHandler 兜底处理 handler 链之外抛出的错误。
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"status":  "error",
			"message": fiberErr.Message,
		})
	}

	log.Printf("Global error handler: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
	})
}
