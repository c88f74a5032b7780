package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"landadmin.com/internal/config"
	"landadmin.com/internal/infra"
)

// NewServer 创建并配置 Fiber 实例 (日志、CORS、静态图片、健康检查)
func NewServer(cfg *config.Config, store *infra.ImageStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Server.AppName,
		ErrorHandler: ErrorHandler,
		BodyLimit:    10 * 1024 * 1024, // multipart property images
	})

	app.Use(logger.New())

	corsCfg := cors.Config{}
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = strings.Join(cfg.Server.CORSOrigins, ",")
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	// 上传图片静态服务
	if store != nil {
		app.Static(infra.UploadPrefix, store.Dir())
	}

	return app
}
