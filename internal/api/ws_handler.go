package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/infra"
)

// InitWebsocket 注册管理端通知推送的 WebSocket 路由
func InitWebsocket(app *fiber.App, hub *infra.WsManager) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// GET /ws/notifications
	app.Get("/ws/notifications", websocket.New(func(conn *websocket.Conn) {
		hub.Register <- conn
		defer func() {
			hub.Unregister <- conn
		}()

		// 推送方向为单向，读循环只用于感知连接关闭
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
