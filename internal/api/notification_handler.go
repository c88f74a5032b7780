package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// NotificationHandler 处理注册通知相关的 HTTP 请求
type NotificationHandler struct {
	notifications domain.NotificationService
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notifications domain.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// CreateNotificationRequest 新建通知请求
type CreateNotificationRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// ReviewNotificationRequest 审批通知请求
type ReviewNotificationRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

// RejectionEmailRequest 拒绝邮件请求
type RejectionEmailRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ListPending 列出待审批的通知
// GET /api/notifications
func (h *NotificationHandler) ListPending(c *fiber.Ctx) error {
	notifications, err := h.notifications.ListPending(context.Background())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(notifications)
}

// Create 追加一条注册事件
// POST /api/notifications
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	notification, err := h.notifications.Create(context.Background(), req.Type, req.Name, req.Email, req.UserType, model.NotificationPending)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Notification created successfully",
		"data":    notification,
	})
}

// Review 管理员标记 approved/rejected
// PUT /api/notifications/:id
func (h *NotificationHandler) Review(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid notification ID format"})
	}

	var req ReviewNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	notification, err := h.notifications.Review(context.Background(), id, req.Status, req.RejectionReason)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Notification " + req.Status + " successfully",
		"data":    notification,
	})
}

// SendRejectionEmail 拒绝邮件占位实现，仅记录日志。
// 邮件发送属于外部协作方，这里只确认收到请求。
// POST /api/notifications/rejection-email
func (h *NotificationHandler) SendRejectionEmail(c *fiber.Ctx) error {
	var req RejectionEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	log.Printf("Rejection email to: %s, message: %s", req.Email, req.Message)
	return c.JSON(fiber.Map{"status": "success", "message": "Rejection email sent successfully"})
}
