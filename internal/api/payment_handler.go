package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
)

// PaymentHandler 处理地税支付相关的 HTTP 请求
type PaymentHandler struct {
	payments domain.PaymentService
}

// NewPaymentHandler 创建支付处理器
func NewPaymentHandler(payments domain.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentRequest 发起支付请求
type CreatePaymentRequest struct {
	Username  string  `json:"username"`
	LandArea  float64 `json:"landArea"`
	TaxAmount float64 `json:"taxAmount"`
	Currency  string  `json:"currency"`
}

// Create 在网关发起地税支付并返回跳转链接
// POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	approvalURL, payment, err := h.payments.Create(context.Background(), req.Username, req.LandArea, req.TaxAmount, req.Currency)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":      "success",
		"approvalUrl": approvalURL,
		"paymentId":   payment.PaymentID,
	})
}
