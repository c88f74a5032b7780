package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// PaymentServiceImpl 实现 domain.PaymentService 接口
type PaymentServiceImpl struct {
	db      *gorm.DB
	gateway domain.PaymentGateway
}

// NewPaymentService 创建支付服务
func NewPaymentService(db *gorm.DB, gateway domain.PaymentGateway) *PaymentServiceImpl {
	return &PaymentServiceImpl{db: db, gateway: gateway}
}

// Create 在网关创建一笔 "Land Tax Payment" sale，落库 pending 记录并返回
// 跳转链接。本服务不处理网关回调，状态停留在 pending。
func (s *PaymentServiceImpl) Create(ctx context.Context, username string, landArea, taxAmount float64, currency string) (string, *model.Payment, error) {
	if username == "" || currency == "" || landArea <= 0 || taxAmount <= 0 {
		return "", nil, domain.NewBadRequestError("Missing required payment information")
	}
	if s.gateway == nil {
		return "", nil, domain.NewInternalError("payment gateway not configured", nil)
	}

	description := fmt.Sprintf("Land tax payment for area: %v square meters", landArea)
	sale, err := s.gateway.CreateSale(ctx, taxAmount, currency, description)
	if err != nil {
		return "", nil, domain.NewInternalError("payment gateway error", err)
	}

	payment := model.Payment{
		Username:  username,
		LandArea:  landArea,
		TaxAmount: taxAmount,
		Currency:  currency,
		PaymentID: sale.ID,
		Status:    model.PaymentStatusPending,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return "", nil, domain.NewInternalError("Failed to save payment information", err)
	}

	log.Printf("PaymentService: payment %s recorded for %s (%.2f %s)", sale.ID, username, taxAmount, currency)
	return sale.ApprovalURL, &payment, nil
}
