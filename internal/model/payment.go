package model

import "gorm.io/gorm"

// 支付状态。本服务只写入 pending，后续状态由网关侧回调驱动（未实现）。
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Payment records a land-tax payment initiated at the gateway.
type Payment struct {
	gorm.Model
	Username      string  `gorm:"index;not null" json:"username"`
	LandArea      float64 `gorm:"not null" json:"landArea"`
	TaxAmount     float64 `gorm:"not null" json:"taxAmount"`
	Currency      string  `gorm:"not null;default:'USD'" json:"currency"`
	PaymentID     string  `gorm:"uniqueIndex;not null" json:"paymentId"` // gateway-issued id
	Status        string  `gorm:"index;default:'pending'" json:"status"`
	TransactionID string  `json:"transactionId,omitempty"`
}
