package model

import "gorm.io/gorm"

// 通知审批状态
const (
	NotificationPending  = "pending_approval"
	NotificationApproved = "approved"
	NotificationRejected = "rejected"
)

// SignupNotification is an append-only record of signup and
// approval/rejection events, reviewed from the admin dashboard.
type SignupNotification struct {
	gorm.Model
	Type            string `gorm:"not null" json:"type"` // e.g. "signup"
	Name            string `gorm:"not null" json:"name"`
	Email           string `gorm:"not null" json:"email"`
	UserType        string `gorm:"not null" json:"userType"`
	Status          string `gorm:"index;default:'pending_approval'" json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}
