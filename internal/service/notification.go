package service

import (
	"context"
	"log"

	"gorm.io/gorm"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// NotificationServiceImpl 实现 domain.NotificationService 接口
type NotificationServiceImpl struct {
	db       *gorm.DB
	notifier domain.Notifier // optional, live admin feed
}

// NewNotificationService 创建通知服务
func NewNotificationService(db *gorm.DB, notifier domain.Notifier) *NotificationServiceImpl {
	return &NotificationServiceImpl{db: db, notifier: notifier}
}

// Create 追加一条注册事件，并推送给在线的管理端。
func (s *NotificationServiceImpl) Create(ctx context.Context, typ, name, email, userType, status string) (*model.SignupNotification, error) {
	if typ == "" || name == "" || email == "" || userType == "" {
		return nil, domain.NewBadRequestError("Type, name, email, and userType are required")
	}
	if status == "" {
		status = model.NotificationPending
	}

	notification := model.SignupNotification{
		Type:     typ,
		Name:     name,
		Email:    email,
		UserType: userType,
		Status:   status,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, domain.NewInternalError("failed to create notification", err)
	}

	if s.notifier != nil {
		s.notifier.BroadcastToAll(notification)
	}
	return &notification, nil
}

// ListPending 仅返回待审批的通知。
func (s *NotificationServiceImpl) ListPending(ctx context.Context) ([]model.SignupNotification, error) {
	var notifications []model.SignupNotification
	if err := s.db.Where("status = ?", model.NotificationPending).Find(&notifications).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch notifications", err)
	}
	return notifications, nil
}

// Review 管理员标记 approved/rejected。
func (s *NotificationServiceImpl) Review(ctx context.Context, id uint, status, rejectionReason string) (*model.SignupNotification, error) {
	if status != model.NotificationApproved && status != model.NotificationRejected {
		return nil, domain.NewBadRequestError("Status must be approved or rejected")
	}

	var notification model.SignupNotification
	if err := s.db.First(&notification, id).Error; err != nil {
		return nil, domain.NewNotFoundError("Notification not found")
	}

	notification.Status = status
	notification.RejectionReason = rejectionReason
	if err := s.db.Save(&notification).Error; err != nil {
		return nil, domain.NewInternalError("failed to update notification", err)
	}

	if s.notifier != nil {
		s.notifier.BroadcastToAll(notification)
	}

	log.Printf("NotificationService: notification %d marked %s", notification.ID, status)
	return &notification, nil
}
