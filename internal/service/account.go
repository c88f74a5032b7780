package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// AccountServiceImpl 实现 domain.AccountService 接口
type AccountServiceImpl struct {
	db            *gorm.DB
	jwtSecret     []byte
	verifier      domain.TokenVerifier
	notifications domain.NotificationService
}

// NewAccountService 创建账号服务
func NewAccountService(
	db *gorm.DB,
	jwtSecret string,
	verifier domain.TokenVerifier,
	notifications domain.NotificationService,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		db:            db,
		jwtSecret:     []byte(jwtSecret),
		verifier:      verifier,
		notifications: notifications,
	}
}

// Register 自助注册。新账号始终为 pending，等待管理端审批。
func (s *AccountServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Password == "" || req.Email == "" {
		return nil, domain.NewBadRequestError("Name, password, and email are required")
	}

	if err := s.checkTaken(req.Name, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleHolder,
		Status:   model.StatusPending,
		Area:     req.Area,
		Location: req.Location,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}

	// 写注册通知，供管理端审批
	if s.notifications != nil {
		if _, err := s.notifications.Create(ctx, "signup", user.Name, user.Email, model.RoleHolder, model.NotificationPending); err != nil {
			log.Printf("AccountService: failed to record signup notification: %v", err)
		}
	}

	log.Printf("AccountService: user registered: %s (id=%d)", user.Name, user.ID)
	return &user, nil
}

// RegisterByAdmin 管理员创建账号，直接 approved。
func (s *AccountServiceImpl) RegisterByAdmin(ctx context.Context, req domain.AdminRegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Password == "" || req.Email == "" || req.Role == "" {
		return nil, domain.NewBadRequestError("Name, password, email, and role are required")
	}
	if !model.ValidRole(req.Role) {
		return nil, domain.NewBadRequestError("Invalid role")
	}

	if err := s.checkTaken(req.Name, req.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := model.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        req.Role,
		Permissions: req.Permissions,
		Status:      model.StatusApproved,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}
	return &user, nil
}

// Login 用户名+密码登录。未审批的账号一律 403。
func (s *AccountServiceImpl) Login(ctx context.Context, name, password string) (*domain.LoginResult, error) {
	if name == "" || password == "" {
		return nil, domain.NewBadRequestError("Username and password are required")
	}

	var user model.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	if user.Status != model.StatusApproved {
		return nil, domain.NewForbiddenError(fmt.Sprintf("Account is %s. Please contact the administrator.", user.Status))
	}

	token, err := s.signToken(&user)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign token", err)
	}

	log.Printf("AccountService: login successful for %s (role=%s)", user.Name, user.Role)
	return &domain.LoginResult{Token: token, User: &user}, nil
}

// GoogleLogin 校验 Google ID token，按邮箱查找或创建账号（自动 approved）。
func (s *AccountServiceImpl) GoogleLogin(ctx context.Context, idToken string) (*domain.LoginResult, error) {
	if idToken == "" {
		return nil, domain.NewBadRequestError("idToken is required")
	}
	if s.verifier == nil {
		return nil, domain.NewInternalError("token verifier not configured", nil)
	}

	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("Authentication failed")
	}

	var user model.User
	err = s.db.Where("email = ?", claims.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := claims.Name
		if name == "" {
			name = strings.Split(claims.Email, "@")[0]
		}
		hashed, herr := bcrypt.GenerateFromPassword([]byte("google_default_"+uuid.NewString()), bcrypt.DefaultCost)
		if herr != nil {
			return nil, domain.NewInternalError("failed to hash password", herr)
		}
		user = model.User{
			Name:           name,
			Email:          claims.Email,
			Password:       string(hashed),
			Role:           model.RoleHolder,
			Status:         model.StatusApproved,
			GoogleID:       claims.Subject,
			ProfilePicture: claims.Picture,
		}
		if cerr := s.db.Create(&user).Error; cerr != nil {
			return nil, domain.NewInternalError("failed to create user", cerr)
		}
		log.Printf("AccountService: new user created from Google login: %s", user.Email)
	} else if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	if user.Status != model.StatusApproved {
		return nil, domain.NewForbiddenError(fmt.Sprintf("Account is %s. Please contact the administrator.", user.Status))
	}

	token, err := s.signToken(&user)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign token", err)
	}
	return &domain.LoginResult{Token: token, User: &user}, nil
}

// Approve 审批账号 pending -> approved，并同步标记对应的注册通知。
func (s *AccountServiceImpl) Approve(ctx context.Context, userID uint) error {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return domain.NewNotFoundError("User not found")
	}
	if user.Status == model.StatusApproved {
		return domain.NewBadRequestError("User is already approved")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("status", model.StatusApproved).Error; err != nil {
			return domain.NewInternalError("failed to approve user", err)
		}
		// 同邮箱的待审批通知一并置为 approved
		if err := tx.Model(&model.SignupNotification{}).
			Where("email = ? AND status = ?", user.Email, model.NotificationPending).
			Update("status", model.NotificationApproved).Error; err != nil {
			return domain.NewInternalError("failed to update signup notification", err)
		}
		return nil
	})
}

// GetByName 按用户名查询
func (s *AccountServiceImpl) GetByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	return &user, nil
}

// List 列出所有账号
func (s *AccountServiceImpl) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch users", err)
	}
	return users, nil
}

// Update 更新用户名/邮箱
func (s *AccountServiceImpl) Update(ctx context.Context, userID uint, name, email string) (*model.User, error) {
	if name == "" || email == "" {
		return nil, domain.NewBadRequestError("Name and email are required")
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	var existing model.User
	if err := s.db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error; err == nil {
		return nil, domain.NewConflictError("Email already in use by another user")
	}

	user.Name = name
	user.Email = email
	if err := s.db.Save(&user).Error; err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}
	return &user, nil
}

// Delete 删除账号
func (s *AccountServiceImpl) Delete(ctx context.Context, userID uint) error {
	result := s.db.Delete(&model.User{}, userID)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User not found")
	}
	return nil
}

// checkTaken 用户名/邮箱唯一性检查，冲突时区分提示。
func (s *AccountServiceImpl) checkTaken(name, email string, excludeID uint) error {
	var existing model.User
	err := s.db.Where("(name = ? OR email = ?) AND id <> ?", name, email, excludeID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return domain.NewInternalError("failed to look up user", err)
	}
	if existing.Name == name {
		return domain.NewConflictError("Username already exists")
	}
	return domain.NewConflictError("Email already registered")
}

// signToken 签发 72 小时有效期的 HS256 JWT。
func (s *AccountServiceImpl) signToken(user *model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
