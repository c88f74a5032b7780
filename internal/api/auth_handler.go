package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// AuthHandler 处理注册/登录相关的 HTTP 请求
type AuthHandler struct {
	accounts domain.AccountService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(accounts domain.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterRequest 自助注册请求
type RegisterRequest struct {
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Area     float64 `json:"area"`
	Location string  `json:"location"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// GoogleLoginRequest Google 登录请求
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// Register 自助注册 (holder)
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	user, err := h.accounts.Register(context.Background(), domain.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
		Email:    req.Email,
		Area:     req.Area,
		Location: req.Location,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully. Your account is pending approval.",
		"userId":  user.ID,
	})
}

// Login 用户名+密码登录
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	result, err := h.accounts.Login(context.Background(), req.Name, req.Password)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// GoogleLogin Google ID token 登录
// POST /auth/google
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	result, err := h.accounts.GoogleLogin(context.Background(), req.IDToken)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Google login successful",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

func userPayload(user *model.User) fiber.Map {
	return fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"role":        user.Role,
		"permissions": user.Permissions,
		"area":        user.Area,
		"location":    user.Location,
	}
}
