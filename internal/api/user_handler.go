package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
)

// UserHandler 处理账号管理相关的 HTTP 请求 (管理端)
type UserHandler struct {
	accounts domain.AccountService
}

// NewUserHandler 创建账号管理处理器
func NewUserHandler(accounts domain.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// AdminRegisterRequest 管理员创建账号请求
type AdminRegisterRequest struct {
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// UserUpdateRequest 更新用户名/邮箱请求
type UserUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// List 列出所有账号
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.accounts.List(context.Background())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(users)
}

// Create 管理员创建账号 (employee/manager/author/holder)，直接 approved
// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	user, err := h.accounts.RegisterByAdmin(context.Background(), domain.AdminRegisterRequest{
		Name:        req.Name,
		Password:    req.Password,
		Email:       req.Email,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// GetByName 按用户名查询账号信息
// GET /api/users/name/:name
func (h *UserHandler) GetByName(c *fiber.Ctx) error {
	user, err := h.accounts.GetByName(context.Background(), c.Params("name"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "user": user})
}

// Update 更新用户名/邮箱
// PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid user ID format"})
	}

	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	user, err := h.accounts.Update(context.Background(), id, req.Name, req.Email)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User information updated successfully",
		"user":    user,
	})
}

// Delete 删除账号
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid user ID format"})
	}

	if err := h.accounts.Delete(context.Background(), id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "User deleted successfully"})
}

// Approve 审批账号 pending -> approved
// POST /api/users/:id/approve
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid user ID format"})
	}

	if err := h.accounts.Approve(context.Background(), id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "User approved successfully"})
}

// parseID 解析路径中的数字 id
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
