package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
)

// EmployeeHandler 处理员工档案相关的 HTTP 请求
type EmployeeHandler struct {
	staff domain.StaffService
}

// NewEmployeeHandler 创建员工处理器
func NewEmployeeHandler(staff domain.StaffService) *EmployeeHandler {
	return &EmployeeHandler{staff: staff}
}

// EmployeeRequest 员工档案请求
type EmployeeRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Address     string `json:"address"`
	SchoolLevel string `json:"schoolLevel"`
	Gender      string `json:"gender"`
}

// List 列出所有员工
// GET /api/employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.staff.ListEmployees(context.Background())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(employees)
}

// Create 登记员工
// POST /api/employees
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	employee, err := h.staff.CreateEmployee(context.Background(), domain.EmployeeFields{
		Name:        req.Name,
		Age:         req.Age,
		Address:     req.Address,
		SchoolLevel: req.SchoolLevel,
		Gender:      req.Gender,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Employee registered successfully",
		"data":    employee,
	})
}

// Update 更新员工档案
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid employee ID format"})
	}

	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	employee, err := h.staff.UpdateEmployee(context.Background(), id, domain.EmployeeFields{
		Name:        req.Name,
		Age:         req.Age,
		Address:     req.Address,
		SchoolLevel: req.SchoolLevel,
		Gender:      req.Gender,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Employee updated successfully",
		"data":    employee,
	})
}

// Delete 删除员工
// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid employee ID format"})
	}

	if err := h.staff.DeleteEmployee(context.Background(), id); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Employee deleted successfully"})
}
