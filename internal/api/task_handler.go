package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"landadmin.com/internal/domain"
)

// TaskHandler 处理任务相关的 HTTP 请求
type TaskHandler struct {
	staff domain.StaffService
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(staff domain.StaffService) *TaskHandler {
	return &TaskHandler{staff: staff}
}

// AddTaskRequest 新建任务请求
type AddTaskRequest struct {
	TaskName string  `json:"taskName"`
	Category string  `json:"category"`
	Salary   float64 `json:"salary"`
}

// AssignTaskRequest 分派任务请求
type AssignTaskRequest struct {
	EmployeeID uint `json:"employeeId"`
	TaskID     uint `json:"taskId"`
}

// List 列出任务，可按状态过滤
// GET /api/tasks?status=
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.staff.ListTasks(context.Background(), c.Query("status"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": tasks})
}

// Add 新建任务
// POST /api/tasks
func (h *TaskHandler) Add(c *fiber.Ctx) error {
	var req AddTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	task, err := h.staff.AddTask(context.Background(), req.TaskName, req.Category, req.Salary)
	if err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Task added successfully",
		"data":    task,
	})
}

// Assign 分派任务给员工
// POST /api/tasks/assign
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	var req AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.EmployeeID == 0 || req.TaskID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Employee ID and Task ID are required"})
	}

	if err := h.staff.AssignTask(context.Background(), req.EmployeeID, req.TaskID); err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Task assigned successfully"})
}
