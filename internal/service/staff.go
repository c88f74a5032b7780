package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

// StaffServiceImpl 实现 domain.StaffService 接口
type StaffServiceImpl struct {
	db *gorm.DB
}

// NewStaffService 创建员工/任务服务
func NewStaffService(db *gorm.DB) *StaffServiceImpl {
	return &StaffServiceImpl{db: db}
}

// ListEmployees 列出所有员工
func (s *StaffServiceImpl) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.db.Find(&employees).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch employees", err)
	}
	return employees, nil
}

// CreateEmployee 登记员工，姓名唯一。
func (s *StaffServiceImpl) CreateEmployee(ctx context.Context, fields domain.EmployeeFields) (*model.Employee, error) {
	if fields.Name == "" || fields.Address == "" || fields.SchoolLevel == "" || fields.Gender == "" || fields.Age <= 0 {
		return nil, domain.NewBadRequestError("All fields are required")
	}

	var existing model.Employee
	err := s.db.Where("name = ?", fields.Name).First(&existing).Error
	if err == nil {
		return nil, domain.NewConflictError("Employee already exists with this name")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewInternalError("failed to look up employee", err)
	}

	employee := model.Employee{
		Name:        fields.Name,
		Age:         fields.Age,
		Address:     fields.Address,
		SchoolLevel: fields.SchoolLevel,
		Gender:      fields.Gender,
	}
	if err := s.db.Create(&employee).Error; err != nil {
		return nil, domain.NewInternalError("failed to register employee", err)
	}

	log.Printf("StaffService: employee registered: %s (id=%d)", employee.Name, employee.ID)
	return &employee, nil
}

// UpdateEmployee 更新员工档案
func (s *StaffServiceImpl) UpdateEmployee(ctx context.Context, id uint, fields domain.EmployeeFields) (*model.Employee, error) {
	if fields.Name == "" || fields.Address == "" || fields.SchoolLevel == "" || fields.Gender == "" || fields.Age <= 0 {
		return nil, domain.NewBadRequestError("All fields are required")
	}

	var employee model.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return nil, domain.NewNotFoundError("Employee not found")
	}

	employee.Name = fields.Name
	employee.Age = fields.Age
	employee.Address = fields.Address
	employee.SchoolLevel = fields.SchoolLevel
	employee.Gender = fields.Gender
	if err := s.db.Save(&employee).Error; err != nil {
		return nil, domain.NewInternalError("failed to update employee", err)
	}
	return &employee, nil
}

// DeleteEmployee 删除员工
func (s *StaffServiceImpl) DeleteEmployee(ctx context.Context, id uint) error {
	result := s.db.Delete(&model.Employee{}, id)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Employee not found")
	}
	return nil
}

// ListTasks 列出任务，可按状态过滤。
func (s *StaffServiceImpl) ListTasks(ctx context.Context, status string) ([]model.Task, error) {
	query := s.db.Where("category IN ?", model.TaskCategories)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch tasks", err)
	}
	return tasks, nil
}

// AddTask 新建任务，类目必须是五个固定类目之一。
func (s *StaffServiceImpl) AddTask(ctx context.Context, taskName, category string, salary float64) (*model.Task, error) {
	if taskName == "" || category == "" {
		return nil, domain.NewBadRequestError("Task name, category, and salary are required")
	}
	if !model.ValidTaskCategory(category) {
		return nil, domain.NewBadRequestError("Invalid task category")
	}
	if salary < 0 {
		return nil, domain.NewBadRequestError("Salary cannot be negative")
	}

	task := model.Task{
		TaskName: taskName,
		Category: category,
		Salary:   salary,
		Status:   model.TaskStatusUnassigned,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, domain.NewInternalError("failed to add task", err)
	}
	return &task, nil
}

// AssignTask 把任务分派给一名员工。只能从 unassigned 状态分派。
func (s *StaffServiceImpl) AssignTask(ctx context.Context, employeeID, taskID uint) error {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return domain.NewNotFoundError("Task not found")
	}
	if task.Status != model.TaskStatusUnassigned {
		return domain.NewBadRequestError("Task is already assigned or completed")
	}

	var employee model.Employee
	if err := s.db.First(&employee, employeeID).Error; err != nil {
		return domain.NewNotFoundError("Employee not found")
	}

	task.EmployeeID = &employee.ID
	task.Status = model.TaskStatusAssigned
	if err := s.db.Save(&task).Error; err != nil {
		return domain.NewInternalError("failed to assign task", err)
	}

	log.Printf("StaffService: task %d assigned to employee %d", task.ID, employee.ID)
	return nil
}
