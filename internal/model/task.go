package model

import "gorm.io/gorm"

// 任务状态机: unassigned -> assigned -> completed
const (
	TaskStatusUnassigned = "unassigned"
	TaskStatusAssigned   = "assigned"
	TaskStatusCompleted  = "completed"
)

// TaskCategories are the five fixed land-administration categories.
var TaskCategories = []string{
	"Land Surveying",
	"Title Registration",
	"Property Inspection",
	"Land Valuation",
	"Dispute Resolution",
}

// ValidTaskCategory reports whether category is one of TaskCategories.
func ValidTaskCategory(category string) bool {
	for _, c := range TaskCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Task represents a unit of land-administration work.
// A task is assigned to exactly one employee and only from the
// unassigned state.
type Task struct {
	gorm.Model
	TaskName   string  `gorm:"not null" json:"taskName"`
	Category   string  `gorm:"not null" json:"category"`
	Salary     float64 `gorm:"not null" json:"salary"`
	Status     string  `gorm:"index;default:'unassigned'" json:"status"`
	EmployeeID *uint   `gorm:"index" json:"employeeId"`
}
