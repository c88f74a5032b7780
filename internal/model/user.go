package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// 用户角色
const (
	RoleHolder   = "holder"
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAuthor   = "author"
)

// 账号审批状态
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleHolder, RoleEmployee, RoleManager, RoleAuthor:
		return true
	}
	return false
}

// StringList stores a list of permission strings as a JSON column.
// JSON keeps the column portable between postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

// User represents an account in the system
type User struct {
	gorm.Model
	Name           string     `gorm:"uniqueIndex;not null" json:"name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"not null" json:"-"` // bcrypt hash, ignored in JSON response
	Role           string     `gorm:"default:'holder'" json:"role"`
	Permissions    StringList `gorm:"type:text" json:"permissions"`
	Status         string     `gorm:"index;default:'pending'" json:"status"`
	Area           float64    `gorm:"default:0" json:"area"`
	Location       string     `gorm:"default:''" json:"location"`
	GoogleID       string     `gorm:"index" json:"googleId,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
}
