package model

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents a land-office staff member.
type Employee struct {
	gorm.Model
	Name             string    `gorm:"uniqueIndex;not null" json:"name"`
	Age              int       `gorm:"not null" json:"age"`
	Address          string    `gorm:"not null" json:"address"`
	SchoolLevel      string    `gorm:"not null" json:"schoolLevel"`
	Gender           string    `gorm:"not null" json:"gender"`
	RegistrationDate time.Time `gorm:"not null" json:"registrationDate"`
}

// BeforeCreate stamps the registration date when the caller left it empty.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.RegistrationDate.IsZero() {
		e.RegistrationDate = time.Now()
	}
	return nil
}
