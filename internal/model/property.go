package model

import "gorm.io/gorm"

// 地产类型
const (
	PropertyTypeResidential  = "residential"
	PropertyTypeCommercial   = "commercial"
	PropertyTypeAgricultural = "agricultural"
)

// 地产状态
const (
	PropertyStatusAvailable = "available"
	PropertyStatusRented    = "rented"
	PropertyStatusSold      = "sold"
)

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeAgricultural:
		return true
	}
	return false
}

// Property 表示登记簿中的一条地产记录。
// Ownership is carried by Name: a land transfer overwrites it, there is no
// separate ownership-history table.
type Property struct {
	gorm.Model
	Name           string  `gorm:"index;not null" json:"name"`
	Location       string  `gorm:"index;not null" json:"location"`
	Area           float64 `gorm:"not null" json:"area"`
	PropertyType   string  `gorm:"not null;default:'residential'" json:"propertyType"`
	PropertyStatus string  `gorm:"default:'available'" json:"propertyStatus"`
	Price          float64 `gorm:"not null" json:"price"`
	Image          string  `json:"image"` // relative /Uploads path or absolute URL
}
