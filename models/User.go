package models

import "gorm.io/gorm"

// User is the staff identity behind admin tokens and audit attribution.
// Credential storage and login live in an external identity service.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Role      string `json:"role" gorm:"type:varchar(20);default:'staff'"` // staff, admin, super_admin
	IsActive  *bool  `json:"isActive" gorm:"default:true"`
}
