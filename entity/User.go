package entity

import "gorm.io/gorm"

const (
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // bcrypt hash
	Name     string `json:"name"`
	Role     string `gorm:"not null;default:seller" json:"role"`
}
