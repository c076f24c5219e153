package models

import (
	"gorm.io/gorm"
)

const (
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleCleaner      = "cleaner"
)

type Staff struct {
	gorm.Model

	FullName string `json:"fullName"`
	Username string `gorm:"uniqueIndex;type:varchar(120)" json:"username"`
	Password string `json:"-"`
	Role     string `gorm:"type:varchar(32)" json:"role"`
}
