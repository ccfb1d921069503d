package models

import "gorm.io/datatypes"

// AuthPrivilege maps a role to the capability strings that gate front-end
// navigation. Privilege is a JSON array of strings.
type AuthPrivilege struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	RoleName  UserRole       `json:"role_name" gorm:"uniqueIndex;type:varchar(10);not null"`
	Privilege datatypes.JSON `json:"privilege" gorm:"not null"`
}

func (AuthPrivilege) TableName() string {
	return "auth_privilege"
}
