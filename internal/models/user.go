package models

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleTeacher UserRole = "Teacher"
	RoleStudent UserRole = "Student"
)

// User carries login credentials. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	UserID   uint     `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"type:varchar(10);not null;index"`
}

func (User) TableName() string {
	return "users"
}
