package validator

// Request DTOs for every resource. Create requests demand the full field
// set; update requests take pointers and honor partial field sets.

// StudentCreateRequest represents the request structure for registering students
type StudentCreateRequest struct {
	StudentName string `json:"student_name" validate:"required,person_name"`
	BirthDate   string `json:"birth_date" validate:"required,date_format,student_birth_date"`
	Gender      string `json:"gender" validate:"required,student_gender"`
	ClassID     string `json:"class_id" validate:"required,max=50"`
}

// StudentUpdateRequest represents the request structure for updating students
type StudentUpdateRequest struct {
	StudentName *string `json:"student_name" validate:"omitempty,person_name"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,date_format,student_birth_date"`
	Gender      *string `json:"gender" validate:"omitempty,student_gender"`
	ClassID     *string `json:"class_id" validate:"omitempty,max=50"`
}

// TeacherCreateRequest represents the request structure for registering teachers
type TeacherCreateRequest struct {
	TeacherName string `json:"teacher_name" validate:"required,person_name"`
	ClassName   string `json:"class_name" validate:"required,class_name"`
	Gender      string `json:"gender" validate:"required,teacher_gender"`
}

// TeacherUpdateRequest represents the request structure for updating teachers
type TeacherUpdateRequest struct {
	TeacherName *string `json:"teacher_name" validate:"omitempty,person_name"`
	ClassName   *string `json:"class_name" validate:"omitempty,class_name"`
	Gender      *string `json:"gender" validate:"omitempty,teacher_gender"`
}

// UserCreateRequest represents the request structure for creating login users
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,username_format"`
	Password string `json:"password" validate:"required,password_strength"`
	Role     string `json:"role" validate:"required,user_role"`
}

// UserUpdateRequest represents the request structure for updating login users
type UserUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,username_format"`
	Password *string `json:"password" validate:"omitempty,password_strength"`
	Role     *string `json:"role" validate:"omitempty,user_role"`
}

// LoginRequest carries credentials for authentication
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest requires the current password before replacing it
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password_strength"`
}

// PaymentCreateRequest represents the request structure for recording payments
type PaymentCreateRequest struct {
	StudentID   uint    `json:"student_id" validate:"required"`
	ServiceType string  `json:"service_type" validate:"required,service_type"`
	Amount      float64 `json:"amount" validate:"required,payment_amount"`
	PaymentDate string  `json:"payment_date" validate:"required,date_format"`
	PaymentTime string  `json:"payment_time" validate:"required,time_format"`
}

// PaymentUpdateRequest represents the request structure for updating payments
type PaymentUpdateRequest struct {
	ServiceType *string  `json:"service_type" validate:"omitempty,service_type"`
	Amount      *float64 `json:"amount" validate:"omitempty,payment_amount"`
	PaymentDate *string  `json:"payment_date" validate:"omitempty,date_format"`
	PaymentTime *string  `json:"payment_time" validate:"omitempty,time_format"`
}

// AttendanceRecordRequest is one roster entry inside a bulk save
type AttendanceRecordRequest struct {
	StudentID      uint   `json:"student_id" validate:"required"`
	Date           string `json:"date" validate:"required,date_format"`
	Present        bool   `json:"present"`
	AttendanceTime string `json:"attendance_time" validate:"required,time_format"`
	MarkedBy       string `json:"marked_by" validate:"required,person_name"`
}

// PrivilegeCreateRequest maps a role to its capability strings
type PrivilegeCreateRequest struct {
	RoleName  string   `json:"role_name" validate:"required,user_role"`
	Privilege []string `json:"privilege" validate:"required,min=1,dive,required"`
}

// PrivilegeUpdateRequest honors partial field sets
type PrivilegeUpdateRequest struct {
	RoleName  *string  `json:"role_name" validate:"omitempty,user_role"`
	Privilege []string `json:"privilege" validate:"omitempty,min=1,dive,required"`
}
