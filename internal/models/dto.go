package models

// APIResponse is the uniform envelope every endpoint returns. Count is only
// populated on list reads.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AttendanceRecord is an attendance row joined to the student directory,
// the shape every attendance read returns.
type AttendanceRecord struct {
	Attendance
	StudentName string `json:"student_name"`
	ClassID     string `json:"class_id"`
}

// StudentWithAge decorates a student row with the age derived from birth_date.
type StudentWithAge struct {
	Student
	Age int `json:"age"`
}

// PaymentWithStudent is a payment row joined to the student directory.
type PaymentWithStudent struct {
	Payment
	StudentName string `json:"student_name"`
}
