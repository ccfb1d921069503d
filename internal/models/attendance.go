package models

import "time"

// Attendance is logically unique per (student_id, date). The unique index is
// the authority; bulk saves upsert against it instead of pre-checking.
type Attendance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	Date           string    `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date;index"`
	Present        bool      `json:"present" gorm:"not null"`
	AttendanceTime string    `json:"attendance_time" gorm:"type:time;not null"`
	MarkedBy       string    `json:"marked_by" gorm:"size:100;not null;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}
