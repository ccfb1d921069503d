package models

type StudentGender string

const (
	GenderMale   StudentGender = "male"
	GenderFemale StudentGender = "female"
)

type Student struct {
	StudentID   uint          `json:"student_id" gorm:"primaryKey;column:student_id"`
	StudentName string        `json:"student_name" gorm:"not null;size:100;index"`
	BirthDate   string        `json:"birth_date" gorm:"type:date;not null"`
	Gender      StudentGender `json:"gender" gorm:"type:varchar(10);not null"`
	ClassID     string        `json:"class_id" gorm:"size:50;not null;index"`
}

func (Student) TableName() string {
	return "student"
}
