package models

// TeacherGender uses proper-cased values, matching the teacher table enum.
// Student genders are stored lowercase; the two tables predate this service.
type TeacherGender string

const (
	TeacherGenderMale   TeacherGender = "Male"
	TeacherGenderFemale TeacherGender = "Female"
)

type Teacher struct {
	TeacherID   uint          `json:"teacher_id" gorm:"primaryKey;column:teacher_id"`
	TeacherName string        `json:"teacher_name" gorm:"uniqueIndex;not null;size:100"`
	ClassName   string        `json:"class_name" gorm:"size:10;not null"`
	Gender      TeacherGender `json:"gender" gorm:"type:varchar(10);not null"`
	CreatedDate string        `json:"created_date" gorm:"type:date"`
	CreatedTime string        `json:"created_time" gorm:"type:time"`
}

func (Teacher) TableName() string {
	return "teacher"
}
