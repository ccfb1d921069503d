package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
)

// ===== FILTERS =====

// StudentFilters narrows student listings
type StudentFilters struct {
	ClassID *string
	Gender  *models.StudentGender
}

// PaymentFilters narrows payment listings
type PaymentFilters struct {
	StudentID   *uint
	ServiceType *string
	StartDate   *string
	EndDate     *string
}

// ===== AGGREGATE RESULT SHAPES =====

// OverallStats summarizes the whole attendance register
type OverallStats struct {
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	AbsentCount    int64   `json:"absent_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// DateStat is per-day attendance aggregation
type DateStat struct {
	Date           string  `json:"date"`
	TotalStudents  int64   `json:"total_students"`
	PresentCount   int64   `json:"present_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// TeacherStat aggregates register activity per marking teacher
type TeacherStat struct {
	MarkedBy     string `json:"marked_by"`
	DaysMarked   int64  `json:"days_marked"`
	TotalRecords int64  `json:"total_records"`
	PresentCount int64  `json:"present_count"`
}

// ClassStat aggregates attendance per class
type ClassStat struct {
	ClassID        string  `json:"class_id"`
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// AttendanceSummary bundles the register-wide report
type AttendanceSummary struct {
	Overall   OverallStats  `json:"overall"`
	Daily     []DateStat    `json:"daily"`
	ByTeacher []TeacherStat `json:"by_teacher"`
	ByClass   []ClassStat   `json:"by_class"`
}

// StudentAttendanceStats is the per-student attendance profile
type StudentAttendanceStats struct {
	StudentID      uint    `json:"student_id"`
	StudentName    string  `json:"student_name"`
	TotalDays      int64   `json:"total_days"`
	PresentDays    int64   `json:"present_days"`
	AbsentDays     int64   `json:"absent_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// RankingEntry is one row of the attendance leaderboard
type RankingEntry struct {
	StudentID      uint    `json:"student_id"`
	StudentName    string  `json:"student_name"`
	ClassID        string  `json:"class_id"`
	TotalDays      int64   `json:"total_days"`
	PresentDays    int64   `json:"present_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// MonthlyTrend aggregates attendance per calendar month
type MonthlyTrend struct {
	Month          string  `json:"month"`
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// ServiceTypeStat aggregates payments per service type
type ServiceTypeStat struct {
	ServiceType string  `json:"service_type"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// PaymentStats summarizes the payment ledger
type PaymentStats struct {
	TotalPayments int64             `json:"total_payments"`
	TotalAmount   float64           `json:"total_amount"`
	AverageAmount float64           `json:"average_amount"`
	ByServiceType []ServiceTypeStat `json:"by_service_type"`
}

// ===== ENTITY REPOSITORIES =====

// StudentRepository handles student roster persistence
type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	GetAll(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)

	GetByClass(ctx context.Context, tx *gorm.DB, classID string) ([]*models.Student, error)
	GetByGender(ctx context.Context, tx *gorm.DB, gender models.StudentGender) ([]*models.Student, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

// TeacherRepository handles teacher roster persistence
type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Teacher, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*models.Teacher, error)
	Update(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)

	GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Teacher, error)
	GetByClass(ctx context.Context, tx *gorm.DB, className string) ([]*models.Teacher, error)
	GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.Teacher, error)
	ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error)
}

// UserRepository handles login account persistence
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)

	GetByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)
}

// PaymentRepository handles payment ledger persistence
type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PaymentWithStudent, error)
	GetAll(ctx context.Context, tx *gorm.DB, filters PaymentFilters) ([]*models.PaymentWithStudent, error)
	Update(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)

	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.PaymentWithStudent, error)
	GetStats(ctx context.Context, tx *gorm.DB) (*PaymentStats, error)
}

// AttendanceRepository handles the daily attendance register
type AttendanceRepository interface {
	// Upsert inserts the record or, when a row for the same student and
	// date already exists, overwrites its mutable columns.
	Upsert(ctx context.Context, tx *gorm.DB, record *models.Attendance) error

	// Reads taking an optional classID or date bound treat "" as unfiltered.
	GetByDate(ctx context.Context, tx *gorm.DB, date, classID string) ([]*models.AttendanceRecord, error)
	GetByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) ([]*models.AttendanceRecord, error)
	GetByTeacherDateRange(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetStudentHistory(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetHistory(ctx context.Context, tx *gorm.DB, markedBy string, days int) ([]*models.AttendanceRecord, error)

	CountByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error)
	DeleteByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error)

	// InvalidateCache drops cached register entries for a teacher and
	// date. Call it after the writing transaction has committed.
	InvalidateCache(ctx context.Context, markedBy, date string)

	GetDates(ctx context.Context, tx *gorm.DB, markedBy string) ([]string, error)
	GetSummary(ctx context.Context, tx *gorm.DB, startDate, endDate string) (*AttendanceSummary, error)
	GetTeacherStats(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]DateStat, error)
	GetStudentStats(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) (*StudentAttendanceStats, error)
	GetRankings(ctx context.Context, tx *gorm.DB, startDate, endDate string, limit int) ([]RankingEntry, error)
	GetMonthlyTrends(ctx context.Context, tx *gorm.DB, year int) ([]MonthlyTrend, error)
	GetClassComparison(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]ClassStat, error)
}

// PrivilegeRepository handles role privilege mappings
type PrivilegeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AuthPrivilege, error)
	GetByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) (*models.AuthPrivilege, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*models.AuthPrivilege, error)
	Update(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
}
