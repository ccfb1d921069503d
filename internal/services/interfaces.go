package services

import (
	"context"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type (
	StudentCreateRequest   = validator.StudentCreateRequest
	StudentUpdateRequest   = validator.StudentUpdateRequest
	TeacherCreateRequest   = validator.TeacherCreateRequest
	TeacherUpdateRequest   = validator.TeacherUpdateRequest
	UserCreateRequest      = validator.UserCreateRequest
	UserUpdateRequest      = validator.UserUpdateRequest
	LoginRequest           = validator.LoginRequest
	ChangePasswordRequest  = validator.ChangePasswordRequest
	PaymentCreateRequest   = validator.PaymentCreateRequest
	PaymentUpdateRequest   = validator.PaymentUpdateRequest
	AttendanceRecord       = validator.AttendanceRecordRequest
	PrivilegeCreateRequest = validator.PrivilegeCreateRequest
	PrivilegeUpdateRequest = validator.PrivilegeUpdateRequest
)

// ===== SERVICE INTERFACES =====

type StudentService interface {
	Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error)
	GetByID(ctx context.Context, id uint) (*models.StudentWithAge, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id uint, req *StudentUpdateRequest) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
	GetByClass(ctx context.Context, classID string) ([]*models.Student, error)
	GetByGender(ctx context.Context, gender string) ([]*models.Student, error)
}

type TeacherService interface {
	Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error)
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, id uint, req *TeacherUpdateRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id uint) error
	GetByName(ctx context.Context, name string) (*models.Teacher, error)
	GetByClass(ctx context.Context, className string) ([]*models.Teacher, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]*models.Teacher, error)
}

type UserService interface {
	Create(ctx context.Context, req *UserCreateRequest) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	GetByRole(ctx context.Context, role string) ([]*models.User, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error
}

type PaymentService interface {
	Create(ctx context.Context, req *PaymentCreateRequest) (*models.Payment, error)
	GetByID(ctx context.Context, id uint) (*models.PaymentWithStudent, error)
	GetAll(ctx context.Context) ([]*models.PaymentWithStudent, error)
	Update(ctx context.Context, id uint, req *PaymentUpdateRequest) (*models.Payment, error)
	Delete(ctx context.Context, id uint) error
	GetByStudent(ctx context.Context, studentID uint) ([]*models.PaymentWithStudent, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]*models.PaymentWithStudent, error)
	GetByServiceType(ctx context.Context, serviceType string) ([]*models.PaymentWithStudent, error)
	GetStats(ctx context.Context) (*repositories.PaymentStats, error)
}

// BulkSaveResult reports how many register rows a bulk save wrote
type BulkSaveResult struct {
	SavedCount int    `json:"saved_count"`
	MarkedBy   string `json:"marked_by"`
	Date       string `json:"date"`
}

type AttendanceService interface {
	SaveBulk(ctx context.Context, records []AttendanceRecord) (*BulkSaveResult, error)
	CheckExists(ctx context.Context, markedBy, date string) (bool, int64, error)
	DeleteByTeacherDate(ctx context.Context, markedBy, date string) (int64, error)

	// classID and the student history bounds are optional; "" means unfiltered.
	GetByDate(ctx context.Context, date, classID string) ([]*models.AttendanceRecord, error)
	GetByTeacherDate(ctx context.Context, markedBy, date string) ([]*models.AttendanceRecord, error)
	GetByTeacherDateRange(ctx context.Context, markedBy, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetAllByDateRange(ctx context.Context, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetStudentHistory(ctx context.Context, studentID uint, startDate, endDate string) ([]*models.AttendanceRecord, error)
	GetHistory(ctx context.Context, markedBy string) ([]*models.AttendanceRecord, error)

	GetDates(ctx context.Context, markedBy string) ([]string, error)
	GetSummary(ctx context.Context, startDate, endDate string) (*repositories.AttendanceSummary, error)
	GetTeacherStats(ctx context.Context, markedBy, startDate, endDate string) ([]repositories.DateStat, error)
	GetStudentStats(ctx context.Context, studentID uint, startDate, endDate string) (*repositories.StudentAttendanceStats, error)
	GetRankings(ctx context.Context, startDate, endDate string, limit int) ([]repositories.RankingEntry, error)
	GetMonthlyTrends(ctx context.Context, year int) ([]repositories.MonthlyTrend, error)
	GetClassComparison(ctx context.Context, startDate, endDate string) ([]repositories.ClassStat, error)
}

// PrivilegeCheckResult answers whether a role holds a privilege
type PrivilegeCheckResult struct {
	RoleName     string   `json:"role_name"`
	Privilege    string   `json:"privilege"`
	HasPrivilege bool     `json:"has_privilege"`
	Privileges   []string `json:"privileges"`
}

type PrivilegeService interface {
	Create(ctx context.Context, req *PrivilegeCreateRequest) (*models.AuthPrivilege, error)
	GetByID(ctx context.Context, id uint) (*models.AuthPrivilege, error)
	GetByRole(ctx context.Context, role string) (*models.AuthPrivilege, error)
	GetAll(ctx context.Context) ([]*models.AuthPrivilege, error)
	Update(ctx context.Context, id uint, req *PrivilegeUpdateRequest) (*models.AuthPrivilege, error)
	Delete(ctx context.Context, id uint) error
	CheckPrivilege(ctx context.Context, role, privilege string) (*PrivilegeCheckResult, error)
	GetAvailablePrivileges(ctx context.Context) []string
}

type ExportService interface {
	// ExportAttendance renders the register for a date range as an xlsx
	// workbook and returns the raw bytes.
	ExportAttendance(ctx context.Context, startDate, endDate string) ([]byte, error)
}

// ServiceManager wires every service behind one lifecycle
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Student() StudentService
	Teacher() TeacherService
	User() UserService
	Payment() PaymentService
	Attendance() AttendanceService
	Privilege() PrivilegeService
	Export() ExportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
