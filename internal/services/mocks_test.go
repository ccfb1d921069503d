package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

// MockRepository is an in-memory repositories.Repository for service tests.
type MockRepository struct {
	students   map[uint]*models.Student
	teachers   map[uint]*models.Teacher
	users      map[uint]*models.User
	payments   map[uint]*models.Payment
	attendance map[string]*models.Attendance
	privileges map[uint]*models.AuthPrivilege

	nextID     uint
	upsertErr  error
	studentErr error

	// invalidation bookkeeping for register cache ordering checks
	inTx            bool
	invalidations   []string
	invalidatedInTx bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		students:   make(map[uint]*models.Student),
		teachers:   make(map[uint]*models.Teacher),
		users:      make(map[uint]*models.User),
		payments:   make(map[uint]*models.Payment),
		attendance: make(map[string]*models.Attendance),
		privileges: make(map[uint]*models.AuthPrivilege),
		nextID:     1,
	}
}

func (m *MockRepository) id() uint {
	id := m.nextID
	m.nextID++
	return id
}

func attendanceKey(studentID uint, date string) string {
	return fmt.Sprintf("%d|%s", studentID, date)
}

func (m *MockRepository) Student() repositories.StudentRepository       { return &mockStudentRepo{m} }
func (m *MockRepository) Teacher() repositories.TeacherRepository       { return &mockTeacherRepo{m} }
func (m *MockRepository) User() repositories.UserRepository             { return &mockUserRepo{m} }
func (m *MockRepository) Payment() repositories.PaymentRepository       { return &mockPaymentRepo{m} }
func (m *MockRepository) Attendance() repositories.AttendanceRepository { return &mockAttendanceRepo{m} }
func (m *MockRepository) Privilege() repositories.PrivilegeRepository   { return &mockPrivilegeRepo{m} }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.inTx = true
	defer func() { m.inTx = false }()
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// ===== STUDENTS =====

type mockStudentRepo struct{ m *MockRepository }

func (r *mockStudentRepo) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	student.StudentID = r.m.id()
	r.m.students[student.StudentID] = student
	return nil
}

func (r *mockStudentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	student, ok := r.m.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (r *mockStudentRepo) GetAll(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.m.students {
		out = append(out, s)
	}
	return out, nil
}

func (r *mockStudentRepo) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	if _, ok := r.m.students[student.StudentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.students[student.StudentID] = student
	return nil
}

func (r *mockStudentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if _, ok := r.m.students[id]; !ok {
		return 0, nil
	}
	delete(r.m.students, id)
	return 1, nil
}

func (r *mockStudentRepo) GetByClass(ctx context.Context, tx *gorm.DB, classID string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.m.students {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *mockStudentRepo) GetByGender(ctx context.Context, tx *gorm.DB, gender models.StudentGender) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.m.students {
		if s.Gender == gender {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *mockStudentRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if r.m.studentErr != nil {
		return false, r.m.studentErr
	}
	_, ok := r.m.students[id]
	return ok, nil
}

func (r *mockStudentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(r.m.students)), nil
}

// ===== TEACHERS =====

type mockTeacherRepo struct{ m *MockRepository }

func (r *mockTeacherRepo) Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	for _, t := range r.m.teachers {
		if t.TeacherName == teacher.TeacherName {
			return gorm.ErrDuplicatedKey
		}
	}
	teacher.TeacherID = r.m.id()
	r.m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (r *mockTeacherRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Teacher, error) {
	teacher, ok := r.m.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return teacher, nil
}

func (r *mockTeacherRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, t := range r.m.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (r *mockTeacherRepo) Update(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	if _, ok := r.m.teachers[teacher.TeacherID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (r *mockTeacherRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if _, ok := r.m.teachers[id]; !ok {
		return 0, nil
	}
	delete(r.m.teachers, id)
	return 1, nil
}

func (r *mockTeacherRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Teacher, error) {
	for _, t := range r.m.teachers {
		if t.TeacherName == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockTeacherRepo) GetByClass(ctx context.Context, tx *gorm.DB, className string) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, t := range r.m.teachers {
		if t.ClassName == className {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *mockTeacherRepo) GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, t := range r.m.teachers {
		if t.CreatedDate >= startDate && t.CreatedDate <= endDate {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *mockTeacherRepo) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	for _, t := range r.m.teachers {
		if t.TeacherName == name {
			return true, nil
		}
	}
	return false, nil
}

// ===== USERS =====

type mockUserRepo struct{ m *MockRepository }

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, u := range r.m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UserID = r.m.id()
	r.m.users[user.UserID] = user
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	for _, u := range r.m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.m.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, ok := r.m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.users[user.UserID] = user
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if _, ok := r.m.users[id]; !ok {
		return 0, nil
	}
	delete(r.m.users, id)
	return 1, nil
}

func (r *mockUserRepo) GetByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *mockUserRepo) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	for _, u := range r.m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// ===== PAYMENTS =====

type mockPaymentRepo struct{ m *MockRepository }

func (r *mockPaymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	payment.PaymentID = r.m.id()
	r.m.payments[payment.PaymentID] = payment
	return nil
}

func (r *mockPaymentRepo) withStudent(p *models.Payment) *models.PaymentWithStudent {
	out := &models.PaymentWithStudent{Payment: *p}
	if s, ok := r.m.students[p.StudentID]; ok {
		out.StudentName = s.StudentName
	}
	return out
}

func (r *mockPaymentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PaymentWithStudent, error) {
	payment, ok := r.m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withStudent(payment), nil
}

func (r *mockPaymentRepo) GetAll(ctx context.Context, tx *gorm.DB, filters repositories.PaymentFilters) ([]*models.PaymentWithStudent, error) {
	var out []*models.PaymentWithStudent
	for _, p := range r.m.payments {
		if filters.StudentID != nil && p.StudentID != *filters.StudentID {
			continue
		}
		if filters.ServiceType != nil && p.ServiceType != *filters.ServiceType {
			continue
		}
		if filters.StartDate != nil && p.PaymentDate < *filters.StartDate {
			continue
		}
		if filters.EndDate != nil && p.PaymentDate > *filters.EndDate {
			continue
		}
		out = append(out, r.withStudent(p))
	}
	return out, nil
}

func (r *mockPaymentRepo) Update(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if _, ok := r.m.payments[payment.PaymentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.payments[payment.PaymentID] = payment
	return nil
}

func (r *mockPaymentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if _, ok := r.m.payments[id]; !ok {
		return 0, nil
	}
	delete(r.m.payments, id)
	return 1, nil
}

func (r *mockPaymentRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.PaymentWithStudent, error) {
	return r.GetAll(ctx, tx, repositories.PaymentFilters{StudentID: &studentID})
}

func (r *mockPaymentRepo) GetStats(ctx context.Context, tx *gorm.DB) (*repositories.PaymentStats, error) {
	stats := &repositories.PaymentStats{}
	for _, p := range r.m.payments {
		stats.TotalPayments++
		stats.TotalAmount += p.Amount
	}
	if stats.TotalPayments > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalPayments)
	}
	return stats, nil
}

// ===== ATTENDANCE =====

type mockAttendanceRepo struct{ m *MockRepository }

func (r *mockAttendanceRepo) Upsert(ctx context.Context, tx *gorm.DB, record *models.Attendance) error {
	if r.m.upsertErr != nil {
		return r.m.upsertErr
	}
	key := attendanceKey(record.StudentID, record.Date)
	if existing, ok := r.m.attendance[key]; ok {
		existing.Present = record.Present
		existing.AttendanceTime = record.AttendanceTime
		existing.MarkedBy = record.MarkedBy
		return nil
	}
	record.ID = r.m.id()
	r.m.attendance[key] = record
	return nil
}

func (r *mockAttendanceRepo) InvalidateCache(ctx context.Context, markedBy, date string) {
	if r.m.inTx {
		r.m.invalidatedInTx = true
	}
	r.m.invalidations = append(r.m.invalidations, markedBy+"|"+date)
}

func (r *mockAttendanceRepo) toRecord(a *models.Attendance) *models.AttendanceRecord {
	out := &models.AttendanceRecord{Attendance: *a}
	if s, ok := r.m.students[a.StudentID]; ok {
		out.StudentName = s.StudentName
		out.ClassID = s.ClassID
	}
	return out
}

func (r *mockAttendanceRepo) GetByDate(ctx context.Context, tx *gorm.DB, date, classID string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.Date != date {
			continue
		}
		rec := r.toRecord(a)
		if classID != "" && rec.ClassID != classID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.MarkedBy == markedBy && a.Date == date {
			out = append(out, r.toRecord(a))
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetByTeacherDateRange(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.MarkedBy == markedBy && a.Date >= startDate && a.Date <= endDate {
			out = append(out, r.toRecord(a))
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.Date >= startDate && a.Date <= endDate {
			out = append(out, r.toRecord(a))
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetStudentHistory(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.StudentID != studentID {
			continue
		}
		if startDate != "" && a.Date < startDate {
			continue
		}
		if endDate != "" && a.Date > endDate {
			continue
		}
		out = append(out, r.toRecord(a))
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetHistory(ctx context.Context, tx *gorm.DB, markedBy string, days int) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, a := range r.m.attendance {
		if a.MarkedBy == markedBy {
			out = append(out, r.toRecord(a))
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) CountByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error) {
	var count int64
	for _, a := range r.m.attendance {
		if a.MarkedBy == markedBy && a.Date == date {
			count++
		}
	}
	return count, nil
}

func (r *mockAttendanceRepo) DeleteByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error) {
	var deleted int64
	for key, a := range r.m.attendance {
		if a.MarkedBy == markedBy && a.Date == date {
			delete(r.m.attendance, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *mockAttendanceRepo) GetDates(ctx context.Context, tx *gorm.DB, markedBy string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, a := range r.m.attendance {
		if a.MarkedBy == markedBy && !seen[a.Date] {
			seen[a.Date] = true
			out = append(out, a.Date)
		}
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetSummary(ctx context.Context, tx *gorm.DB, startDate, endDate string) (*repositories.AttendanceSummary, error) {
	summary := &repositories.AttendanceSummary{}
	daily := make(map[string]*repositories.DateStat)
	for _, a := range r.m.attendance {
		if a.Date < startDate || a.Date > endDate {
			continue
		}
		summary.Overall.TotalRecords++
		if a.Present {
			summary.Overall.PresentCount++
		}
		day, ok := daily[a.Date]
		if !ok {
			day = &repositories.DateStat{Date: a.Date}
			daily[a.Date] = day
		}
		day.TotalStudents++
		if a.Present {
			day.PresentCount++
		}
	}
	summary.Overall.AbsentCount = summary.Overall.TotalRecords - summary.Overall.PresentCount
	for _, day := range daily {
		summary.Daily = append(summary.Daily, *day)
	}
	return summary, nil
}

func (r *mockAttendanceRepo) GetTeacherStats(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]repositories.DateStat, error) {
	daily := make(map[string]*repositories.DateStat)
	for _, a := range r.m.attendance {
		if a.MarkedBy != markedBy || a.Date < startDate || a.Date > endDate {
			continue
		}
		day, ok := daily[a.Date]
		if !ok {
			day = &repositories.DateStat{Date: a.Date}
			daily[a.Date] = day
		}
		day.TotalStudents++
		if a.Present {
			day.PresentCount++
		}
	}
	var out []repositories.DateStat
	for _, day := range daily {
		out = append(out, *day)
	}
	return out, nil
}

func (r *mockAttendanceRepo) GetStudentStats(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) (*repositories.StudentAttendanceStats, error) {
	student, ok := r.m.students[studentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stats := &repositories.StudentAttendanceStats{
		StudentID:   studentID,
		StudentName: student.StudentName,
	}
	for _, a := range r.m.attendance {
		if a.StudentID != studentID || a.Date < startDate || a.Date > endDate {
			continue
		}
		stats.TotalDays++
		if a.Present {
			stats.PresentDays++
		}
	}
	stats.AbsentDays = stats.TotalDays - stats.PresentDays
	return stats, nil
}

func (r *mockAttendanceRepo) GetRankings(ctx context.Context, tx *gorm.DB, startDate, endDate string, limit int) ([]repositories.RankingEntry, error) {
	return nil, nil
}

func (r *mockAttendanceRepo) GetMonthlyTrends(ctx context.Context, tx *gorm.DB, year int) ([]repositories.MonthlyTrend, error) {
	return nil, nil
}

func (r *mockAttendanceRepo) GetClassComparison(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]repositories.ClassStat, error) {
	return nil, nil
}

// ===== PRIVILEGES =====

type mockPrivilegeRepo struct{ m *MockRepository }

func (r *mockPrivilegeRepo) Create(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error {
	for _, p := range r.m.privileges {
		if p.RoleName == privilege.RoleName {
			return gorm.ErrDuplicatedKey
		}
	}
	privilege.ID = r.m.id()
	r.m.privileges[privilege.ID] = privilege
	return nil
}

func (r *mockPrivilegeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AuthPrivilege, error) {
	privilege, ok := r.m.privileges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return privilege, nil
}

func (r *mockPrivilegeRepo) GetByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) (*models.AuthPrivilege, error) {
	for _, p := range r.m.privileges {
		if p.RoleName == role {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockPrivilegeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*models.AuthPrivilege, error) {
	var out []*models.AuthPrivilege
	for _, p := range r.m.privileges {
		out = append(out, p)
	}
	return out, nil
}

func (r *mockPrivilegeRepo) Update(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error {
	if _, ok := r.m.privileges[privilege.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.privileges[privilege.ID] = privilege
	return nil
}

func (r *mockPrivilegeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	if _, ok := r.m.privileges[id]; !ok {
		return 0, nil
	}
	delete(r.m.privileges, id)
	return 1, nil
}
