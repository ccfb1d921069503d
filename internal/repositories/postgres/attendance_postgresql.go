package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edu-core/school-service/internal/cache"
	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

type attendanceRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAttendancePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AttendanceRepository {
	return &attendanceRepository{db: db, cacheManager: cacheManager}
}

// recordSelect joins the student directory so every read carries the
// student name and class.
const recordSelect = "attendance.*, student.student_name AS student_name, student.class_id AS class_id"

// dateScope bounds a query to [startDate, endDate]; empty bounds are skipped.
func dateScope(column, startDate, endDate string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if startDate != "" {
			db = db.Where(column+" >= ?", startDate)
		}
		if endDate != "" {
			db = db.Where(column+" <= ?", endDate)
		}
		return db
	}
}

// ===== WRITE OPERATIONS =====

// Upsert writes one register row. The (student_id, date) unique index
// resolves re-marking: a second save for the same student and day
// overwrites the mutable columns instead of inserting a duplicate.
// Cache invalidation is the caller's job after the surrounding
// transaction commits; invalidating here would let a concurrent read
// re-cache the pre-commit count.
func (r *attendanceRepository) Upsert(ctx context.Context, tx *gorm.DB, record *models.Attendance) error {
	db := getDB(r.db, tx)

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"present", "attendance_time", "marked_by", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return handleDBError(err, "upsert attendance record")
	}

	return nil
}

// InvalidateCache drops the cached register entries for one teacher and date.
func (r *attendanceRepository) InvalidateCache(ctx context.Context, markedBy, date string) {
	cache.InvalidateAttendanceCache(ctx, r.cacheManager, markedBy, date)
}

func (r *attendanceRepository) DeleteByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error) {
	db := getDB(r.db, tx)

	result := db.WithContext(ctx).
		Where("marked_by = ? AND date = ?", markedBy, date).
		Delete(&models.Attendance{})
	if result.Error != nil {
		return 0, handleDBError(result.Error, "delete attendance by teacher and date")
	}

	if result.RowsAffected > 0 {
		cache.InvalidateAttendanceCache(ctx, r.cacheManager, markedBy, date)
	}
	return result.RowsAffected, nil
}

// ===== READ OPERATIONS =====

func (r *attendanceRepository) GetByDate(ctx context.Context, tx *gorm.DB, date, classID string) ([]*models.AttendanceRecord, error) {
	if classID != "" {
		return r.queryRecords(ctx, tx, "attendance.date = ? AND student.class_id = ?", date, classID)
	}
	return r.queryRecords(ctx, tx, "attendance.date = ?", date)
}

func (r *attendanceRepository) GetByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) ([]*models.AttendanceRecord, error) {
	return r.queryRecords(ctx, tx, "attendance.marked_by = ? AND attendance.date = ?", markedBy, date)
}

func (r *attendanceRepository) GetByTeacherDateRange(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	return r.queryRecords(ctx, tx, "attendance.marked_by = ? AND attendance.date BETWEEN ? AND ?", markedBy, startDate, endDate)
}

func (r *attendanceRepository) GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	return r.queryRecords(ctx, tx, "attendance.date BETWEEN ? AND ?", startDate, endDate)
}

func (r *attendanceRepository) GetStudentHistory(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.AttendanceRecord

	err := db.WithContext(ctx).
		Table("attendance").
		Select(recordSelect).
		Joins("LEFT JOIN student ON student.student_id = attendance.student_id").
		Where("attendance.student_id = ?", studentID).
		Scopes(dateScope("attendance.date", startDate, endDate)).
		Order("attendance.date DESC").
		Scan(&records).Error
	if err != nil {
		return nil, handleDBError(err, "query student attendance history")
	}

	return records, nil
}

func (r *attendanceRepository) GetHistory(ctx context.Context, tx *gorm.DB, markedBy string, days int) ([]*models.AttendanceRecord, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	return r.queryRecords(ctx, tx, "attendance.marked_by = ? AND attendance.date >= ?", markedBy, cutoff)
}

func (r *attendanceRepository) queryRecords(ctx context.Context, tx *gorm.DB, cond string, args ...interface{}) ([]*models.AttendanceRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.AttendanceRecord

	err := db.WithContext(ctx).
		Table("attendance").
		Select(recordSelect).
		Joins("LEFT JOIN student ON student.student_id = attendance.student_id").
		Where(cond, args...).
		Order("attendance.date DESC, student.student_name ASC").
		Scan(&records).Error
	if err != nil {
		return nil, handleDBError(err, "query attendance records")
	}

	return records, nil
}

func (r *attendanceRepository) CountByTeacherDate(ctx context.Context, tx *gorm.DB, markedBy, date string) (int64, error) {
	if tx == nil && r.cacheManager != nil {
		key := fmt.Sprintf("register:%s:%s", markedBy, date)
		if cached, err := r.cacheManager.Exists.GetString(ctx, key); err == nil {
			if n, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return n, nil
			}
		}

		count, err := r.countByTeacherDate(ctx, r.db, markedBy, date)
		if err != nil {
			return 0, err
		}

		_ = r.cacheManager.Exists.SetString(ctx, key, strconv.FormatInt(count, 10), cache.ExistsCacheConfig.TTL)
		return count, nil
	}

	return r.countByTeacherDate(ctx, getDB(r.db, tx), markedBy, date)
}

func (r *attendanceRepository) countByTeacherDate(ctx context.Context, db *gorm.DB, markedBy, date string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("marked_by = ? AND date = ?", markedBy, date).
		Count(&count).Error
	if err != nil {
		return 0, handleDBError(err, "count attendance by teacher and date")
	}
	return count, nil
}

func (r *attendanceRepository) GetDates(ctx context.Context, tx *gorm.DB, markedBy string) ([]string, error) {
	db := getDB(r.db, tx)
	var dates []string

	err := db.WithContext(ctx).
		Raw("SELECT DISTINCT to_char(date, 'YYYY-MM-DD') AS date FROM attendance WHERE marked_by = ? ORDER BY date DESC", markedBy).
		Scan(&dates).Error
	if err != nil {
		return nil, handleDBError(err, "get attendance dates")
	}

	return dates, nil
}

// ===== AGGREGATES =====

// groupCount is the raw shape every grouped attendance query scans into.
type groupCount struct {
	Key          string
	TotalRecords int64
	PresentCount int64
}

func (r *attendanceRepository) GetSummary(ctx context.Context, tx *gorm.DB, startDate, endDate string) (*repositories.AttendanceSummary, error) {
	db := getDB(r.db, tx)
	summary := &repositories.AttendanceSummary{}

	overall, err := r.overallStats(ctx, db, startDate, endDate)
	if err != nil {
		return nil, err
	}
	summary.Overall = *overall

	var daily []groupCount
	err = db.WithContext(ctx).
		Table("attendance").
		Select("to_char(date, 'YYYY-MM-DD') AS key, COUNT(*) AS total_records, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_count").
		Scopes(dateScope("date", startDate, endDate)).
		Group("date").
		Order("key DESC").
		Scan(&daily).Error
	if err != nil {
		return nil, handleDBError(err, "daily attendance stats")
	}
	for _, d := range daily {
		summary.Daily = append(summary.Daily, repositories.DateStat{
			Date:           d.Key,
			TotalStudents:  d.TotalRecords,
			PresentCount:   d.PresentCount,
			AttendanceRate: rate(d.PresentCount, d.TotalRecords),
		})
	}

	err = db.WithContext(ctx).
		Table("attendance").
		Select("marked_by, COUNT(DISTINCT date) AS days_marked, COUNT(*) AS total_records, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_count").
		Scopes(dateScope("date", startDate, endDate)).
		Group("marked_by").
		Order("marked_by ASC").
		Scan(&summary.ByTeacher).Error
	if err != nil {
		return nil, handleDBError(err, "per-teacher attendance stats")
	}

	byClass, err := r.classStats(ctx, db, startDate, endDate)
	if err != nil {
		return nil, err
	}
	summary.ByClass = byClass

	return summary, nil
}

func (r *attendanceRepository) overallStats(ctx context.Context, db *gorm.DB, startDate, endDate string) (*repositories.OverallStats, error) {
	var raw struct {
		TotalRecords int64
		PresentCount int64
	}
	err := db.WithContext(ctx).
		Table("attendance").
		Select("COUNT(*) AS total_records, COALESCE(SUM(CASE WHEN present THEN 1 ELSE 0 END), 0) AS present_count").
		Scopes(dateScope("date", startDate, endDate)).
		Scan(&raw).Error
	if err != nil {
		return nil, handleDBError(err, "overall attendance stats")
	}

	return &repositories.OverallStats{
		TotalRecords:   raw.TotalRecords,
		PresentCount:   raw.PresentCount,
		AbsentCount:    raw.TotalRecords - raw.PresentCount,
		AttendanceRate: rate(raw.PresentCount, raw.TotalRecords),
	}, nil
}

func (r *attendanceRepository) classStats(ctx context.Context, db *gorm.DB, startDate, endDate string) ([]repositories.ClassStat, error) {
	var rows []groupCount
	err := db.WithContext(ctx).
		Table("attendance").
		Select("student.class_id AS key, COUNT(*) AS total_records, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_count").
		Joins("INNER JOIN student ON student.student_id = attendance.student_id").
		Scopes(dateScope("attendance.date", startDate, endDate)).
		Group("student.class_id").
		Order("key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "per-class attendance stats")
	}

	stats := make([]repositories.ClassStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, repositories.ClassStat{
			ClassID:        row.Key,
			TotalRecords:   row.TotalRecords,
			PresentCount:   row.PresentCount,
			AttendanceRate: rate(row.PresentCount, row.TotalRecords),
		})
	}
	return stats, nil
}

// GetTeacherStats reports, per date in the range, how many students the
// teacher marked and how many of them were present.
func (r *attendanceRepository) GetTeacherStats(ctx context.Context, tx *gorm.DB, markedBy, startDate, endDate string) ([]repositories.DateStat, error) {
	db := getDB(r.db, tx)

	var rows []groupCount
	err := db.WithContext(ctx).
		Table("attendance").
		Select("to_char(date, 'YYYY-MM-DD') AS key, COUNT(*) AS total_records, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_count").
		Where("marked_by = ?", markedBy).
		Scopes(dateScope("date", startDate, endDate)).
		Group("date").
		Order("key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "per-teacher date stats")
	}

	stats := make([]repositories.DateStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, repositories.DateStat{
			Date:           row.Key,
			TotalStudents:  row.TotalRecords,
			PresentCount:   row.PresentCount,
			AttendanceRate: rate(row.PresentCount, row.TotalRecords),
		})
	}
	return stats, nil
}

func (r *attendanceRepository) GetStudentStats(ctx context.Context, tx *gorm.DB, studentID uint, startDate, endDate string) (*repositories.StudentAttendanceStats, error) {
	db := getDB(r.db, tx)

	var student models.Student
	if err := db.WithContext(ctx).First(&student, studentID).Error; err != nil {
		return nil, handleDBError(err, "get student for attendance stats")
	}

	var raw struct {
		TotalDays   int64
		PresentDays int64
	}
	err := db.WithContext(ctx).
		Table("attendance").
		Select("COUNT(*) AS total_days, COALESCE(SUM(CASE WHEN present THEN 1 ELSE 0 END), 0) AS present_days").
		Where("student_id = ?", studentID).
		Scopes(dateScope("date", startDate, endDate)).
		Scan(&raw).Error
	if err != nil {
		return nil, handleDBError(err, "student attendance stats")
	}

	return &repositories.StudentAttendanceStats{
		StudentID:      studentID,
		StudentName:    student.StudentName,
		TotalDays:      raw.TotalDays,
		PresentDays:    raw.PresentDays,
		AbsentDays:     raw.TotalDays - raw.PresentDays,
		AttendanceRate: rate(raw.PresentDays, raw.TotalDays),
	}, nil
}

func (r *attendanceRepository) GetRankings(ctx context.Context, tx *gorm.DB, startDate, endDate string, limit int) ([]repositories.RankingEntry, error) {
	db := getDB(r.db, tx)

	type rankingRow struct {
		StudentID   uint
		StudentName string
		ClassID     string
		TotalDays   int64
		PresentDays int64
	}
	var rows []rankingRow

	query := db.WithContext(ctx).
		Table("attendance").
		Select("attendance.student_id, student.student_name, student.class_id, COUNT(*) AS total_days, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_days").
		Joins("INNER JOIN student ON student.student_id = attendance.student_id").
		Scopes(dateScope("attendance.date", startDate, endDate)).
		Group("attendance.student_id, student.student_name, student.class_id").
		Order("SUM(CASE WHEN present THEN 1 ELSE 0 END)::float / COUNT(*) DESC, student.student_name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "attendance rankings")
	}

	rankings := make([]repositories.RankingEntry, 0, len(rows))
	for _, row := range rows {
		rankings = append(rankings, repositories.RankingEntry{
			StudentID:      row.StudentID,
			StudentName:    row.StudentName,
			ClassID:        row.ClassID,
			TotalDays:      row.TotalDays,
			PresentDays:    row.PresentDays,
			AttendanceRate: rate(row.PresentDays, row.TotalDays),
		})
	}
	return rankings, nil
}

func (r *attendanceRepository) GetMonthlyTrends(ctx context.Context, tx *gorm.DB, year int) ([]repositories.MonthlyTrend, error) {
	db := getDB(r.db, tx)
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)

	var rows []groupCount
	err := db.WithContext(ctx).
		Table("attendance").
		Select("to_char(date, 'YYYY-MM') AS key, COUNT(*) AS total_records, SUM(CASE WHEN present THEN 1 ELSE 0 END) AS present_count").
		Where("date BETWEEN ? AND ?", start, end).
		Group("to_char(date, 'YYYY-MM')").
		Order("key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "monthly attendance trends")
	}

	trends := make([]repositories.MonthlyTrend, 0, len(rows))
	for _, row := range rows {
		trends = append(trends, repositories.MonthlyTrend{
			Month:          row.Key,
			TotalRecords:   row.TotalRecords,
			PresentCount:   row.PresentCount,
			AttendanceRate: rate(row.PresentCount, row.TotalRecords),
		})
	}
	return trends, nil
}

func (r *attendanceRepository) GetClassComparison(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]repositories.ClassStat, error) {
	return r.classStats(ctx, getDB(r.db, tx), startDate, endDate)
}
