package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/events"
	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

// historyDays bounds the rolling attendance history window
const historyDays = 30

type attendanceService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewAttendanceService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AttendanceService {
	return &attendanceService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// SaveBulk writes a whole register in one transaction. Validation is
// strict: one bad record rejects the batch before any row is written.
// Records that collide with an existing (student, date) row overwrite it,
// so re-saving a register is idempotent.
func (s *attendanceService) SaveBulk(ctx context.Context, records []AttendanceRecord) (*BulkSaveResult, error) {
	if errs := s.validator.GetBusinessValidator().ValidateAttendanceSave(records); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	s.logger.Info("Saving attendance register",
		"record_count", len(records),
		"marked_by", records[0].MarkedBy,
		"date", records[0].Date)

	for _, rec := range records {
		exists, err := s.repo.Student().Exists(ctx, nil, rec.StudentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check student %d: %w", rec.StudentID, err)
		}
		if !exists {
			return nil, fmt.Errorf("student %d: %w", rec.StudentID, ErrNotFound)
		}
	}

	saved := 0
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, rec := range records {
			record := &models.Attendance{
				StudentID:      rec.StudentID,
				Date:           rec.Date,
				Present:        rec.Present,
				AttendanceTime: rec.AttendanceTime,
				MarkedBy:       strings.TrimSpace(rec.MarkedBy),
			}
			if err := txRepo.Attendance().Upsert(ctx, nil, record); err != nil {
				return err
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk attendance save failed: %w", err)
	}

	// Invalidate only after the commit so a concurrent existence check
	// cannot re-cache the pre-commit count.
	invalidated := make(map[string]bool)
	for _, rec := range records {
		markedBy := strings.TrimSpace(rec.MarkedBy)
		key := markedBy + "|" + rec.Date
		if invalidated[key] {
			continue
		}
		invalidated[key] = true
		s.repo.Attendance().InvalidateCache(ctx, markedBy, rec.Date)
	}

	result := &BulkSaveResult{
		SavedCount: saved,
		MarkedBy:   strings.TrimSpace(records[0].MarkedBy),
		Date:       records[0].Date,
	}

	s.publishEvent(ctx, events.EventAttendanceSaved, events.AttendanceSavedEvent{
		MarkedBy:   result.MarkedBy,
		Date:       result.Date,
		SavedCount: result.SavedCount,
	})

	return result, nil
}

func (s *attendanceService) CheckExists(ctx context.Context, markedBy, date string) (bool, int64, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDate("date", date); len(errs) > 0 {
		return false, 0, NewValidationError(errs)
	}

	count, err := s.repo.Attendance().CountByTeacherDate(ctx, nil, markedBy, date)
	if err != nil {
		return false, 0, fmt.Errorf("failed to check register: %w", err)
	}

	return count > 0, count, nil
}

func (s *attendanceService) DeleteByTeacherDate(ctx context.Context, markedBy, date string) (int64, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDate("date", date); len(errs) > 0 {
		return 0, NewValidationError(errs)
	}

	s.logger.Info("Deleting attendance register", "marked_by", markedBy, "date", date)

	deleted, err := s.repo.Attendance().DeleteByTeacherDate(ctx, nil, markedBy, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete register: %w", err)
	}
	if deleted == 0 {
		return 0, fmt.Errorf("no attendance records for teacher %q on %s: %w", markedBy, date, ErrNotFound)
	}

	s.publishEvent(ctx, events.EventAttendanceDeleted, events.AttendanceDeletedEvent{
		MarkedBy:     markedBy,
		Date:         date,
		DeletedCount: deleted,
	})

	return deleted, nil
}

// ===== READS =====

func (s *attendanceService) GetByDate(ctx context.Context, date, classID string) ([]*models.AttendanceRecord, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDate("date", date); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	return s.records(s.repo.Attendance().GetByDate(ctx, nil, date, classID))
}

func (s *attendanceService) GetByTeacherDate(ctx context.Context, markedBy, date string) ([]*models.AttendanceRecord, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDate("date", date); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	return s.records(s.repo.Attendance().GetByTeacherDate(ctx, nil, markedBy, date))
}

func (s *attendanceService) GetByTeacherDateRange(ctx context.Context, markedBy, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	return s.records(s.repo.Attendance().GetByTeacherDateRange(ctx, nil, markedBy, startDate, endDate))
}

func (s *attendanceService) GetAllByDateRange(ctx context.Context, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	return s.records(s.repo.Attendance().GetByDateRange(ctx, nil, startDate, endDate))
}

// GetStudentHistory lists one student's rows, optionally bounded by a
// date range. Both bounds must be supplied together.
func (s *attendanceService) GetStudentHistory(ctx context.Context, studentID uint, startDate, endDate string) ([]*models.AttendanceRecord, error) {
	if startDate != "" || endDate != "" {
		if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
			return nil, NewValidationError(errs)
		}
	}
	return s.records(s.repo.Attendance().GetStudentHistory(ctx, nil, studentID, startDate, endDate))
}

func (s *attendanceService) GetHistory(ctx context.Context, markedBy string) ([]*models.AttendanceRecord, error) {
	return s.records(s.repo.Attendance().GetHistory(ctx, nil, markedBy, historyDays))
}

func (s *attendanceService) records(records []*models.AttendanceRecord, err error) ([]*models.AttendanceRecord, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}
	return records, nil
}

// ===== REPORTS =====

func (s *attendanceService) GetDates(ctx context.Context, markedBy string) ([]string, error) {
	dates, err := s.repo.Attendance().GetDates(ctx, nil, markedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to get register dates: %w", err)
	}
	return dates, nil
}

func (s *attendanceService) GetSummary(ctx context.Context, startDate, endDate string) (*repositories.AttendanceSummary, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	summary, err := s.repo.Attendance().GetSummary(ctx, nil, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance summary: %w", err)
	}
	return summary, nil
}

func (s *attendanceService) GetTeacherStats(ctx context.Context, markedBy, startDate, endDate string) ([]repositories.DateStat, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	stats, err := s.repo.Attendance().GetTeacherStats(ctx, nil, markedBy, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher attendance stats: %w", err)
	}
	return stats, nil
}

func (s *attendanceService) GetStudentStats(ctx context.Context, studentID uint, startDate, endDate string) (*repositories.StudentAttendanceStats, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	stats, err := s.repo.Attendance().GetStudentStats(ctx, nil, studentID, startDate, endDate)
	if err != nil {
		return nil, translateDBError(err, "student")
	}
	return stats, nil
}

func (s *attendanceService) GetRankings(ctx context.Context, startDate, endDate string, limit int) ([]repositories.RankingEntry, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rankings, err := s.repo.Attendance().GetRankings(ctx, nil, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance rankings: %w", err)
	}
	return rankings, nil
}

func (s *attendanceService) GetMonthlyTrends(ctx context.Context, year int) ([]repositories.MonthlyTrend, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("year out of range: %w", ErrValidationFailed)
	}

	trends, err := s.repo.Attendance().GetMonthlyTrends(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly trends: %w", err)
	}
	return trends, nil
}

func (s *attendanceService) GetClassComparison(ctx context.Context, startDate, endDate string) ([]repositories.ClassStat, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	comparison, err := s.repo.Attendance().GetClassComparison(ctx, nil, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get class comparison: %w", err)
	}
	return comparison, nil
}

func (s *attendanceService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.eventPublisher == nil {
		return
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish attendance event", "error", err, "event_type", eventType)
	}
}
