package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *studentService) Create(ctx context.Context, req *StudentCreateRequest) (*models.Student, error) {
	s.logger.Info("Creating student", "student_name", req.StudentName, "class_id", req.ClassID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	student := &models.Student{
		StudentName: strings.TrimSpace(req.StudentName),
		BirthDate:   req.BirthDate,
		Gender:      models.StudentGender(strings.ToLower(req.Gender)),
		ClassID:     req.ClassID,
	}

	if err := s.repo.Student().Create(ctx, nil, student); err != nil {
		return nil, translateDBError(err, "student")
	}

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.StudentWithAge, error) {
	student, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "student")
	}

	return &models.StudentWithAge{
		Student: *student,
		Age:     ageFromBirthDate(student.BirthDate),
	}, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().GetAll(ctx, nil, repositories.StudentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *StudentUpdateRequest) (*models.Student, error) {
	s.logger.Info("Updating student", "student_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	student, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "student")
	}

	if req.StudentName != nil {
		student.StudentName = strings.TrimSpace(*req.StudentName)
	}
	if req.BirthDate != nil {
		student.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		student.Gender = models.StudentGender(strings.ToLower(*req.Gender))
	}
	if req.ClassID != nil {
		student.ClassID = *req.ClassID
	}

	if err := s.repo.Student().Update(ctx, nil, student); err != nil {
		return nil, translateDBError(err, "student")
	}

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting student", "student_id", id)

	affected, err := s.repo.Student().Delete(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "student")
	}
	if affected == 0 {
		return fmt.Errorf("student: %w", ErrNotFound)
	}

	return nil
}

func (s *studentService) GetByClass(ctx context.Context, classID string) ([]*models.Student, error) {
	students, err := s.repo.Student().GetByClass(ctx, nil, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to get students by class: %w", err)
	}
	return students, nil
}

func (s *studentService) GetByGender(ctx context.Context, gender string) ([]*models.Student, error) {
	normalized := models.StudentGender(strings.ToLower(strings.TrimSpace(gender)))
	if normalized != models.GenderMale && normalized != models.GenderFemale {
		return nil, NewValidationError(validator.ValidationErrors{{
			Field:   "gender",
			Message: "must be either \"male\" or \"female\"",
			Value:   gender,
			Rule:    "student_gender",
		}})
	}

	students, err := s.repo.Student().GetByGender(ctx, nil, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get students by gender: %w", err)
	}
	return students, nil
}

// ageFromBirthDate derives whole years from a YYYY-MM-DD birth date. A date
// that no longer parses yields 0 rather than an error, the column is
// validated on write.
func ageFromBirthDate(birthDate string) int {
	birth, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0
	}

	now := time.Now()
	age := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
