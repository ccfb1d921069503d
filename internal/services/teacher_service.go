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

type teacherService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *teacherService) Create(ctx context.Context, req *TeacherCreateRequest) (*models.Teacher, error) {
	s.logger.Info("Creating teacher", "teacher_name", req.TeacherName, "class_name", req.ClassName)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	now := time.Now()
	teacher := &models.Teacher{
		TeacherName: strings.TrimSpace(req.TeacherName),
		ClassName:   strings.TrimSpace(req.ClassName),
		Gender:      models.TeacherGender(req.Gender),
		CreatedDate: now.Format("2006-01-02"),
		CreatedTime: now.Format("15:04:05"),
	}

	if err := s.repo.Teacher().Create(ctx, nil, teacher); err != nil {
		return nil, translateDBError(err, "teacher")
	}

	return teacher, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "teacher")
	}
	return teacher, nil
}

func (s *teacherService) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.repo.Teacher().GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req *TeacherUpdateRequest) (*models.Teacher, error) {
	s.logger.Info("Updating teacher", "teacher_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	teacher, err := s.repo.Teacher().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "teacher")
	}

	if req.TeacherName != nil {
		teacher.TeacherName = strings.TrimSpace(*req.TeacherName)
	}
	if req.ClassName != nil {
		teacher.ClassName = strings.TrimSpace(*req.ClassName)
	}
	if req.Gender != nil {
		teacher.Gender = models.TeacherGender(*req.Gender)
	}

	if err := s.repo.Teacher().Update(ctx, nil, teacher); err != nil {
		return nil, translateDBError(err, "teacher")
	}

	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting teacher", "teacher_id", id)

	affected, err := s.repo.Teacher().Delete(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "teacher")
	}
	if affected == 0 {
		return fmt.Errorf("teacher: %w", ErrNotFound)
	}

	return nil
}

func (s *teacherService) GetByName(ctx context.Context, name string) (*models.Teacher, error) {
	teacher, err := s.repo.Teacher().GetByName(ctx, nil, strings.TrimSpace(name))
	if err != nil {
		return nil, translateDBError(err, "teacher")
	}
	return teacher, nil
}

func (s *teacherService) GetByClass(ctx context.Context, className string) ([]*models.Teacher, error) {
	className = strings.TrimSpace(className)
	if className == "" {
		return nil, fmt.Errorf("class name is required: %w", ErrValidationFailed)
	}

	teachers, err := s.repo.Teacher().GetByClass(ctx, nil, className)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers by class: %w", err)
	}
	return teachers, nil
}

func (s *teacherService) GetByDateRange(ctx context.Context, startDate, endDate string) ([]*models.Teacher, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	teachers, err := s.repo.Teacher().GetByDateRange(ctx, nil, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get teachers by date range: %w", err)
	}
	return teachers, nil
}
