package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) Create(ctx context.Context, req *UserCreateRequest) (*models.User, error) {
	s.logger.Info("Creating user", "username", req.Username, "role", req.Role)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Password: string(hash),
		Role:     models.UserRole(req.Role),
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		return nil, translateDBError(err, "user")
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "user")
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.User().GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UserUpdateRequest) (*models.User, error) {
	s.logger.Info("Updating user", "user_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "user")
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if req.Role != nil {
		user.Role = models.UserRole(*req.Role)
	}

	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, translateDBError(err, "user")
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting user", "user_id", id)

	affected, err := s.repo.User().Delete(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "user")
	}
	if affected == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}

	return nil
}

func (s *userService) GetByRole(ctx context.Context, role string) ([]*models.User, error) {
	parsed := models.UserRole(strings.TrimSpace(role))
	if parsed != models.RoleAdmin && parsed != models.RoleTeacher && parsed != models.RoleStudent {
		return nil, NewValidationError(validator.ValidationErrors{{
			Field:   "role",
			Message: "must be one of: Admin, Teacher, Student",
			Value:   role,
			Rule:    "user_role",
		}})
	}

	users, err := s.repo.User().GetByRole(ctx, nil, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}
	return users, nil
}

// Authenticate verifies credentials. The failure message never reveals
// whether the username or the password was wrong.
func (s *userService) Authenticate(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	user, err := s.repo.User().GetByUsername(ctx, nil, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("Failed login attempt", "username", req.Username)
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uint, req *ChangePasswordRequest) error {
	s.logger.Info("Changing password", "user_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return NewValidationError(errs)
	}

	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password does not match: %w", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return translateDBError(err, "user")
	}

	return nil
}
