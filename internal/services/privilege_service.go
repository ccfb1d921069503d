package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
	"github.com/edu-core/school-service/internal/validator"
)

// AvailablePrivileges is the catalog of capability strings roles can hold
var AvailablePrivileges = []string{
	"manage_students",
	"manage_teachers",
	"manage_users",
	"manage_payments",
	"manage_privileges",
	"mark_attendance",
	"view_attendance",
	"view_reports",
	"export_data",
}

type privilegeService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPrivilegeService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) PrivilegeService {
	return &privilegeService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *privilegeService) Create(ctx context.Context, req *PrivilegeCreateRequest) (*models.AuthPrivilege, error) {
	s.logger.Info("Creating privilege mapping", "role_name", req.RoleName)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	payload, err := marshalPrivileges(req.Privilege)
	if err != nil {
		return nil, err
	}

	privilege := &models.AuthPrivilege{
		RoleName:  models.UserRole(req.RoleName),
		Privilege: payload,
	}

	if err := s.repo.Privilege().Create(ctx, nil, privilege); err != nil {
		return nil, translateDBError(err, "privilege")
	}

	return privilege, nil
}

func (s *privilegeService) GetByID(ctx context.Context, id uint) (*models.AuthPrivilege, error) {
	privilege, err := s.repo.Privilege().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "privilege")
	}
	return privilege, nil
}

func (s *privilegeService) GetByRole(ctx context.Context, role string) (*models.AuthPrivilege, error) {
	parsed, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	privilege, err := s.repo.Privilege().GetByRole(ctx, nil, parsed)
	if err != nil {
		return nil, translateDBError(err, "privilege")
	}

	return privilege, nil
}

func (s *privilegeService) GetAll(ctx context.Context) ([]*models.AuthPrivilege, error) {
	privileges, err := s.repo.Privilege().GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list privileges: %w", err)
	}
	return privileges, nil
}

func (s *privilegeService) Update(ctx context.Context, id uint, req *PrivilegeUpdateRequest) (*models.AuthPrivilege, error) {
	s.logger.Info("Updating privilege mapping", "privilege_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	privilege, err := s.repo.Privilege().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "privilege")
	}

	if req.RoleName != nil {
		privilege.RoleName = models.UserRole(*req.RoleName)
	}
	if req.Privilege != nil {
		payload, err := marshalPrivileges(req.Privilege)
		if err != nil {
			return nil, err
		}
		privilege.Privilege = payload
	}

	if err := s.repo.Privilege().Update(ctx, nil, privilege); err != nil {
		return nil, translateDBError(err, "privilege")
	}

	return privilege, nil
}

func (s *privilegeService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting privilege mapping", "privilege_id", id)

	affected, err := s.repo.Privilege().Delete(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "privilege")
	}
	if affected == 0 {
		return fmt.Errorf("privilege: %w", ErrNotFound)
	}

	return nil
}

func (s *privilegeService) CheckPrivilege(ctx context.Context, role, privilege string) (*PrivilegeCheckResult, error) {
	parsed, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	mapping, err := s.repo.Privilege().GetByRole(ctx, nil, parsed)
	if err != nil {
		return nil, translateDBError(err, "privilege")
	}

	var held []string
	if err := json.Unmarshal(mapping.Privilege, &held); err != nil {
		return nil, fmt.Errorf("corrupt privilege payload for role %s: %w", role, err)
	}

	result := &PrivilegeCheckResult{
		RoleName:   string(parsed),
		Privilege:  privilege,
		Privileges: held,
	}
	for _, p := range held {
		if p == privilege {
			result.HasPrivilege = true
			break
		}
	}

	return result, nil
}

func (s *privilegeService) GetAvailablePrivileges(ctx context.Context) []string {
	out := make([]string, len(AvailablePrivileges))
	copy(out, AvailablePrivileges)
	return out
}

func marshalPrivileges(privileges []string) (datatypes.JSON, error) {
	trimmed := make([]string, len(privileges))
	for i, p := range privileges {
		trimmed[i] = strings.TrimSpace(p)
	}
	payload, err := json.Marshal(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode privileges: %w", err)
	}
	return datatypes.JSON(payload), nil
}

func parseRole(role string) (models.UserRole, error) {
	parsed := models.UserRole(strings.TrimSpace(role))
	if parsed != models.RoleAdmin && parsed != models.RoleTeacher && parsed != models.RoleStudent {
		return "", NewValidationError(validator.ValidationErrors{{
			Field:   "role_name",
			Message: "must be one of: Admin, Teacher, Student",
			Value:   role,
			Rule:    "user_role",
		}})
	}
	return parsed, nil
}
