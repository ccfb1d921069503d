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

type paymentService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewPaymentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) PaymentService {
	return &paymentService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

func (s *paymentService) Create(ctx context.Context, req *PaymentCreateRequest) (*models.Payment, error) {
	s.logger.Info("Recording payment", "student_id", req.StudentID, "service_type", req.ServiceType, "amount", req.Amount)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	exists, err := s.repo.Student().Exists(ctx, nil, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("student: %w", ErrNotFound)
	}

	payment := &models.Payment{
		StudentID:   req.StudentID,
		ServiceType: strings.TrimSpace(req.ServiceType),
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		PaymentTime: req.PaymentTime,
	}

	if err := s.repo.Payment().Create(ctx, nil, payment); err != nil {
		return nil, translateDBError(err, "payment")
	}

	s.publishRecorded(ctx, payment)
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uint) (*models.PaymentWithStudent, error) {
	payment, err := s.repo.Payment().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "payment")
	}
	return payment, nil
}

func (s *paymentService) GetAll(ctx context.Context) ([]*models.PaymentWithStudent, error) {
	payments, err := s.repo.Payment().GetAll(ctx, nil, repositories.PaymentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) Update(ctx context.Context, id uint, req *PaymentUpdateRequest) (*models.Payment, error) {
	s.logger.Info("Updating payment", "payment_id", id)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	existing, err := s.repo.Payment().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateDBError(err, "payment")
	}

	payment := existing.Payment
	if req.ServiceType != nil {
		payment.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.PaymentTime != nil {
		payment.PaymentTime = *req.PaymentTime
	}

	if err := s.repo.Payment().Update(ctx, nil, &payment); err != nil {
		return nil, translateDBError(err, "payment")
	}

	return &payment, nil
}

func (s *paymentService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting payment", "payment_id", id)

	affected, err := s.repo.Payment().Delete(ctx, nil, id)
	if err != nil {
		return translateDBError(err, "payment")
	}
	if affected == 0 {
		return fmt.Errorf("payment: %w", ErrNotFound)
	}

	return nil
}

func (s *paymentService) GetByStudent(ctx context.Context, studentID uint) ([]*models.PaymentWithStudent, error) {
	payments, err := s.repo.Payment().GetByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by student: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetByDateRange(ctx context.Context, startDate, endDate string) ([]*models.PaymentWithStudent, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDateRange(startDate, endDate); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	payments, err := s.repo.Payment().GetAll(ctx, nil, repositories.PaymentFilters{
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by date range: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetByServiceType(ctx context.Context, serviceType string) ([]*models.PaymentWithStudent, error) {
	trimmed := strings.TrimSpace(serviceType)
	payments, err := s.repo.Payment().GetAll(ctx, nil, repositories.PaymentFilters{
		ServiceType: &trimmed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by service type: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetStats(ctx context.Context) (*repositories.PaymentStats, error) {
	stats, err := s.repo.Payment().GetStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment stats: %w", err)
	}
	return stats, nil
}

// publishRecorded emits the event best-effort, a broker outage never fails
// the write.
func (s *paymentService) publishRecorded(ctx context.Context, payment *models.Payment) {
	if s.eventPublisher == nil {
		return
	}

	event := events.NewEvent(events.EventPaymentRecorded, events.PaymentRecordedEvent{
		PaymentID:   payment.PaymentID,
		StudentID:   payment.StudentID,
		ServiceType: payment.ServiceType,
		Amount:      payment.Amount,
	})

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish payment event", "error", err, "payment_id", payment.PaymentID)
	}
}
