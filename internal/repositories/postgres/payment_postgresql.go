package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepository{db: db}
}

// paymentSelect joins the student roster so listings carry the payer name.
const paymentSelect = "payment.*, student.student_name AS student_name"

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Create(payment).Error; err != nil {
		return handleDBError(err, "create payment")
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PaymentWithStudent, error) {
	db := getDB(r.db, tx)
	var payment models.PaymentWithStudent

	err := db.WithContext(ctx).
		Table("payment").
		Select(paymentSelect).
		Joins("LEFT JOIN student ON student.student_id = payment.student_id").
		Where("payment.payment_id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, handleDBError(err, "get payment by id")
	}

	return &payment, nil
}

func (r *paymentRepository) GetAll(ctx context.Context, tx *gorm.DB, filters repositories.PaymentFilters) ([]*models.PaymentWithStudent, error) {
	db := getDB(r.db, tx)
	var payments []*models.PaymentWithStudent

	query := db.WithContext(ctx).
		Table("payment").
		Select(paymentSelect).
		Joins("LEFT JOIN student ON student.student_id = payment.student_id")

	if filters.StudentID != nil {
		query = query.Where("payment.student_id = ?", *filters.StudentID)
	}
	if filters.ServiceType != nil {
		query = query.Where("payment.service_type = ?", *filters.ServiceType)
	}
	if filters.StartDate != nil {
		query = query.Where("payment.payment_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("payment.payment_date <= ?", *filters.EndDate)
	}

	err := query.
		Order("payment.payment_date DESC, payment.payment_time DESC").
		Scan(&payments).Error
	if err != nil {
		return nil, handleDBError(err, "list payments")
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Save(payment).Error; err != nil {
		return handleDBError(err, "update payment")
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Delete(&models.Payment{}, id)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "delete payment")
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.PaymentWithStudent, error) {
	return r.GetAll(ctx, tx, repositories.PaymentFilters{StudentID: &studentID})
}

func (r *paymentRepository) GetStats(ctx context.Context, tx *gorm.DB) (*repositories.PaymentStats, error) {
	db := getDB(r.db, tx)
	stats := &repositories.PaymentStats{}

	type totals struct {
		TotalPayments int64
		TotalAmount   float64
	}
	var t totals
	err := db.WithContext(ctx).
		Table("payment").
		Select("COUNT(*) AS total_payments, COALESCE(SUM(amount), 0) AS total_amount").
		Scan(&t).Error
	if err != nil {
		return nil, handleDBError(err, "payment totals")
	}

	stats.TotalPayments = t.TotalPayments
	stats.TotalAmount = t.TotalAmount
	if t.TotalPayments > 0 {
		stats.AverageAmount = t.TotalAmount / float64(t.TotalPayments)
	}

	err = db.WithContext(ctx).
		Table("payment").
		Select("service_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Group("service_type").
		Order("total_amount DESC").
		Scan(&stats.ByServiceType).Error
	if err != nil {
		return nil, handleDBError(err, "payment stats by service type")
	}

	return stats, nil
}
