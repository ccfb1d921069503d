package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/cache"
	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

type teacherRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTeacherPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.TeacherRepository {
	return &teacherRepository{db: db, cacheManager: cacheManager}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *teacherRepository) Create(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Create(teacher).Error; err != nil {
		return handleDBError(err, "create teacher")
	}

	cache.InvalidateRosterCache(ctx, r.cacheManager, "teacher")
	return nil
}

func (r *teacherRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Teacher, error) {
	db := getDB(r.db, tx)
	var teacher models.Teacher

	if err := db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, handleDBError(err, "get teacher by id")
	}

	return &teacher, nil
}

func (r *teacherRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*models.Teacher, error) {
	db := getDB(r.db, tx)
	var teachers []*models.Teacher

	if err := db.WithContext(ctx).
		Order("teacher_name ASC").
		Find(&teachers).Error; err != nil {
		return nil, handleDBError(err, "list teachers")
	}

	return teachers, nil
}

func (r *teacherRepository) Update(ctx context.Context, tx *gorm.DB, teacher *models.Teacher) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Save(teacher).Error; err != nil {
		return handleDBError(err, "update teacher")
	}

	cache.InvalidateRosterCache(ctx, r.cacheManager, "teacher")
	return nil
}

func (r *teacherRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Delete(&models.Teacher{}, id)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "delete teacher")
	}

	if result.RowsAffected > 0 {
		cache.InvalidateRosterCache(ctx, r.cacheManager, "teacher")
	}
	return result.RowsAffected, nil
}

// ===== QUERY OPERATIONS =====

func (r *teacherRepository) GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Teacher, error) {
	db := getDB(r.db, tx)
	var teacher models.Teacher

	if err := db.WithContext(ctx).
		Where("teacher_name = ?", name).
		First(&teacher).Error; err != nil {
		return nil, handleDBError(err, "get teacher by name")
	}

	return &teacher, nil
}

func (r *teacherRepository) GetByClass(ctx context.Context, tx *gorm.DB, className string) ([]*models.Teacher, error) {
	db := getDB(r.db, tx)
	var teachers []*models.Teacher

	if err := db.WithContext(ctx).
		Where("class_name = ?", className).
		Order("teacher_name ASC").
		Find(&teachers).Error; err != nil {
		return nil, handleDBError(err, "get teachers by class")
	}

	return teachers, nil
}

func (r *teacherRepository) GetByDateRange(ctx context.Context, tx *gorm.DB, startDate, endDate string) ([]*models.Teacher, error) {
	db := getDB(r.db, tx)
	var teachers []*models.Teacher

	if err := db.WithContext(ctx).
		Where("created_date BETWEEN ? AND ?", startDate, endDate).
		Order("created_date ASC, teacher_name ASC").
		Find(&teachers).Error; err != nil {
		return nil, handleDBError(err, "get teachers by date range")
	}

	return teachers, nil
}

func (r *teacherRepository) ExistsByName(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	db := getDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("teacher_name = ?", name).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check teacher name exists")
	}

	return count > 0, nil
}
