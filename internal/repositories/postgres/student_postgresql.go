package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/cache"
	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

type studentRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentRepository {
	return &studentRepository{db: db, cacheManager: cacheManager}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *studentRepository) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}

	cache.InvalidateRosterCache(ctx, r.cacheManager, "student")
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	db := getDB(r.db, tx)
	var student models.Student

	if err := db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}

	return &student, nil
}

func (r *studentRepository) GetAll(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, error) {
	db := getDB(r.db, tx)
	var students []*models.Student

	query := db.WithContext(ctx).Model(&models.Student{})
	if filters.ClassID != nil {
		query = query.Where("class_id = ?", *filters.ClassID)
	}
	if filters.Gender != nil {
		query = query.Where("gender = ?", *filters.Gender)
	}

	if err := query.Order("student_name ASC").Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list students")
	}

	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}

	cache.InvalidateRosterCache(ctx, r.cacheManager, "student")
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "delete student")
	}

	if result.RowsAffected > 0 {
		cache.InvalidateRosterCache(ctx, r.cacheManager, "student")
	}
	return result.RowsAffected, nil
}

// ===== QUERY OPERATIONS =====

func (r *studentRepository) GetByClass(ctx context.Context, tx *gorm.DB, classID string) ([]*models.Student, error) {
	if tx == nil && r.cacheManager != nil {
		var students []*models.Student
		key := fmt.Sprintf("student:class:%s", classID)
		err := r.cacheManager.Roster.CacheOrExecute(ctx, key, &students, cache.RosterCacheConfig.TTL, func() (interface{}, error) {
			return r.queryByClass(ctx, r.db, classID)
		})
		if err != nil {
			return nil, err
		}
		return students, nil
	}

	return r.queryByClass(ctx, getDB(r.db, tx), classID)
}

func (r *studentRepository) queryByClass(ctx context.Context, db *gorm.DB, classID string) ([]*models.Student, error) {
	var students []*models.Student
	if err := db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("student_name ASC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "get students by class")
	}
	return students, nil
}

func (r *studentRepository) GetByGender(ctx context.Context, tx *gorm.DB, gender models.StudentGender) ([]*models.Student, error) {
	db := getDB(r.db, tx)
	var students []*models.Student

	if err := db.WithContext(ctx).
		Where("gender = ?", gender).
		Order("student_name ASC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "get students by gender")
	}

	return students, nil
}

func (r *studentRepository) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := getDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_id = ?", id).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check student exists")
	}

	return count > 0, nil
}

func (r *studentRepository) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count students")
	}

	return count, nil
}
