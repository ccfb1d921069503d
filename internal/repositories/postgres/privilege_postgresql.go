package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edu-core/school-service/internal/cache"
	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/repositories"
)

type privilegeRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewPrivilegePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.PrivilegeRepository {
	return &privilegeRepository{db: db, cacheManager: cacheManager}
}

func (r *privilegeRepository) Create(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Create(privilege).Error; err != nil {
		return handleDBError(err, "create privilege")
	}

	cache.InvalidatePrivilegeCache(ctx, r.cacheManager, string(privilege.RoleName))
	return nil
}

func (r *privilegeRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AuthPrivilege, error) {
	db := getDB(r.db, tx)
	var privilege models.AuthPrivilege

	if err := db.WithContext(ctx).First(&privilege, id).Error; err != nil {
		return nil, handleDBError(err, "get privilege by id")
	}

	return &privilege, nil
}

// GetByRole serves the hot authorization path, so hits come from cache
// whenever possible.
func (r *privilegeRepository) GetByRole(ctx context.Context, tx *gorm.DB, role models.UserRole) (*models.AuthPrivilege, error) {
	if tx == nil && r.cacheManager != nil {
		var privilege models.AuthPrivilege
		key := fmt.Sprintf("role:%s", role)
		err := r.cacheManager.Privilege.CacheOrExecute(ctx, key, &privilege, cache.PrivilegeCacheConfig.TTL, func() (interface{}, error) {
			return r.queryByRole(ctx, r.db, role)
		})
		if err != nil {
			return nil, err
		}
		return &privilege, nil
	}

	return r.queryByRole(ctx, getDB(r.db, tx), role)
}

func (r *privilegeRepository) queryByRole(ctx context.Context, db *gorm.DB, role models.UserRole) (*models.AuthPrivilege, error) {
	var privilege models.AuthPrivilege
	if err := db.WithContext(ctx).
		Where("role_name = ?", role).
		First(&privilege).Error; err != nil {
		return nil, handleDBError(err, "get privilege by role")
	}
	return &privilege, nil
}

func (r *privilegeRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*models.AuthPrivilege, error) {
	db := getDB(r.db, tx)
	var privileges []*models.AuthPrivilege

	if err := db.WithContext(ctx).
		Order("role_name ASC").
		Find(&privileges).Error; err != nil {
		return nil, handleDBError(err, "list privileges")
	}

	return privileges, nil
}

func (r *privilegeRepository) Update(ctx context.Context, tx *gorm.DB, privilege *models.AuthPrivilege) error {
	db := getDB(r.db, tx)
	if err := db.WithContext(ctx).Save(privilege).Error; err != nil {
		return handleDBError(err, "update privilege")
	}

	cache.InvalidatePrivilegeCache(ctx, r.cacheManager, string(privilege.RoleName))
	return nil
}

func (r *privilegeRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	db := getDB(r.db, tx)

	// Load first so the cached role entry can be dropped with the row.
	var privilege models.AuthPrivilege
	if err := db.WithContext(ctx).First(&privilege, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, handleDBError(err, "get privilege for delete")
	}

	result := db.WithContext(ctx).Delete(&models.AuthPrivilege{}, id)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "delete privilege")
	}

	if result.RowsAffected > 0 {
		cache.InvalidatePrivilegeCache(ctx, r.cacheManager, string(privilege.RoleName))
	}
	return result.RowsAffected, nil
}
