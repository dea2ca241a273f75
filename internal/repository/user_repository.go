package repository

import (
	"context"
	"errors"

	"greenscore/internal/models"
	"greenscore/internal/scoring"

	"gorm.io/gorm"
)

// UserRepository user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserWithCounts is a user row with the number of entries per metric kind and
// the number of activity log records.
type UserWithCounts struct {
	models.User
	EnergyCount   int64 `json:"energy_count"`
	WaterCount    int64 `json:"water_count"`
	WasteCount    int64 `json:"waste_count"`
	GreeneryCount int64 `json:"greenery_count"`
	ActivityCount int64 `json:"activity_count"`
}

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID finds a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername finds a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks whether a username is taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// GetAdmin returns any admin account
func (r *UserRepository) GetAdmin(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("role = ?", models.RoleAdmin).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a user. The foreign keys clear entered_by on their
// measurements and user_id on their activity logs; both rows are kept.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListWithCounts lists users, optionally filtered by a username substring,
// together with their per-kind entry counts and activity counts.
func (r *UserRepository) ListWithCounts(ctx context.Context, search string, offset, limit int) ([]UserWithCounts, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	if len(users) == 0 {
		return []UserWithCounts{}, total, nil
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	perKind := make(map[scoring.Kind]map[uint]int64, len(scoring.Kinds))
	for _, kind := range scoring.Kinds {
		counts, err := r.countBy(ctx, r.db.Table(kind.Table()), "entered_by", ids)
		if err != nil {
			return nil, 0, err
		}
		perKind[kind] = counts
	}
	activity, err := r.countBy(ctx, r.db.Model(&models.ActivityLog{}), "user_id", ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]UserWithCounts, len(users))
	for i, u := range users {
		result[i] = UserWithCounts{
			User:          u,
			EnergyCount:   perKind[scoring.Energy][u.ID],
			WaterCount:    perKind[scoring.Water][u.ID],
			WasteCount:    perKind[scoring.Waste][u.ID],
			GreeneryCount: perKind[scoring.Greenery][u.ID],
			ActivityCount: activity[u.ID],
		}
	}
	return result, total, nil
}

// countBy groups rows of base by column for the given ids. column is always a
// literal from this package.
func (r *UserRepository) countBy(ctx context.Context, base *gorm.DB, column string, ids []uint) (map[uint]int64, error) {
	var rows []struct {
		OwnerID uint
		N       int64
	}
	err := base.WithContext(ctx).
		Select(column+" AS owner_id, COUNT(*) AS n").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.N
	}
	return counts, nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
