// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"creationity/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, userID uint) (*models.UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Stats aggregates the dashboard counters for one user. Likes are counted
// against the user's items, not likes the user has given.
func (r *userRepository) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	stats := &models.UserStats{ContentByType: make(map[string]int64)}

	type typeCount struct {
		Type  string
		Count int64
	}
	var perType []typeCount
	err := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Select("type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&perType).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, tc := range perType {
		stats.ContentByType[tc.Type] = tc.Count
		stats.TotalContent += tc.Count
	}

	err = r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN content_items ON content_items.id = likes.content_id").
		Where("content_items.user_id = ? AND content_items.deleted_at IS NULL", userID).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var views *int64
	err = r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Select("SUM(views)").
		Where("user_id = ?", userID).
		Scan(&views).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if views != nil {
		stats.TotalViews = *views
	}

	return stats, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
