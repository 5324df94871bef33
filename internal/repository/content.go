package repository

import (
	"context"
	"errors"

	"creationity/internal/models"

	"gorm.io/gorm"
)

// ContentFilter narrows List queries. Zero values mean "no filter".
type ContentFilter struct {
	Type     string
	Category string
	Page     int
	Limit    int
}

func (f ContentFilter) normalized() ContentFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f
}

// ContentRepository defines persistence operations for content items.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id uint) (*models.ContentItem, error)
	Update(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ContentFilter) ([]models.ContentItem, int64, error)
	ListByUser(ctx context.Context, userID uint, filter ContentFilter) ([]models.ContentItem, int64, error)
	ListLikedBy(ctx context.Context, userID uint, filter ContentFilter) ([]models.ContentItem, int64, error)
	Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error)
	ToggleLike(ctx context.Context, userID, contentID uint) (bool, error)
	IncrementViews(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a new ContentRepository implementation.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return r.populateDetails(ctx, item)
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	err := r.db.WithContext(ctx).Preload("User").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.populateDetails(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return r.populateDetails(ctx, item)
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.ContentItem{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Content", id)
		}
		return nil
	})
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]models.ContentItem, int64, error) {
	filter = filter.normalized()
	q := r.db.WithContext(ctx).Model(&models.ContentItem{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return r.page(ctx, q, filter, "created_at DESC")
}

func (r *contentRepository) ListByUser(ctx context.Context, userID uint, filter ContentFilter) ([]models.ContentItem, int64, error) {
	filter = filter.normalized()
	q := r.db.WithContext(ctx).Model(&models.ContentItem{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	return r.page(ctx, q, filter, "created_at DESC")
}

func (r *contentRepository) ListLikedBy(ctx context.Context, userID uint, filter ContentFilter) ([]models.ContentItem, int64, error) {
	filter = filter.normalized()
	q := r.db.WithContext(ctx).Model(&models.ContentItem{}).
		Joins("JOIN likes ON likes.content_id = content_items.id").
		Where("likes.user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("content_items.type = ?", filter.Type)
	}
	return r.page(ctx, q, filter, "likes.created_at DESC")
}

// page applies count + offset pagination and hydrates the computed fields.
func (r *contentRepository) page(ctx context.Context, q *gorm.DB, filter ContentFilter, order string) ([]models.ContentItem, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var items []models.ContentItem
	err := q.Preload("User").
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if err := r.populateAll(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Trending returns the most-liked items of a type (all types when empty),
// ranked by like count, then views, then recency.
func (r *contentRepository) Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := r.db.WithContext(ctx).Model(&models.ContentItem{}).
		Select("content_items.*, COUNT(likes.id) AS like_total").
		Joins("LEFT JOIN likes ON likes.content_id = content_items.id").
		Group("content_items.id")
	if contentType != "" {
		q = q.Where("content_items.type = ?", contentType)
	}

	var items []models.ContentItem
	err := q.Preload("User").
		Order("like_total DESC, content_items.views DESC, content_items.created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.populateAll(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ToggleLike flips the user's like on an item. It returns true when the item
// ends up liked, false when the like was removed.
func (r *contentRepository) ToggleLike(ctx context.Context, userID, contentID uint) (bool, error) {
	var exists int64
	err := r.db.WithContext(ctx).Model(&models.ContentItem{}).Where("id = ?", contentID).Count(&exists).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if exists == 0 {
		return false, models.NewNotFoundError("Content", contentID)
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := models.Like{UserID: userID, ContentID: contentID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		// A concurrent toggle may have inserted first; the item is liked either way.
		if isUniqueConstraintError(err) {
			return true, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *contentRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contentRepository) populateDetails(ctx context.Context, item *models.ContentItem) error {
	items := []models.ContentItem{*item}
	if err := r.populateAll(ctx, items); err != nil {
		return err
	}
	*item = items[0]
	return nil
}

// populateAll fills the computed author and like fields for a batch of items
// with a single likes query.
func (r *contentRepository) populateAll(ctx context.Context, items []models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}

	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("content_id IN ?", ids).
		Order("created_at ASC").
		Find(&likes).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	byContent := make(map[uint][]uint, len(items))
	for _, l := range likes {
		byContent[l.ContentID] = append(byContent[l.ContentID], l.UserID)
	}

	for i := range items {
		item := &items[i]
		if item.User.ID != 0 {
			item.Author = models.Author{ID: item.User.ID, Username: item.User.Username}
		} else {
			// User row may be missing when loaded without Preload.
			var user models.User
			if err := r.db.WithContext(ctx).Select("id, username").First(&user, item.UserID).Error; err == nil {
				item.Author = models.Author{ID: user.ID, Username: user.Username}
			}
		}
		item.Likes = byContent[item.ID]
		if item.Likes == nil {
			item.Likes = []uint{}
		}
		item.LikeCount = len(item.Likes)
	}
	return nil
}
