package service

import (
	"context"
	"time"

	"creationity/internal/cache"
	"creationity/internal/models"
	"creationity/internal/observability"
	"creationity/internal/repository"
)

// trendingTTL bounds how stale the cached trending lists may get.
const trendingTTL = 5 * time.Minute

// trendingCacheSize is how many ranked rows each cached trending list holds.
// Requests are answered by slicing the cached list, so one entry serves
// every limit up to this size and invalidation stays a plain key delete.
const trendingCacheSize = 50

type ContentService struct {
	contentRepo repository.ContentRepository
}

type CreateContentInput struct {
	UserID   uint
	Type     string
	Title    string
	Content  string
	Category string
	Tags     []string
}

type UpdateContentInput struct {
	UserID   uint
	ID       uint
	Title    string
	Content  string
	Category string
	Tags     []string
}

type ListContentInput struct {
	Type     string
	Category string
	Page     int
	Limit    int
}

func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

func validateContentFields(title, content string) error {
	const maxTitleLen = 200
	const maxContentLen = 20000

	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 20000 characters)")
	}
	return nil
}

func (s *ContentService) CreateContent(ctx context.Context, in CreateContentInput) (*models.ContentItem, error) {
	if !models.IsValidContentType(in.Type) {
		return nil, models.NewValidationError("Invalid content type")
	}
	if err := validateContentFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	item := &models.ContentItem{
		Type:     in.Type,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Tags:     in.Tags,
		UserID:   in.UserID,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	observability.ContentCreatedTotal.WithLabelValues(in.Type).Inc()
	s.invalidateTrending(ctx, in.Type)
	return item, nil
}

func (s *ContentService) GetContent(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.contentRepo.GetByID(ctx, id)
}

// UpdateContent applies an edit. Only the author may edit, and the item's
// type and author never change.
func (s *ContentService) UpdateContent(ctx context.Context, in UpdateContentInput) (*models.ContentItem, error) {
	item, err := s.contentRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if item.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("Only the author can edit this content")
	}
	if err := validateContentFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Content = in.Content
	item.Category = in.Category
	item.Tags = in.Tags

	if err := s.contentRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateTrending(ctx, item.Type)
	return item, nil
}

// DeleteContent removes an item. Only the author may delete.
func (s *ContentService) DeleteContent(ctx context.Context, userID, id uint) error {
	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.NewUnauthorizedError("Only the author can delete this content")
	}
	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTrending(ctx, item.Type)
	return nil
}

func (s *ContentService) ListContent(ctx context.Context, in ListContentInput) ([]models.ContentItem, int64, error) {
	if in.Type != "" && !models.IsValidContentType(in.Type) {
		return nil, 0, models.NewValidationError("Invalid content type")
	}
	return s.contentRepo.List(ctx, repository.ContentFilter{
		Type:     in.Type,
		Category: in.Category,
		Page:     in.Page,
		Limit:    in.Limit,
	})
}

func (s *ContentService) ListByUser(ctx context.Context, userID uint, in ListContentInput) ([]models.ContentItem, int64, error) {
	return s.contentRepo.ListByUser(ctx, userID, repository.ContentFilter{
		Type:  in.Type,
		Page:  in.Page,
		Limit: in.Limit,
	})
}

func (s *ContentService) ListLikedBy(ctx context.Context, userID uint, in ListContentInput) ([]models.ContentItem, int64, error) {
	return s.contentRepo.ListLikedBy(ctx, userID, repository.ContentFilter{
		Type:  in.Type,
		Page:  in.Page,
		Limit: in.Limit,
	})
}

// Trending serves the ranked list from Redis when warm and falls back to the
// database on a miss or cache error. The cache always holds the top
// trendingCacheSize rows; the requested limit is applied by slicing, so a
// list warmed by one request is correct for any other limit.
func (s *ContentService) Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error) {
	if contentType != "" && !models.IsValidContentType(contentType) {
		return nil, models.NewValidationError("Invalid content type")
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > trendingCacheSize {
		// oversized requests bypass the cache rather than truncating
		return s.contentRepo.Trending(ctx, contentType, limit)
	}

	key := cache.TrendingKey(contentType)
	var cached []models.ContentItem
	if err := cache.GetJSON(ctx, key, &cached); err == nil {
		return trimTrending(cached, limit), nil
	}

	items, err := s.contentRepo.Trending(ctx, contentType, trendingCacheSize)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, key, items, trendingTTL)
	return trimTrending(items, limit), nil
}

func trimTrending(items []models.ContentItem, limit int) []models.ContentItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// ToggleLike flips the caller's like and returns the refreshed item so the
// response carries the authoritative likes array and count.
func (s *ContentService) ToggleLike(ctx context.Context, userID, contentID uint) (*models.ContentItem, error) {
	liked, err := s.contentRepo.ToggleLike(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	observability.LikeTogglesTotal.WithLabelValues(action).Inc()

	item, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	s.invalidateTrending(ctx, item.Type)
	return item, nil
}

// RecordView bumps the view counter. View recording is best effort; a failure
// never blocks serving the item.
func (s *ContentService) RecordView(ctx context.Context, id uint) {
	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return
	}
	if err := s.contentRepo.IncrementViews(ctx, id); err == nil {
		observability.ContentViewsTotal.WithLabelValues(item.Type).Inc()
	}
}

func (s *ContentService) invalidateTrending(ctx context.Context, contentType string) {
	_ = cache.Invalidate(ctx, cache.TrendingKey(contentType), cache.TrendingKey(""))
}
