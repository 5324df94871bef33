package service

import (
	"context"
	"testing"

	"creationity/internal/cache"
	"creationity/internal/models"
	"creationity/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	createFn         func(context.Context, *models.ContentItem) error
	getByIDFn        func(context.Context, uint) (*models.ContentItem, error)
	updateFn         func(context.Context, *models.ContentItem) error
	deleteFn         func(context.Context, uint) error
	listFn           func(context.Context, repository.ContentFilter) ([]models.ContentItem, int64, error)
	listByUserFn     func(context.Context, uint, repository.ContentFilter) ([]models.ContentItem, int64, error)
	listLikedByFn    func(context.Context, uint, repository.ContentFilter) ([]models.ContentItem, int64, error)
	trendingFn       func(context.Context, string, int) ([]models.ContentItem, error)
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
	incrementViewsFn func(context.Context, uint) error
}

func (s *contentRepoStub) Create(ctx context.Context, item *models.ContentItem) error {
	return s.createFn(ctx, item)
}
func (s *contentRepoStub) GetByID(ctx context.Context, id uint) (*models.ContentItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *contentRepoStub) Update(ctx context.Context, item *models.ContentItem) error {
	return s.updateFn(ctx, item)
}
func (s *contentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *contentRepoStub) List(ctx context.Context, f repository.ContentFilter) ([]models.ContentItem, int64, error) {
	return s.listFn(ctx, f)
}
func (s *contentRepoStub) ListByUser(ctx context.Context, userID uint, f repository.ContentFilter) ([]models.ContentItem, int64, error) {
	return s.listByUserFn(ctx, userID, f)
}
func (s *contentRepoStub) ListLikedBy(ctx context.Context, userID uint, f repository.ContentFilter) ([]models.ContentItem, int64, error) {
	return s.listLikedByFn(ctx, userID, f)
}
func (s *contentRepoStub) Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error) {
	return s.trendingFn(ctx, contentType, limit)
}
func (s *contentRepoStub) ToggleLike(ctx context.Context, userID, contentID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, contentID)
}
func (s *contentRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopContentRepo() *contentRepoStub {
	return &contentRepoStub{
		createFn:  func(_ context.Context, _ *models.ContentItem) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.ContentItem, error) { return &models.ContentItem{}, nil },
		updateFn:  func(_ context.Context, _ *models.ContentItem) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.ContentFilter) ([]models.ContentItem, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ repository.ContentFilter) ([]models.ContentItem, int64, error) {
			return nil, 0, nil
		},
		listLikedByFn: func(_ context.Context, _ uint, _ repository.ContentFilter) ([]models.ContentItem, int64, error) {
			return nil, 0, nil
		},
		trendingFn:       func(_ context.Context, _ string, _ int) ([]models.ContentItem, error) { return nil, nil },
		toggleLikeFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCreateContent_Validation(t *testing.T) {
	svc := NewContentService(noopContentRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateContentInput
		wantMsg string
	}{
		{
			name:    "invalid type",
			input:   CreateContentInput{UserID: 1, Type: "riddle", Title: "t", Content: "c"},
			wantMsg: "Invalid content type",
		},
		{
			name:    "missing title",
			input:   CreateContentInput{UserID: 1, Type: models.TypeJoke, Content: "c"},
			wantMsg: "Title is required",
		},
		{
			name:    "missing content",
			input:   CreateContentInput{UserID: 1, Type: models.TypeJoke, Title: "t"},
			wantMsg: "Content is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := svc.CreateContent(ctx, tt.input)
			assert.Nil(t, item)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestCreateContent_Success(t *testing.T) {
	repo := noopContentRepo()
	var created *models.ContentItem
	repo.createFn = func(_ context.Context, item *models.ContentItem) error {
		item.ID = 42
		created = item
		return nil
	}

	svc := NewContentService(repo)
	item, err := svc.CreateContent(context.Background(), CreateContentInput{
		UserID:   7,
		Type:     models.TypePoem,
		Title:    "Autumn",
		Content:  "Leaves drift down",
		Category: "Nature",
		Tags:     []string{"seasons"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), item.ID)
	assert.Equal(t, uint(7), created.UserID)
	assert.Equal(t, models.TypePoem, created.Type)
}

func TestUpdateContent_AuthorOnly(t *testing.T) {
	repo := noopContentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.ContentItem, error) {
		return &models.ContentItem{ID: id, UserID: 1, Type: models.TypeJoke}, nil
	}

	svc := NewContentService(repo)
	_, err := svc.UpdateContent(context.Background(), UpdateContentInput{
		UserID: 2, ID: 5, Title: "t", Content: "c",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestUpdateContent_TypeAndAuthorUnchanged(t *testing.T) {
	repo := noopContentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.ContentItem, error) {
		return &models.ContentItem{ID: id, UserID: 1, Type: models.TypeStory, Title: "old", Content: "old"}, nil
	}
	var saved *models.ContentItem
	repo.updateFn = func(_ context.Context, item *models.ContentItem) error {
		saved = item
		return nil
	}

	svc := NewContentService(repo)
	_, err := svc.UpdateContent(context.Background(), UpdateContentInput{
		UserID: 1, ID: 5, Title: "new title", Content: "new content", Category: "Mystery",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeStory, saved.Type)
	assert.Equal(t, uint(1), saved.UserID)
	assert.Equal(t, "new title", saved.Title)
}

func TestDeleteContent_AuthorOnly(t *testing.T) {
	repo := noopContentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.ContentItem, error) {
		return &models.ContentItem{ID: id, UserID: 1}, nil
	}
	deleted := false
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewContentService(repo)

	err := svc.DeleteContent(context.Background(), 2, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteContent(context.Background(), 1, 5))
	assert.True(t, deleted)
}

func TestListContent_RejectsUnknownType(t *testing.T) {
	svc := NewContentService(noopContentRepo())
	_, _, err := svc.ListContent(context.Background(), ListContentInput{Type: "saga"})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestTrending_WarmCacheHonorsRequestedLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	repoCalls := 0
	repo := noopContentRepo()
	repo.trendingFn = func(_ context.Context, contentType string, limit int) ([]models.ContentItem, error) {
		repoCalls++
		assert.Equal(t, 50, limit, "the cache is always filled at full depth")
		items := make([]models.ContentItem, 5)
		for i := range items {
			items[i] = models.ContentItem{ID: uint(i + 1), Type: contentType, Likes: []uint{}}
		}
		return items, nil
	}
	svc := NewContentService(repo)

	items, err := svc.Trending(context.Background(), models.TypeJoke, 10)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	// a smaller limit served from the warm cache must not return the full list
	items, err = svc.Trending(context.Background(), models.TypeJoke, 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, 1, repoCalls)
}

func TestToggleLike_ReturnsRefreshedItem(t *testing.T) {
	repo := noopContentRepo()
	repo.toggleLikeFn = func(_ context.Context, userID, contentID uint) (bool, error) {
		return true, nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.ContentItem, error) {
		return &models.ContentItem{ID: id, Type: models.TypeJoke, Likes: []uint{7}, LikeCount: 1}, nil
	}

	svc := NewContentService(repo)
	item, err := svc.ToggleLike(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, item.LikeCount)
	assert.Equal(t, []uint{7}, item.Likes)
}
