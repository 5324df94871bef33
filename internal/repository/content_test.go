package repository

import (
	"context"
	"regexp"
	"testing"

	"creationity/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestContentRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	// main query
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "content_items" WHERE "content_items"."id" = $1 AND "content_items"."deleted_at" IS NULL ORDER BY "content_items"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "title", "content", "user_id", "views"}).
			AddRow(1, "joke", "Why did the gopher cross the road", "To get to the other routine", 10, 4))

	// preload author
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "gopherfan"))

	// batch likes load
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "likes" WHERE content_id IN ($1) ORDER BY created_at ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content_id"}).
			AddRow(1, 2, 1).
			AddRow(2, 3, 1))

	item, err := repo.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Why did the gopher cross the road", item.Title)
	assert.Equal(t, uint(10), item.Author.ID)
	assert.Equal(t, "gopherfan", item.Author.Username)
	assert.Equal(t, []uint{2, 3}, item.Likes)
	assert.Equal(t, 2, item.LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "content_items" WHERE "content_items"."id" = $1`)).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	item, err := repo.GetByID(ctx, 99)
	assert.Nil(t, item)

	var appErr *models.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "content_items" WHERE type = $1 AND category = $2 AND "content_items"."deleted_at" IS NULL`)).
		WithArgs("joke", "Dark").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "content_items" WHERE type = $1 AND category = $2 AND "content_items"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $3`)).
		WithArgs("joke", "Dark", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "title", "category", "user_id"}).
			AddRow(5, "joke", "A dark one", "Dark", 10))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "gopherfan"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "likes" WHERE content_id IN ($1) ORDER BY created_at ASC`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content_id"}))

	items, total, err := repo.List(ctx, ContentFilter{Type: "joke", Category: "Dark"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "A dark one", items[0].Title)
		assert.NotNil(t, items[0].Likes, "likes must serialize as [] not null")
		assert.Equal(t, 0, items[0].LikeCount)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_ToggleLike(t *testing.T) {
	t.Run("adds like when absent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewContentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "content_items" WHERE id = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND content_id = $2`)).
			WithArgs(7, 3).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		liked, err := repo.ToggleLike(context.Background(), 7, 3)
		assert.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes like when present", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewContentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "content_items" WHERE id = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND content_id = $2`)).
			WithArgs(7, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := repo.ToggleLike(context.Background(), 7, 3)
		assert.NoError(t, err)
		assert.False(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing item is not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewContentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "content_items" WHERE id = $1`)).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		_, err := repo.ToggleLike(context.Background(), 7, 99)
		var appErr *models.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, "NOT_FOUND", appErr.Code)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContentRepository_IncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "content_items" SET "views"=views + 1 WHERE id = $1 AND "content_items"."deleted_at" IS NULL`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementViews(context.Background(), 4)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
