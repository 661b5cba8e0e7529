package repository

import (
	"context"
	"regexp"
	"testing"

	"yatube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Text: "First post", AuthorID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// main query
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "author_id", "group_id"}).
				AddRow(1, "Hello", 10, nil))

		// preload author - GORM preloads after main query
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "leo"))

		post, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Hello", post.Text)
		assert.Equal(t, "leo", post.Author.Username)
		assert.Nil(t, post.Group)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(77, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		post, err := repo.GetByID(ctx, 77)
		assert.Nil(t, post)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("CountAll", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

		count, err := repo.CountAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(13), count)
	})

	t.Run("CountByAuthor", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE author_id = $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountByAuthor(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("CountByGroup", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE group_id = $1`)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByGroup(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	groupID := uint(2)
	post := &models.Post{ID: 1, Text: "Edited", GroupID: &groupID}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
