package repository

import (
	"context"
	"regexp"
	"testing"

	"yatube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGroupRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" WHERE slug = $1`)).
			WithArgs("cats", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}).
				AddRow(1, "Cats", "cats"))

		group, err := repo.GetBySlug(ctx, "cats")
		assert.NoError(t, err)
		assert.Equal(t, "Cats", group.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" WHERE slug = $1`)).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		group, err := repo.GetBySlug(ctx, "missing")
		assert.Nil(t, group)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGroupRepository_ExistsByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		groupID  uint
		count    int64
		expected bool
	}{
		{name: "Exists", groupID: 1, count: 1, expected: true},
		{name: "Missing", groupID: 42, count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "groups" WHERE id = $1`)).
				WithArgs(tt.groupID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			ok, err := repo.ExistsByID(ctx, tt.groupID)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "groups" ORDER BY title ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}).
			AddRow(1, "Cats", "cats").
			AddRow(2, "Dogs", "dogs"))

	groups, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "cats", groups[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
