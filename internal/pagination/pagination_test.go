package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		size       int
		expected   int
	}{
		{name: "Empty collection still has one page", totalItems: 0, size: 10, expected: 1},
		{name: "Exact fit", totalItems: 20, size: 10, expected: 2},
		{name: "Remainder adds a page", totalItems: 21, size: 10, expected: 3},
		{name: "Fewer than one page", totalItems: 3, size: 10, expected: 1},
		{name: "Zero size", totalItems: 50, size: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPages(tt.totalItems, tt.size))
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		totalPages int
		expected   int
	}{
		{name: "In range", number: 2, totalPages: 3, expected: 2},
		{name: "Below range", number: 0, totalPages: 3, expected: 1},
		{name: "Negative", number: -5, totalPages: 3, expected: 1},
		{name: "Above range", number: 99, totalPages: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.number, tt.totalPages))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 45, Offset(10, 5))
}

func TestNew(t *testing.T) {
	t.Run("Middle page", func(t *testing.T) {
		page := New([]string{"a", "b"}, 2, 2, 5)
		assert.Equal(t, 2, page.Number)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrevious)
		assert.Equal(t, 3, page.NextNumber())
		assert.Equal(t, 1, page.PreviousNumber())
	})

	t.Run("Single page", func(t *testing.T) {
		page := New([]int{1, 2, 3}, 1, 10, 3)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
	})

	t.Run("Empty collection", func(t *testing.T) {
		page := New([]int(nil), 1, 10, 0)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 1, page.TotalPages)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
	})
}
