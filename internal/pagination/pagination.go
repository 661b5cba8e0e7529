// Package pagination slices ordered collections into fixed-size pages.
package pagination

// Page holds one page of items plus navigation metadata.
type Page[T any] struct {
	Items       []T
	Number      int
	Size        int
	TotalItems  int64
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// NextNumber returns the following page number. Only meaningful when HasNext.
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// PreviousNumber returns the preceding page number. Only meaningful when HasPrevious.
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// TotalPages computes the page count for a collection. An empty collection
// still has one (empty) page.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 {
		return 1
	}
	pages := int((totalItems + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp normalizes a requested page number into [1, totalPages].
// Out-of-range requests land on the nearest valid page rather than erroring.
func Clamp(number, totalPages int) int {
	if number < 1 {
		return 1
	}
	if number > totalPages {
		return totalPages
	}
	return number
}

// Offset returns the item offset for a (clamped) page number.
func Offset(number, size int) int {
	return (number - 1) * size
}

// New assembles a Page from already-fetched items and collection totals.
// number must already be clamped.
func New[T any](items []T, number, size int, totalItems int64) Page[T] {
	totalPages := TotalPages(totalItems, size)
	return Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
