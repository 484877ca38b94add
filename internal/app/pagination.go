package app

// Page sizes used by the listing services.
const (
	GamesPerPage    = 21
	WishlistPerPage = 9
)

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// Page is a slice of items plus its position in the full listing.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// Paginate returns the given 1-based page of items. Pages below 1 return the
// first page; pages past the end return no items.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	out := make([]T, 0, max(end-start, 0))
	if start < len(items) {
		out = append(out, items[start:end]...)
	}

	return Page[T]{
		Items: out,
		Meta: PageMeta{
			TotalItems:  len(items),
			TotalPages:  (len(items) + size - 1) / size,
			CurrentPage: page,
			PageSize:    size,
		},
	}
}
