package dto

// PaginatedResponse is the page-number envelope used by every paginated list.
type PaginatedResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPaginatedResponse builds the envelope; pageURL renders the link of a
// given page number.
func NewPaginatedResponse[T any](results []T, count int64, page, pageSize int, pageURL func(page int) string) *PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}
	resp := &PaginatedResponse[T]{
		Count:   count,
		Results: results,
	}
	if int64(page*pageSize) < count {
		next := pageURL(page + 1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(page - 1)
		resp.Previous = &prev
	}
	return resp
}

// TotalPages returns the number of pages needed for count items, at least one.
func TotalPages(count int64, pageSize int) int {
	if count == 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}
