package dto

// PageQuery is the shared pagination binding for list endpoints.
// Page size is capped at 20 to keep list-cache entries small.
type PageQuery struct {
	Page int `form:"page,default=1" validate:"min=1"`
	Size int `form:"size,default=10" validate:"min=1,max=20"`
}

// Normalize clamps out-of-range values instead of rejecting them.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 1
	}
	if q.Size > 20 {
		q.Size = 20
	}
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page        int   `json:"page"`
	Size        int   `json:"size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPageMeta derives paging metadata from the total row count.
func NewPageMeta(page, size int, total int64) PageMeta {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return PageMeta{
		Page:        page,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
