package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BorrowRequest struct {
	BookID   uint `json:"book_id"   validate:"required,min=1"`
	PersonID uint `json:"person_id" validate:"required,min=1"`
}

// LoanFilter binds the loan listing query. Status is parsed into the typed
// model.LoanStatus before it reaches the repository.
type LoanFilter struct {
	Page   int    `form:"page,default=1"  validate:"min=1"`
	Size   int    `form:"size,default=10" validate:"min=1,max=20"`
	Status string `form:"status"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LoanResponse surfaces the wire-level loan record. Timestamps are RFC 3339
// with the configured zone offset; returned_at is null while the loan is
// active.
type LoanResponse struct {
	ID         uint         `json:"id"`
	BookID     uint         `json:"book_id"`
	PersonID   uint         `json:"person_id"`
	UserID     uint         `json:"user_id"`
	LoanedAt   string       `json:"loaned_at"`
	ReturnedAt *string      `json:"returned_at"`
	Book       *BookBrief   `json:"book,omitempty"`
	Person     *PersonBrief `json:"person,omitempty"`
}

type BookBrief struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type PersonBrief struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

type LoanListResponse struct {
	Data []LoanResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}
