package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateBookRequest struct {
	Title  string `json:"title"  validate:"required,min=2,max=200"`
	Author string `json:"author" validate:"required,min=2,max=120"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BookResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

type BookListResponse struct {
	Data []BookResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}
