package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePersonRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=120"`
	Phone     string  `json:"phone"      validate:"required,min=8,max=20"`
	BirthDate string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Email     *string `json:"email"      validate:"omitempty,email"`
}

type UpdatePersonRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=120"`
	Phone     string  `json:"phone"      validate:"required,min=8,max=20"`
	BirthDate string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Email     *string `json:"email"      validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PersonResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	BirthDate string  `json:"birth_date"`
	Email     *string `json:"email"`
}

type PersonListResponse struct {
	Data []PersonResponse `json:"data"`
	Meta PageMeta         `json:"meta"`
}
