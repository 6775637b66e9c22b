package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"
	"github.com/mathews-augusto-alves/library-api/internal/dto"
	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeDomainError maps typed domain failures to status codes and stable
// machine-readable codes. Anything unrecognized is an infrastructure error:
// it is logged by the error-handler middleware and surfaced as a plain 500.
func writeDomainError(c *gin.Context, err error) {
	var (
		bookNotFound    *service.BookNotFoundError
		personNotFound  *service.PersonNotFoundError
		userNotFound    *service.UserNotFoundError
		bookUnavailable *service.BookUnavailableError
		noActiveLoan    *service.NoActiveLoanError
		emailTaken      *service.EmailTakenError
		invalidData     *service.InvalidDataError
		invalidCreds    *service.InvalidCredentialsError
	)
	switch {
	case errors.As(err, &bookNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("book_not_found", err.Error()))
	case errors.As(err, &personNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("person_not_found", err.Error()))
	case errors.As(err, &userNotFound):
		c.JSON(http.StatusNotFound, apierror.NewCoded("user_not_found", err.Error()))
	case errors.As(err, &bookUnavailable):
		c.JSON(http.StatusConflict, apierror.NewCoded("book_unavailable", err.Error()))
	case errors.As(err, &noActiveLoan):
		c.JSON(http.StatusConflict, apierror.NewCoded("no_active_loan", err.Error()))
	case errors.As(err, &emailTaken):
		c.JSON(http.StatusConflict, apierror.NewCoded("email_taken", err.Error()))
	case errors.As(err, &invalidData):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewCoded("invalid_data", err.Error()))
	case errors.As(err, &invalidCreds):
		c.JSON(http.StatusUnauthorized, apierror.NewCoded("invalid_credentials", err.Error()))
	default:
		_ = c.Error(err)
	}
}

// ─── model → response mapping (explicit, field by field) ─────────────────────

func bookToResponse(b *model.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Available: b.Available,
	}
}

func personToResponse(p *model.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		BirthDate: p.BirthDate.Format("2006-01-02"),
		Email:     p.Email,
	}
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func loanToResponse(l *model.Loan) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:       l.ID,
		BookID:   l.BookID,
		PersonID: l.PersonID,
		UserID:   l.UserID,
		LoanedAt: l.LoanedAt.Format(time.RFC3339),
	}
	if l.ReturnedAt != nil {
		s := l.ReturnedAt.Format(time.RFC3339)
		resp.ReturnedAt = &s
	}
	if l.Book != nil {
		resp.Book = &dto.BookBrief{ID: l.Book.ID, Title: l.Book.Title, Author: l.Book.Author}
	}
	if l.Person != nil {
		resp.Person = &dto.PersonBrief{
			ID:    l.Person.ID,
			Name:  l.Person.Name,
			Phone: l.Person.Phone,
			Email: l.Person.Email,
		}
	}
	return resp
}
