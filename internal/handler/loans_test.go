package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/cache"
	"github.com/mathews-augusto-alves/library-api/internal/middleware"
	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoanUC scripts one outcome per operation so each test controls exactly
// what the handler sees.
type stubLoanUC struct {
	borrowLoan *model.Loan
	borrowErr  error
	returnLoan *model.Loan
	returnErr  error
	activeLoan *model.Loan
	loans      []model.Loan
	total      int64

	gotBookID   uint
	gotPersonID uint
	gotUserID   uint
	gotStatus   model.LoanStatus
}

func (s *stubLoanUC) RegisterBook(ctx context.Context, title, author string) (*model.Book, error) {
	return &model.Book{ID: 1, Title: title, Author: author, Available: true}, nil
}
func (s *stubLoanUC) GetBook(ctx context.Context, bookID uint) (*model.Book, error) {
	return nil, &service.BookNotFoundError{BookID: bookID}
}
func (s *stubLoanUC) ListBooks(ctx context.Context, page, size int) ([]model.Book, int64, error) {
	return nil, 0, nil
}
func (s *stubLoanUC) Borrow(ctx context.Context, bookID, personID, userID uint) (*model.Loan, error) {
	s.gotBookID, s.gotPersonID, s.gotUserID = bookID, personID, userID
	return s.borrowLoan, s.borrowErr
}
func (s *stubLoanUC) Return(ctx context.Context, bookID uint) (*model.Loan, error) {
	s.gotBookID = bookID
	return s.returnLoan, s.returnErr
}
func (s *stubLoanUC) ActiveLoan(ctx context.Context, bookID uint) (*model.Loan, error) {
	return s.activeLoan, nil
}
func (s *stubLoanUC) ListLoans(ctx context.Context, page, size int, status model.LoanStatus) ([]model.Loan, int64, error) {
	s.gotStatus = status
	return s.loans, s.total, nil
}

func loanRouter(uc *stubLoanUC) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLoanHandler(uc, cache.New(nil, 0))

	r := gin.New()
	authed := func(c *gin.Context) { c.Set(middleware.UserIDKey, uint(3)) }
	r.POST("/v1/books/loans", authed, h.Borrow)
	r.PUT("/v1/books/:id/return", authed, h.Return)
	r.GET("/v1/loans/active/:id", authed, h.ActiveLoan)
	r.GET("/v1/loans", authed, h.List)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestBorrowEndpointCreated(t *testing.T) {
	uc := &stubLoanUC{borrowLoan: &model.Loan{
		ID: 10, BookID: 1, PersonID: 7, UserID: 3, LoanedAt: time.Now(),
	}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/v1/books/loans", `{"book_id":1,"person_id":7}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), uc.gotBookID)
	assert.Equal(t, uint(7), uc.gotPersonID)
	assert.Equal(t, uint(3), uc.gotUserID, "acting user must come from the token, not the body")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp["returned_at"])
}

func TestBorrowEndpointValidation(t *testing.T) {
	r := loanRouter(&stubLoanUC{})

	w := doJSON(t, r, http.MethodPost, "/v1/books/loans", `{"book_id":1}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBorrowEndpointBookNotFound(t *testing.T) {
	uc := &stubLoanUC{borrowErr: &service.BookNotFoundError{BookID: 42}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/v1/books/loans", `{"book_id":42,"person_id":7}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "book_not_found", errCode(t, w))
}

func TestBorrowEndpointConflict(t *testing.T) {
	uc := &stubLoanUC{borrowErr: &service.BookUnavailableError{BookID: 1}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodPost, "/v1/books/loans", `{"book_id":1,"person_id":7}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "book_unavailable", errCode(t, w))
}

func TestReturnEndpointOK(t *testing.T) {
	now := time.Now()
	uc := &stubLoanUC{returnLoan: &model.Loan{
		ID: 10, BookID: 1, PersonID: 7, UserID: 3, LoanedAt: now.Add(-time.Hour), ReturnedAt: &now,
	}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodPut, "/v1/books/1/return", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), uc.gotBookID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["returned_at"])
}

func TestReturnEndpointNoActiveLoan(t *testing.T) {
	uc := &stubLoanUC{returnErr: &service.NoActiveLoanError{BookID: 1}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodPut, "/v1/books/1/return", "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no_active_loan", errCode(t, w))
}

func TestReturnEndpointBadID(t *testing.T) {
	r := loanRouter(&stubLoanUC{})

	w := doJSON(t, r, http.MethodPut, "/v1/books/abc/return", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActiveLoanEndpoint(t *testing.T) {
	uc := &stubLoanUC{activeLoan: &model.Loan{ID: 10, BookID: 1, LoanedAt: time.Now()}}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/v1/loans/active/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
}

func TestActiveLoanEndpointNone(t *testing.T) {
	r := loanRouter(&stubLoanUC{})

	w := doJSON(t, r, http.MethodGet, "/v1/loans/active/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Active)
}

func TestListLoansStatusFilter(t *testing.T) {
	uc := &stubLoanUC{}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/v1/loans?status=returned", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.LoanStatusReturned, uc.gotStatus)

	w = doJSON(t, r, http.MethodGet, "/v1/loans", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.LoanStatusActive, uc.gotStatus, "empty status defaults to active")
}

func TestListLoansRejectsUnknownStatus(t *testing.T) {
	r := loanRouter(&stubLoanUC{})

	w := doJSON(t, r, http.MethodGet, "/v1/loans?status=overdue", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", errCode(t, w))
}

func TestListLoansPaginationMeta(t *testing.T) {
	uc := &stubLoanUC{loans: make([]model.Loan, 10), total: 45}
	r := loanRouter(uc)

	w := doJSON(t, r, http.MethodGet, "/v1/loans?page=2&size=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Meta struct {
			Page        int   `json:"page"`
			Total       int64 `json:"total"`
			TotalPages  int   `json:"total_pages"`
			HasNext     bool  `json:"has_next"`
			HasPrevious bool  `json:"has_previous"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
	assert.True(t, resp.Meta.HasPrevious)
}
