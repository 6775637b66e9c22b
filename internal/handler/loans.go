package handler

import (
	"fmt"
	"net/http"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"
	"github.com/mathews-augusto-alves/library-api/internal/cache"
	"github.com/mathews-augusto-alves/library-api/internal/dto"
	"github.com/mathews-augusto-alves/library-api/internal/middleware"
	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	uc    usecase.LoanUseCase
	cache *cache.Cache
}

func NewLoanHandler(uc usecase.LoanUseCase, c *cache.Cache) *LoanHandler {
	return &LoanHandler{uc: uc, cache: c}
}

// Borrow creates a loan for an available book. The acting staff user comes
// from the JWT, never from the request body.
func (h *LoanHandler) Borrow(c *gin.Context) {
	var req dto.BorrowRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("missing authenticated user"))
		return
	}

	loan, err := h.uc.Borrow(c.Request.Context(), req.BookID, req.PersonID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.cache.InvalidatePrefix(c.Request.Context(), cache.BooksListPrefix, cache.LoansListPrefix)
	c.JSON(http.StatusCreated, loanToResponse(loan))
}

// Return finalizes the active loan of the book in the path. Responds with the
// finalized loan; a book with no active loan is a conflict, not a no-op.
func (h *LoanHandler) Return(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	loan, err := h.uc.Return(c.Request.Context(), bookID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.cache.InvalidatePrefix(c.Request.Context(), cache.BooksListPrefix, cache.LoansListPrefix)
	c.JSON(http.StatusOK, loanToResponse(loan))
}

// ActiveLoan reports the active loan for a book, if any.
func (h *LoanHandler) ActiveLoan(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	loan, err := h.uc.ActiveLoan(c.Request.Context(), bookID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if loan == nil {
		c.JSON(http.StatusOK, gin.H{"active": false, "loan": nil})
		return
	}
	resp := loanToResponse(loan)
	c.JSON(http.StatusOK, gin.H{"active": true, "loan": resp})
}

// List serves paginated loans filtered by status (active, returned, all).
// Cached per (status, page, size); writes invalidate the whole prefix.
func (h *LoanHandler) List(c *gin.Context) {
	var q dto.LoanFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid pagination params"))
		return
	}
	page := dto.PageQuery{Page: q.Page, Size: q.Size}
	page.Normalize()

	status, err := model.ParseLoanStatus(q.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewCoded("invalid_status", err.Error()))
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("%s:status:%s:page:%d:size:%d", cache.LoansListPrefix, status, page.Page, page.Size)

	var resp dto.LoanListResponse
	if h.cache.GetJSON(ctx, key, &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	loans, total, err := h.uc.ListLoans(ctx, page.Page, page.Size, status)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp = dto.LoanListResponse{
		Data: make([]dto.LoanResponse, 0, len(loans)),
		Meta: dto.NewPageMeta(page.Page, page.Size, total),
	}
	for i := range loans {
		resp.Data = append(resp.Data, loanToResponse(&loans[i]))
	}
	h.cache.SetJSON(ctx, key, resp)
	c.JSON(http.StatusOK, resp)
}
