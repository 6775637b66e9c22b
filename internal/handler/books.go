package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"
	"github.com/mathews-augusto-alves/library-api/internal/cache"
	"github.com/mathews-augusto-alves/library-api/internal/dto"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	uc    usecase.LoanUseCase
	cache *cache.Cache
}

func NewBookHandler(uc usecase.LoanUseCase, c *cache.Cache) *BookHandler {
	return &BookHandler{uc: uc, cache: c}
}

// Create registers a new book, available for loan immediately.
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	book, err := h.uc.RegisterBook(c.Request.Context(), req.Title, req.Author)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.cache.InvalidatePrefix(c.Request.Context(), cache.BooksListPrefix)
	c.JSON(http.StatusCreated, bookToResponse(book))
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	book, err := h.uc.GetBook(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(book))
}

// List serves paginated books, cached per (page, size) for the configured TTL.
func (h *BookHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid pagination params"))
		return
	}
	q.Normalize()

	ctx := c.Request.Context()
	key := fmt.Sprintf("%s:page:%d:size:%d", cache.BooksListPrefix, q.Page, q.Size)

	var resp dto.BookListResponse
	if h.cache.GetJSON(ctx, key, &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	books, total, err := h.uc.ListBooks(ctx, q.Page, q.Size)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp = dto.BookListResponse{
		Data: make([]dto.BookResponse, 0, len(books)),
		Meta: dto.NewPageMeta(q.Page, q.Size, total),
	}
	for i := range books {
		resp.Data = append(resp.Data, bookToResponse(&books[i]))
	}
	h.cache.SetJSON(ctx, key, resp)
	c.JSON(http.StatusOK, resp)
}

// pathID parses the :id path segment; writes a 400 on garbage input.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
