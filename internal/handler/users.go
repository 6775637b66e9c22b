package handler

import (
	"net/http"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"
	"github.com/mathews-augusto-alves/library-api/internal/dto"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc usecase.UserUseCase
}

func NewUserHandler(uc usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.uc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid pagination params"))
		return
	}
	q.Normalize()

	users, total, err := h.uc.List(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	resp := dto.UserListResponse{
		Data: make([]dto.UserResponse, 0, len(users)),
		Meta: dto.NewPageMeta(q.Page, q.Size, total),
	}
	for i := range users {
		resp.Data = append(resp.Data, userToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.uc.Update(c.Request.Context(), id, req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
