package handler

import (
	"net/http"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/apierror"
	"github.com/mathews-augusto-alves/library-api/internal/dto"
	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	uc usecase.PersonUseCase
}

func NewPersonHandler(uc usecase.PersonUseCase) *PersonHandler {
	return &PersonHandler{uc: uc}
}

func (h *PersonHandler) Create(c *gin.Context) {
	var req dto.CreatePersonRequest
	if !bindAndValidate(c, &req) {
		return
	}
	person := personFromRequest(req.Name, req.Phone, req.BirthDate, req.Email)
	created, err := h.uc.Create(c.Request.Context(), person)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, personToResponse(created))
}

func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	person, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, personToResponse(person))
}

// Search looks up the single person registered under the given email.
func (h *PersonHandler) Search(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, apierror.New("email query parameter is required"))
		return
	}
	person, err := h.uc.FindByEmail(c.Request.Context(), email)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, apierror.NewCoded("person_not_found", "no person with that email"))
		return
	}
	c.JSON(http.StatusOK, personToResponse(person))
}

// List serves paginated people ordered by name.
func (h *PersonHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid pagination params"))
		return
	}
	q.Normalize()

	people, total, err := h.uc.List(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	resp := dto.PersonListResponse{
		Data: make([]dto.PersonResponse, 0, len(people)),
		Meta: dto.NewPageMeta(q.Page, q.Size, total),
	}
	for i := range people {
		resp.Data = append(resp.Data, personToResponse(&people[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePersonRequest
	if !bindAndValidate(c, &req) {
		return
	}
	person := personFromRequest(req.Name, req.Phone, req.BirthDate, req.Email)
	updated, err := h.uc.Update(c.Request.Context(), id, person)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, personToResponse(updated))
}

func (h *PersonHandler) Delete(c *gin.Context) {
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

// personFromRequest builds the model; birth date format was already checked
// by the datetime validator tag.
func personFromRequest(name, phone, birthDate string, email *string) *model.Person {
	bd, _ := time.Parse("2006-01-02", birthDate)
	return &model.Person{Name: name, Phone: phone, BirthDate: bd, Email: email}
}
