package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/validation"
)

type AuthorHandler struct {
	db *gorm.DB
}

func NewAuthorHandler(db *gorm.DB) *AuthorHandler {
	return &AuthorHandler{db: db}
}

type CreateAuthorRequest struct {
	FirstName   string      `json:"first_name" binding:"required"`
	LastName    string      `json:"last_name" binding:"required"`
	DateOfBirth model.Date  `json:"date_of_birth" binding:"required"`
	DateOfDeath *model.Date `json:"date_of_death"`
	Nationality string      `json:"nationality" binding:"required"`
}

type UpdateAuthorRequest struct {
	FirstName   *string     `json:"first_name" binding:"omitempty,min=1"`
	LastName    *string     `json:"last_name" binding:"omitempty,min=1"`
	DateOfBirth *model.Date `json:"date_of_birth"`
	// An explicit null clears the death date.
	DateOfDeath model.NullableDate `json:"date_of_death"`
	Nationality *string            `json:"nationality" binding:"omitempty,min=1"`
}

type AuthorRead struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	DateOfBirth model.Date  `json:"date_of_birth"`
	DateOfDeath *model.Date `json:"date_of_death"`
	Nationality string      `json:"nationality"`
}

type AuthorReadWithBooks struct {
	AuthorRead
	Books []BookRead `json:"books"`
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/authors/", h.ListAuthors)
	r.GET("/author/:id", h.GetAuthorByID)
	r.POST("/author/", h.CreateAuthor)
	r.PUT("/author/:id", h.UpdateAuthor)
	r.DELETE("/author/:id", h.DeleteAuthor)
}

// ListAuthors godoc
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Success      200  {array}  AuthorRead
// @Router       /authors/ [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	var authors []model.Author
	if err := h.db.WithContext(c.Request.Context()).Find(&authors).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list authors")
		return
	}

	res := make([]AuthorRead, 0, len(authors))
	for _, a := range authors {
		res = append(res, toAuthorRead(a))
	}

	c.JSON(http.StatusOK, res)
}

// GetAuthorByID godoc
// @Summary      Get an author with their books
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorReadWithBooks
// @Failure      404  {object}  map[string]string
// @Router       /author/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "author")
	if !ok {
		return
	}

	var author model.Author
	err := h.db.WithContext(c.Request.Context()).
		Preload("Books").
		First(&author, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Author", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch author")
		return
	}

	c.JSON(http.StatusOK, toAuthorReadWithBooks(author))
}

// CreateAuthor godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest  true  "Author to create"
// @Success      200      {object}  AuthorRead
// @Failure      422      {object}  validation.ErrorResponse
// @Router       /author/ [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author := model.Author{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth.Time,
		DateOfDeath: req.DateOfDeath.Ptr(),
		Nationality: req.Nationality,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&author).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to create author")
		return
	}

	c.JSON(http.StatusOK, toAuthorRead(author))
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Only fields present in the payload are changed.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Author ID"
// @Param        payload  body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200      {object}  AuthorRead
// @Failure      404      {object}  map[string]string
// @Router       /author/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "author")
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var author model.Author
	if err := h.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Author", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch author")
		return
	}

	if req.FirstName != nil {
		author.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		author.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		author.DateOfBirth = req.DateOfBirth.Time
	}
	if req.DateOfDeath.Set {
		author.DateOfDeath = req.DateOfDeath.Value.Ptr()
	}
	if req.Nationality != nil {
		author.Nationality = *req.Nationality
	}

	if err := h.db.WithContext(ctx).Save(&author).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to update author")
		return
	}

	c.JSON(http.StatusOK, toAuthorRead(author))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Tags         authors
// @Produce      json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /author/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "author")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author := model.Author{ID: id}
		if err := tx.Model(&author).Association("Books").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&model.Author{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Author", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to delete author")
		return
	}

	deletedMessage(c, "Author", id)
}
