package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/validation"
)

type CopyHandler struct {
	db *gorm.DB
}

func NewCopyHandler(db *gorm.DB) *CopyHandler {
	return &CopyHandler{db: db}
}

type CreateCopyRequest struct {
	Barcode     string `json:"barcode" binding:"required"`
	Location    string `json:"location" binding:"required"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
	BookID      int64  `json:"book_id" binding:"required"`
}

type UpdateCopyRequest struct {
	Barcode     *string `json:"barcode" binding:"omitempty,min=1"`
	Location    *string `json:"location" binding:"omitempty,min=1"`
	IsAvailable *bool   `json:"is_available"`
	BookID      *int64  `json:"book_id"`
}

type CopyRead struct {
	ID          int64  `json:"id"`
	Barcode     string `json:"barcode"`
	Location    string `json:"location"`
	IsAvailable bool   `json:"is_available"`
	BookID      int64  `json:"book_id"`
}

type CopyReadWithCheckouts struct {
	CopyRead
	Checkouts []CheckoutRead `json:"checkouts"`
}

func (h *CopyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/copies/", h.ListCopies)
	r.GET("/copy/:id", h.GetCopyByID)
	r.POST("/copy/", h.CreateCopy)
	r.PUT("/copy/:id", h.UpdateCopy)
	r.DELETE("/copy/:id", h.DeleteCopy)
}

func (h *CopyHandler) bookExists(c *gin.Context, bookID int64) bool {
	var book model.Book
	err := h.db.WithContext(c.Request.Context()).
		Select("id").
		First(&book, "id = ?", bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Book", bookID)
			return false
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch book")
		return false
	}
	return true
}

// ListCopies godoc
// @Summary      List copies
// @Tags         copies
// @Produce      json
// @Success      200  {array}  CopyRead
// @Router       /copies/ [get]
func (h *CopyHandler) ListCopies(c *gin.Context) {
	var copies []model.Copy
	if err := h.db.WithContext(c.Request.Context()).Find(&copies).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list copies")
		return
	}

	res := make([]CopyRead, 0, len(copies))
	for _, cp := range copies {
		res = append(res, toCopyRead(cp))
	}

	c.JSON(http.StatusOK, res)
}

// GetCopyByID godoc
// @Summary      Get a copy with its checkouts
// @Tags         copies
// @Produce      json
// @Param        id   path      int  true  "Copy ID"
// @Success      200  {object}  CopyReadWithCheckouts
// @Failure      404  {object}  map[string]string
// @Router       /copy/{id} [get]
func (h *CopyHandler) GetCopyByID(c *gin.Context) {
	id, ok := parseIDParam(c, "copy")
	if !ok {
		return
	}

	var copyItem model.Copy
	err := h.db.WithContext(c.Request.Context()).
		Preload("Checkouts").
		First(&copyItem, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Copy", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch copy")
		return
	}

	c.JSON(http.StatusOK, toCopyReadWithCheckouts(copyItem))
}

// CreateCopy godoc
// @Summary      Create a copy
// @Description  The referenced book must exist.
// @Tags         copies
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCopyRequest  true  "Copy to create"
// @Success      200      {object}  CopyRead
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  validation.ErrorResponse
// @Router       /copy/ [post]
func (h *CopyHandler) CreateCopy(c *gin.Context) {
	var req CreateCopyRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if !h.bookExists(c, req.BookID) {
		return
	}

	copyItem := model.Copy{
		Barcode:     req.Barcode,
		Location:    req.Location,
		IsAvailable: *req.IsAvailable,
		BookID:      req.BookID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&copyItem).Error; err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict,
				fmt.Sprintf("Copy with barcode %s already exists", req.Barcode))
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to create copy")
		return
	}

	c.JSON(http.StatusOK, toCopyRead(copyItem))
}

// UpdateCopy godoc
// @Summary      Update a copy
// @Description  Only fields present in the payload are changed.
// @Tags         copies
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Copy ID"
// @Param        payload  body      UpdateCopyRequest  true  "Fields to update"
// @Success      200      {object}  CopyRead
// @Failure      404      {object}  map[string]string
// @Router       /copy/{id} [put]
func (h *CopyHandler) UpdateCopy(c *gin.Context) {
	id, ok := parseIDParam(c, "copy")
	if !ok {
		return
	}

	var req UpdateCopyRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var copyItem model.Copy
	if err := h.db.WithContext(ctx).First(&copyItem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Copy", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch copy")
		return
	}

	if req.BookID != nil && !h.bookExists(c, *req.BookID) {
		return
	}

	if req.Barcode != nil {
		copyItem.Barcode = *req.Barcode
	}
	if req.Location != nil {
		copyItem.Location = *req.Location
	}
	if req.IsAvailable != nil {
		copyItem.IsAvailable = *req.IsAvailable
	}
	if req.BookID != nil {
		copyItem.BookID = *req.BookID
	}

	if err := h.db.WithContext(ctx).Omit("Book", "Checkouts").Save(&copyItem).Error; err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict,
				fmt.Sprintf("Copy with barcode %s already exists", copyItem.Barcode))
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to update copy")
		return
	}

	c.JSON(http.StatusOK, toCopyRead(copyItem))
}

// DeleteCopy godoc
// @Summary      Delete a copy
// @Tags         copies
// @Produce      json
// @Param        id   path      int  true  "Copy ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /copy/{id} [delete]
func (h *CopyHandler) DeleteCopy(c *gin.Context) {
	id, ok := parseIDParam(c, "copy")
	if !ok {
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&model.Copy{}, "id = ?", id)
	if result.Error != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete copy")
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "Copy", id)
		return
	}

	deletedMessage(c, "Copy", id)
}
