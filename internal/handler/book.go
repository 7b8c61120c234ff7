package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/repository"
	"github.com/AxelBuee/TestLibBackendShadow/internal/validation"
)

type BookHandler struct {
	repo repository.BookRepository
}

func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/books/", h.ListBooks)
	r.GET("/books/search", h.SearchBooks)
	r.GET("/book/:id", h.GetBookByID)
	r.POST("/book/", h.CreateBook)
	r.PUT("/book/:id", h.UpdateBook)
	r.DELETE("/book/:id", h.DeleteBook)
}

// resolveAuthors looks up every requested author id and 404s with the
// missing set when any of them has no matching row.
func (h *BookHandler) resolveAuthors(c *gin.Context, ids []int64) ([]model.Author, bool) {
	authors, missing, err := h.repo.FindAuthors(c.Request.Context(), ids)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to resolve authors")
		return nil, false
	}
	if len(missing) > 0 {
		writeError(c, http.StatusNotFound, fmt.Sprintf("No author with ids %v found", missing))
		return nil, false
	}
	return authors, true
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ListBooks godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}  BookRead
// @Router       /books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list books")
		return
	}

	res := make([]BookRead, 0, len(books))
	for _, b := range books {
		res = append(res, toBookRead(b))
	}

	c.JSON(http.StatusOK, res)
}

// SearchBooks godoc
// @Summary      Search books
// @Description  Optional filters combined with AND: title and language are
// @Description  case-insensitive substrings, isbn is exact, publication_year
// @Description  matches the year component, author_name matches first or
// @Description  last name.
// @Tags         books
// @Produce      json
// @Param        title             query     string  false  "Title substring"
// @Param        publication_year  query     int     false  "Publication year"
// @Param        isbn              query     string  false  "Exact ISBN"
// @Param        language          query     string  false  "Language substring"
// @Param        author_name       query     string  false  "Author first or last name substring"
// @Success      200  {array}  BookRead
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var params repository.BookSearchParams

	if v := c.Query("title"); v != "" {
		params.Title = &v
	}
	if v := c.Query("publication_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusUnprocessableEntity, "publication_year must be an integer")
			return
		}
		params.PublicationYear = &year
	}
	if v := c.Query("isbn"); v != "" {
		params.ISBN = &v
	}
	if v := c.Query("language"); v != "" {
		params.Language = &v
	}
	if v := c.Query("author_name"); v != "" {
		params.AuthorName = &v
	}

	books, err := h.repo.Search(c.Request.Context(), params)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to search books")
		return
	}

	res := make([]BookRead, 0, len(books))
	for _, b := range books {
		res = append(res, toBookRead(b))
	}

	c.JSON(http.StatusOK, res)
}

// GetBookByID godoc
// @Summary      Get a book with its authors and copies
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookReadWithAuthors
// @Failure      404  {object}  map[string]string
// @Router       /book/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "book")
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Book", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch book")
		return
	}

	c.JSON(http.StatusOK, toBookReadWithAuthors(*book))
}

// CreateBook godoc
// @Summary      Create a book
// @Description  authors_ids must reference existing authors; the whole
// @Description  operation fails when any id is unknown.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest  true  "Book to create"
// @Success      200      {object}  BookRead
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  validation.ErrorResponse
// @Router       /book/ [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	authors, ok := h.resolveAuthors(c, req.AuthorsIDs)
	if !ok {
		return
	}

	book := model.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		Edition:         req.Edition,
		PublicationDate: req.PublicationDate.Time,
		Language:        req.Language,
		Authors:         authors,
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict,
				fmt.Sprintf("Book with isbn %s already exists", req.ISBN))
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to create book")
		return
	}

	c.JSON(http.StatusOK, toBookRead(book))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Only fields present in the payload are changed. Supplying
// @Description  authors_ids replaces the author association with exactly
// @Description  that set; omitting it leaves the association untouched.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Book ID"
// @Param        payload  body      UpdateBookRequest  true  "Fields to update"
// @Success      200      {object}  BookRead
// @Failure      404      {object}  map[string]string
// @Router       /book/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book")
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Book", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch book")
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	var authors []model.Author
	if len(req.AuthorsIDs) > 0 {
		resolved, ok := h.resolveAuthors(c, req.AuthorsIDs)
		if !ok {
			return
		}
		authors = resolved
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Edition != nil {
		book.Edition = *req.Edition
	}
	if req.PublicationDate != nil {
		book.PublicationDate = req.PublicationDate.Time
	}
	if req.Language != nil {
		book.Language = *req.Language
	}

	if err := h.repo.Update(c.Request.Context(), book, authors); err != nil {
		if isUniqueViolation(err) {
			writeError(c, http.StatusConflict,
				fmt.Sprintf("Book with isbn %s already exists", book.ISBN))
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to update book")
		return
	}

	c.JSON(http.StatusOK, toBookRead(*book))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  The author association is removed along with the book.
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /book/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Book", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to delete book")
		return
	}

	deletedMessage(c, "Book", id)
}
