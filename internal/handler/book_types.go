package handler

import "github.com/AxelBuee/TestLibBackendShadow/internal/model"

type CreateBookRequest struct {
	Title           string     `json:"title" binding:"required"`
	ISBN            string     `json:"isbn" binding:"required"`
	Edition         string     `json:"edition"`
	PublicationDate model.Date `json:"publication_date" binding:"required"`
	Language        string     `json:"language" binding:"required"`
	// A book always has at least one author.
	AuthorsIDs []int64 `json:"authors_ids" binding:"required,min=1"`
}

type UpdateBookRequest struct {
	Title           *string     `json:"title" binding:"omitempty,min=1"`
	ISBN            *string     `json:"isbn" binding:"omitempty,min=1"`
	Edition         *string     `json:"edition"`
	PublicationDate *model.Date `json:"publication_date"`
	Language        *string     `json:"language" binding:"omitempty,min=1"`
	// When present, replaces the author association wholesale.
	AuthorsIDs []int64 `json:"authors_ids" binding:"omitempty,min=1"`
}

type BookRead struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	ISBN            string     `json:"isbn"`
	Edition         string     `json:"edition"`
	PublicationDate model.Date `json:"publication_date"`
	Language        string     `json:"language"`
}

type BookReadWithAuthors struct {
	BookRead
	Copies  []CopyRead   `json:"copies"`
	Authors []AuthorRead `json:"authors"`
}
