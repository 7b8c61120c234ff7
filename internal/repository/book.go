package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

// BookSearchParams are optional filters combined with AND. Nil fields are
// skipped.
type BookSearchParams struct {
	Title           *string
	PublicationYear *int
	ISBN            *string
	Language        *string
	AuthorName      *string
}

type BookRepository interface {
	List(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindAuthors(ctx context.Context, ids []int64) (found []model.Author, missing []int64, err error)
	Create(ctx context.Context, book *model.Book) error
	// Update persists the book's scalar fields; when authors is non-nil the
	// author association is replaced wholesale with exactly that set.
	Update(ctx context.Context, book *model.Book, authors []model.Author) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, params BookSearchParams) ([]model.Book, error)
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		Preload("Authors").
		Preload("Copies").
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

// FindAuthors resolves the requested ids and reports the ones with no
// matching row (requested minus found).
func (r *GormBookRepository) FindAuthors(ctx context.Context, ids []int64) ([]model.Author, []int64, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).Find(&authors, "id IN ?", ids).Error; err != nil {
		return nil, nil, err
	}

	existing := make(map[int64]bool, len(authors))
	for _, a := range authors {
		existing[a.ID] = true
	}

	var missing []int64
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}

	return authors, missing, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book, authors []model.Author) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Authors", "Copies").Save(book).Error; err != nil {
			return err
		}
		if authors != nil {
			if err := tx.Model(book).Association("Authors").Replace(authors); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormBookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book := model.Book{ID: id}
		if err := tx.Model(&book).Association("Authors").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&model.Book{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormBookRepository) Search(ctx context.Context, params BookSearchParams) ([]model.Book, error) {
	q := r.db.WithContext(ctx).Model(&model.Book{}).Distinct("books.*")

	if params.Title != nil {
		q = q.Where("LOWER(books.title) LIKE ?", contains(*params.Title))
	}
	if params.PublicationYear != nil {
		// Portable equivalent of extracting the year component.
		from := time.Date(*params.PublicationYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("books.publication_date >= ? AND books.publication_date < ?", from, from.AddDate(1, 0, 0))
	}
	if params.ISBN != nil {
		q = q.Where("books.isbn = ?", *params.ISBN)
	}
	if params.Language != nil {
		q = q.Where("LOWER(books.language) LIKE ?", contains(*params.Language))
	}
	if params.AuthorName != nil {
		pattern := contains(*params.AuthorName)
		q = q.
			Joins("JOIN author_book_links abl ON abl.book_id = books.id").
			Joins("JOIN authors ON authors.id = abl.author_id").
			Where("LOWER(authors.first_name) LIKE ? OR LOWER(authors.last_name) LIKE ?", pattern, pattern)
	}

	var books []model.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
