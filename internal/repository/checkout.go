package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

// ErrCopyNotAvailable is returned when the conditional availability flip
// affects no row, i.e. the copy was already checked out (possibly by a
// concurrent request between the handler's precondition check and commit).
var ErrCopyNotAvailable = errors.New("copy is not available")

type CheckoutRepository interface {
	List(ctx context.Context) ([]model.Checkout, error)
	FindByID(ctx context.Context, id int64) (*model.Checkout, error)
	FindCopy(ctx context.Context, id int64) (*model.Copy, error)
	FindMember(ctx context.Context, id int64) (*model.Member, error)
	// Create persists the checkout and flips the copy to unavailable in one
	// transaction. Returns ErrCopyNotAvailable if the copy is already out.
	Create(ctx context.Context, checkout *model.Checkout) error
	// Update persists the checkout's fields; when markReturned is true the
	// referenced copy is flipped back to available in the same transaction.
	Update(ctx context.Context, checkout *model.Checkout, markReturned bool) error
	Delete(ctx context.Context, id int64) error
}

type GormCheckoutRepository struct {
	db *gorm.DB
}

func NewGormCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

func (r *GormCheckoutRepository) List(ctx context.Context) ([]model.Checkout, error) {
	var checkouts []model.Checkout
	if err := r.db.WithContext(ctx).Find(&checkouts).Error; err != nil {
		return nil, err
	}
	return checkouts, nil
}

func (r *GormCheckoutRepository) FindByID(ctx context.Context, id int64) (*model.Checkout, error) {
	var checkout model.Checkout
	if err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Copy").
		First(&checkout, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &checkout, nil
}

func (r *GormCheckoutRepository) FindCopy(ctx context.Context, id int64) (*model.Copy, error) {
	var copyItem model.Copy
	if err := r.db.WithContext(ctx).First(&copyItem, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &copyItem, nil
}

func (r *GormCheckoutRepository) FindMember(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormCheckoutRepository) Create(ctx context.Context, checkout *model.Checkout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Atomic check-and-flip: two concurrent checkouts of the same copy
		// cannot both see one row affected.
		result := tx.Model(&model.Copy{}).
			Where("id = ? AND is_available = ?", checkout.CopyID, true).
			Update("is_available", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCopyNotAvailable
		}

		return tx.Omit("Member", "Copy").Create(checkout).Error
	})
}

func (r *GormCheckoutRepository) Update(ctx context.Context, checkout *model.Checkout, markReturned bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Member", "Copy").Save(checkout).Error; err != nil {
			return err
		}

		if markReturned {
			err := tx.Model(&model.Copy{}).
				Where("id = ?", checkout.CopyID).
				Update("is_available", true).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *GormCheckoutRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Checkout{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
