package handler

import "github.com/AxelBuee/TestLibBackendShadow/internal/model"

type CreateCheckoutRequest struct {
	CheckoutDate       model.Date `json:"checkout_date" binding:"required"`
	ExpectedReturnDate model.Date `json:"expected_return_date" binding:"required"`
	MemberID           int64      `json:"member_id" binding:"required"`
	CopyID             int64      `json:"copy_id" binding:"required"`
}

type UpdateCheckoutRequest struct {
	CheckoutDate       *model.Date `json:"checkout_date"`
	ExpectedReturnDate *model.Date `json:"expected_return_date"`
	// An explicit null clears the returned date without touching the copy.
	ReturnedDate model.NullableDate `json:"returned_date"`
}

type CheckoutRead struct {
	ID                 int64       `json:"id"`
	CheckoutDate       model.Date  `json:"checkout_date"`
	ExpectedReturnDate model.Date  `json:"expected_return_date"`
	ReturnedDate       *model.Date `json:"returned_date"`
	MemberID           int64       `json:"member_id"`
	CopyID             int64       `json:"copy_id"`
}

type CheckoutReadWithDetails struct {
	CheckoutRead
	CurrentOwner MemberRead `json:"current_owner"`
	CopyItem     CopyRead   `json:"copy_item"`
}
