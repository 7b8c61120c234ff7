package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/repository"
	"github.com/AxelBuee/TestLibBackendShadow/internal/validation"
)

type CheckoutHandler struct {
	repo repository.CheckoutRepository
}

func NewCheckoutHandler(repo repository.CheckoutRepository) *CheckoutHandler {
	return &CheckoutHandler{repo: repo}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/checkouts/", h.ListCheckouts)
	r.GET("/checkout/:id", h.GetCheckoutByID)
	r.POST("/checkout/", h.CreateCheckout)
	r.PUT("/checkout/:id", h.UpdateCheckout)
	r.DELETE("/checkout/:id", h.DeleteCheckout)
}

// ListCheckouts godoc
// @Summary      List checkouts
// @Tags         checkouts
// @Produce      json
// @Success      200  {array}  CheckoutRead
// @Router       /checkouts/ [get]
func (h *CheckoutHandler) ListCheckouts(c *gin.Context) {
	checkouts, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list checkouts")
		return
	}

	res := make([]CheckoutRead, 0, len(checkouts))
	for _, co := range checkouts {
		res = append(res, toCheckoutRead(co))
	}

	c.JSON(http.StatusOK, res)
}

// GetCheckoutByID godoc
// @Summary      Get a checkout with its member and copy
// @Tags         checkouts
// @Produce      json
// @Param        id   path      int  true  "Checkout ID"
// @Success      200  {object}  CheckoutReadWithDetails
// @Failure      404  {object}  map[string]string
// @Router       /checkout/{id} [get]
func (h *CheckoutHandler) GetCheckoutByID(c *gin.Context) {
	id, ok := parseIDParam(c, "checkout")
	if !ok {
		return
	}

	checkout, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Checkout", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch checkout")
		return
	}

	c.JSON(http.StatusOK, toCheckoutReadWithDetails(*checkout))
}

// CreateCheckout godoc
// @Summary      Check out a copy to a member
// @Description  The copy must exist and be available, the member must exist
// @Description  and have an unexpired membership. The checkout row and the
// @Description  copy's availability flip commit together or not at all.
// @Tags         checkouts
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCheckoutRequest  true  "Checkout to create"
// @Success      200      {object}  CheckoutRead
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  validation.ErrorResponse
// @Router       /checkout/ [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	copyItem, err := h.repo.FindCopy(ctx, req.CopyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Copy", req.CopyID)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch copy")
		return
	}
	if !copyItem.IsAvailable {
		writeError(c, http.StatusConflict,
			fmt.Sprintf("Copy id %d is not available", req.CopyID))
		return
	}

	member, err := h.repo.FindMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Member", req.MemberID)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch member")
		return
	}
	if member.MembershipExpiration.Before(today()) {
		writeError(c, http.StatusConflict,
			fmt.Sprintf("Member id %d membership expired", req.MemberID))
		return
	}

	checkout := model.Checkout{
		CheckoutDate:       req.CheckoutDate.Time,
		ExpectedReturnDate: req.ExpectedReturnDate.Time,
		MemberID:           req.MemberID,
		CopyID:             req.CopyID,
	}

	if err := h.repo.Create(ctx, &checkout); err != nil {
		// A concurrent request may have taken the copy between the check
		// above and the conditional flip.
		if errors.Is(err, repository.ErrCopyNotAvailable) {
			writeError(c, http.StatusConflict,
				fmt.Sprintf("Copy id %d is not available", req.CopyID))
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to create checkout")
		return
	}

	c.JSON(http.StatusOK, toCheckoutRead(checkout))
}

// UpdateCheckout godoc
// @Summary      Update a checkout (return a copy)
// @Description  Only fields present in the payload are changed. Setting
// @Description  returned_date to a date on or before today flips the copy
// @Description  back to available.
// @Tags         checkouts
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Checkout ID"
// @Param        payload  body      UpdateCheckoutRequest  true  "Fields to update"
// @Success      200      {object}  CheckoutRead
// @Failure      404      {object}  map[string]string
// @Router       /checkout/{id} [put]
func (h *CheckoutHandler) UpdateCheckout(c *gin.Context) {
	id, ok := parseIDParam(c, "checkout")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	checkout, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Checkout", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch checkout")
		return
	}

	var req UpdateCheckoutRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.CheckoutDate != nil {
		checkout.CheckoutDate = req.CheckoutDate.Time
	}
	if req.ExpectedReturnDate != nil {
		checkout.ExpectedReturnDate = req.ExpectedReturnDate.Time
	}

	// Availability is only recomputed when the payload carries a non-null
	// returned_date; an absent key or an explicit null never touches the
	// copy.
	markReturned := false
	if req.ReturnedDate.Set {
		checkout.ReturnedDate = req.ReturnedDate.Value.Ptr()
		if checkout.ReturnedDate != nil {
			markReturned = !checkout.ReturnedDate.After(today())
		}
	}

	if err := h.repo.Update(ctx, checkout, markReturned); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to update checkout")
		return
	}

	c.JSON(http.StatusOK, toCheckoutRead(*checkout))
}

// DeleteCheckout godoc
// @Summary      Delete a checkout
// @Description  The copy must have been returned first.
// @Tags         checkouts
// @Produce      json
// @Param        id   path      int  true  "Checkout ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /checkout/{id} [delete]
func (h *CheckoutHandler) DeleteCheckout(c *gin.Context) {
	id, ok := parseIDParam(c, "checkout")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	checkout, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Checkout", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch checkout")
		return
	}

	if checkout.ReturnedDate == nil {
		writeError(c, http.StatusConflict, fmt.Sprintf(
			"Checkout id %d is not returned. Please make sure the book was returned before deleting the checkout",
			id))
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete checkout")
		return
	}

	deletedMessage(c, "Checkout", id)
}
