package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/validation"
)

type MemberHandler struct {
	db *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

type CreateMemberRequest struct {
	Auth0ID              string     `json:"auth0_id" binding:"required"`
	FirstName            string     `json:"first_name" binding:"required"`
	LastName             string     `json:"last_name" binding:"required"`
	Age                  *int       `json:"age" binding:"required,gte=0"`
	Birthdate            model.Date `json:"birthdate" binding:"required"`
	City                 string     `json:"city" binding:"required"`
	MembershipExpiration model.Date `json:"membership_expiration" binding:"required"`
}

type UpdateMemberRequest struct {
	Auth0ID              *string     `json:"auth0_id" binding:"omitempty,min=1"`
	FirstName            *string     `json:"first_name" binding:"omitempty,min=1"`
	LastName             *string     `json:"last_name" binding:"omitempty,min=1"`
	Age                  *int        `json:"age" binding:"omitempty,gte=0"`
	Birthdate            *model.Date `json:"birthdate"`
	City                 *string     `json:"city" binding:"omitempty,min=1"`
	MembershipExpiration *model.Date `json:"membership_expiration"`
}

type MemberRead struct {
	ID                   int64      `json:"id"`
	Auth0ID              string     `json:"auth0_id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	Age                  int        `json:"age"`
	Birthdate            model.Date `json:"birthdate"`
	City                 string     `json:"city"`
	MembershipExpiration model.Date `json:"membership_expiration"`
}

type MemberReadWithCheckouts struct {
	MemberRead
	MemberCheckouts []CheckoutRead `json:"member_checkouts"`
}

func (h *MemberHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/members/", h.ListMembers)
	r.GET("/member/:id", h.GetMemberByID)
	r.POST("/member/", h.CreateMember)
	r.PUT("/member/:id", h.UpdateMember)
	r.DELETE("/member/:id", h.DeleteMember)
}

// ListMembers godoc
// @Summary      List members
// @Tags         members
// @Produce      json
// @Success      200  {array}  MemberRead
// @Router       /members/ [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var members []model.Member
	if err := h.db.WithContext(c.Request.Context()).Find(&members).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to list members")
		return
	}

	res := make([]MemberRead, 0, len(members))
	for _, m := range members {
		res = append(res, toMemberRead(m))
	}

	c.JSON(http.StatusOK, res)
}

// GetMemberByID godoc
// @Summary      Get a member with their checkouts
// @Tags         members
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  MemberReadWithCheckouts
// @Failure      404  {object}  map[string]string
// @Router       /member/{id} [get]
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, ok := parseIDParam(c, "member")
	if !ok {
		return
	}

	var member model.Member
	err := h.db.WithContext(c.Request.Context()).
		Preload("Checkouts").
		First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Member", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch member")
		return
	}

	c.JSON(http.StatusOK, toMemberReadWithCheckouts(member))
}

// CreateMember godoc
// @Summary      Create a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateMemberRequest  true  "Member to create"
// @Success      200      {object}  MemberRead
// @Failure      422      {object}  validation.ErrorResponse
// @Router       /member/ [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	member := model.Member{
		Auth0ID:              req.Auth0ID,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Age:                  *req.Age,
		Birthdate:            req.Birthdate.Time,
		City:                 req.City,
		MembershipExpiration: req.MembershipExpiration.Time,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&member).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to create member")
		return
	}

	c.JSON(http.StatusOK, toMemberRead(member))
}

// UpdateMember godoc
// @Summary      Update a member
// @Description  Only fields present in the payload are changed.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Member ID"
// @Param        payload  body      UpdateMemberRequest  true  "Fields to update"
// @Success      200      {object}  MemberRead
// @Failure      404      {object}  map[string]string
// @Router       /member/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "member")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var member model.Member
	if err := h.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Member", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch member")
		return
	}

	if req.Auth0ID != nil {
		member.Auth0ID = *req.Auth0ID
	}
	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Age != nil {
		member.Age = *req.Age
	}
	if req.Birthdate != nil {
		member.Birthdate = req.Birthdate.Time
	}
	if req.City != nil {
		member.City = *req.City
	}
	if req.MembershipExpiration != nil {
		member.MembershipExpiration = req.MembershipExpiration.Time
	}

	if err := h.db.WithContext(ctx).Omit("Checkouts").Save(&member).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to update member")
		return
	}

	c.JSON(http.StatusOK, toMemberRead(member))
}

// DeleteMember godoc
// @Summary      Delete a member
// @Description  A member with any checkout history (returned or not) cannot
// @Description  be deleted.
// @Tags         members
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /member/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "member")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var member model.Member
	if err := h.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c, "Member", id)
			return
		}
		writeError(c, http.StatusInternalServerError, "failed to fetch member")
		return
	}

	var checkouts int64
	err := h.db.WithContext(ctx).
		Model(&model.Checkout{}).
		Where("member_id = ?", id).
		Count(&checkouts).Error
	if err != nil {
		writeError(c, http.StatusInternalServerError, "failed to fetch member checkouts")
		return
	}
	if checkouts > 0 {
		writeError(c, http.StatusConflict,
			"Member has checkouts. Please consider deactivating him instead.")
		return
	}

	if err := h.db.WithContext(ctx).Delete(&member).Error; err != nil {
		writeError(c, http.StatusInternalServerError, "failed to delete member")
		return
	}

	deletedMessage(c, "Member", id)
}
