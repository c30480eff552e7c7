package handler

import (
	"net/http"

	follow "carbook.dev/carbook/internal/modules/follow/service"
	"carbook.dev/carbook/pkg/response"
	"carbook.dev/carbook/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	service follow.FollowService
}

func NewFollowHandler(service follow.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

type followForm struct {
	Nickname string `json:"nickname" binding:"required"`
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var form followForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.Follow(c.Request.Context(), userID, form.Nickname); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Follow Success")
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var form followForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), userID, form.Nickname); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Unfollow Success")
}
