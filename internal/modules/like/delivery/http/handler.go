package handler

import (
	"net/http"
	"strconv"

	like "carbook.dev/carbook/internal/modules/like/service"
	"carbook.dev/carbook/pkg/response"
	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) Like(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.service.Like(c.Request.Context(), userID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Like Success")
}

func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.service.Unlike(c.Request.Context(), userID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Unlike Success")
}

func parsePostID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	return uint(id), err
}
