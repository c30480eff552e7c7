package handler

import (
	"fmt"
	"net/http"
	"strconv"

	postDto "carbook.dev/carbook/internal/modules/post/dto"
	post "carbook.dev/carbook/internal/modules/post/service"
	"carbook.dev/carbook/pkg/ratelimiter"
	"carbook.dev/carbook/pkg/response"
	"carbook.dev/carbook/pkg/validator"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Feed serves the landing feed: guests get the recent feed, logged-in
// viewers the posts of the users they follow.
func (h *PostHandler) Feed(c *gin.Context) {
	index := parseIndex(c)

	var resp *postDto.FeedResponse
	var err error
	if viewerID := response.GetOptionalUserID(c); viewerID != nil {
		resp, err = h.service.RecentFollowingFeed(c.Request.Context(), index, *viewerID)
	} else {
		resp, err = h.service.RecentFeed(c.Request.Context(), index)
	}

	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) PopularFeed(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.PopularFeed(c.Request.Context(), parseIndex(c), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) SearchByTags(c *gin.Context) {
	resp, err := h.service.SearchByTags(
		c.Request.Context(),
		c.Query("hashtags"),
		c.Query("type"),
		c.Query("model"),
		parseIndex(c),
	)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) SearchContent(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.ResponseMessage(c, http.StatusBadRequest, "query is required")
		return
	}

	docs, err := h.service.SearchContent(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": docs})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var form postDto.CreatePostForm
	if err := c.ShouldBind(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.CreatePost(c.Request.Context(), userID, form); err != nil {
		if rateLimitErr, ok := err.(*ratelimiter.RateLimitError); ok {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
			response.ResponseMessage(c, http.StatusTooManyRequests, rateLimitErr.Message)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusCreated, "Post Created Successfully")
}

func (h *PostHandler) GetPostDetails(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, "invalid post id")
		return
	}

	resp, err := h.service.GetPostDetails(c.Request.Context(), postID, response.GetOptionalUserID(c))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ModifyPost(c *gin.Context) {
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

	var form postDto.ModifyPostForm
	if err := c.ShouldBind(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.ModifyPost(c.Request.Context(), userID, postID, form); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Post Modified Successfully")
}

func (h *PostHandler) DeletePost(c *gin.Context) {
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

	if err := h.service.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "Post Deleted Successfully")
}

func parsePostID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	return uint(id), err
}

func parseIndex(c *gin.Context) int {
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil || index < 0 {
		return 0
	}
	return index
}
