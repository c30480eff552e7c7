package handler

import (
	"net/http"

	tag "carbook.dev/carbook/internal/modules/tag/service"
	"carbook.dev/carbook/pkg/response"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service tag.TagService
}

func NewTagHandler(service tag.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// ListTaxonomy serves the vehicle type/model tree for the post form.
func (h *TagHandler) ListTaxonomy(c *gin.Context) {
	types, err := h.service.ListTaxonomy(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": types})
}
