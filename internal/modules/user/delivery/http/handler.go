package handler

import (
	"net/http"

	"carbook.dev/carbook/internal/modules/user/dto"
	user "carbook.dev/carbook/internal/modules/user/service"
	"carbook.dev/carbook/pkg/response"
	"carbook.dev/carbook/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service user.AuthService
}

func NewAuthHandler(service user.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	if err := h.service.Signup(c.Request.Context(), form); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.ResponseMessage(c, http.StatusOK, "SignUp Success")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ResponseMessage(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
