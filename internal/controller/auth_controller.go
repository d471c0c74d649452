package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/dto"
	"charity-merch-api/internal/middleware"
	"charity-merch-api/internal/service"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := ctl.Service.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.TokenResponse{Token: token, User: user})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := ctl.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.TokenResponse{Token: token, User: user})
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	respondData(c, http.StatusOK, ident)
}
