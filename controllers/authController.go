package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/dtos"
	"kitchen-api/services"
)

type AuthController struct {
	auth *services.AuthService
	log  *zap.Logger
}

func NewAuthController(auth *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input dtos.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.auth.Register(input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input dtos.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ctl.auth.Login(input)
	if err != nil {
		respondErr(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
