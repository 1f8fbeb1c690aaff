package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{authService: service}
}

// POST /api/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := a.authService.Login(req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	out := gin.H{"ok": true, "token": result.Token, "user": result.User}
	if result.FirstLogin {
		// FE ใช้ flag นี้บังคับเปลี่ยนรหัสผ่าน
		out["firstLogin"] = true
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/change-admin-password (ต้อง login)
func (a *AuthController) ChangeAdminPassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := a.authService.ChangeAdminPassword(currentIdentity(c), req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Password updated successfully"})
}
