package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
)

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type UserController struct {
	userService *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{userService: service}
}

// GET /api/users (admin)
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.userService.List()
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, users)
}

// POST /api/users (admin)
func (uc *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.userService.Create(req.Username, req.Email, req.Password, req.Role, req.Department)
	if err != nil {
		fail(c, err)
		return
	}

	resp.Created(c, gin.H{
		"userId": user.ID, "username": user.Username, "email": user.Email,
		"role": user.Role, "department": user.Department,
	})
}
