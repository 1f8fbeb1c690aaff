package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
	"github.com/gokulkolipaka/graviti-ticketing-v2/utils"
)

// identity ของ caller จาก context ที่ middleware เติมไว้
func currentIdentity(c *gin.Context) services.Identity {
	return services.Identity{
		ID:       utils.CurrentUserID(c),
		Username: utils.CurrentUsername(c),
		Role:     utils.CurrentRole(c),
	}
}

// map error จาก service → HTTP response
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "access denied")
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "invalid credentials")
	case errors.Is(err, services.ErrInvalidSeverity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrUsernameTaken):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
