package services

import (
	"errors"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

// error กลางของชั้น service — controller เอาไป map เป็น HTTP status
var (
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSeverity    = errors.New("invalid severity")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrDirectoryDisabled  = errors.New("directory auth not configured")
)

// Identity = ตัวตนของ caller จาก JWT ที่ middleware ตรวจแล้ว
type Identity struct {
	ID       uint
	Username string
	Role     string
}

func (id Identity) IsAdmin() bool {
	return id.Role == entity.RoleAdmin
}
