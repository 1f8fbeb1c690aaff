package entity

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"` // ปลอดภัย
	Role     string `gorm:"not null;default:user" json:"role"`

	// แผนกของผู้ใช้ (free text) ใช้เป็น department ตั้งต้นของ ticket
	Department string `json:"department"`

	// Relations — preload เฉพาะตอนจำเป็น
	Tickets  []Ticket  `gorm:"foreignKey:RequestorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"-"`
}
