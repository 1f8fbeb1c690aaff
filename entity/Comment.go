package entity

import (
	"gorm.io/gorm"
)

// คอมเมนต์ใน ticket — สร้างแล้วแก้ไม่ได้
type Comment struct {
	gorm.Model
	Body string `gorm:"not null" json:"comment"`

	TicketID uint   `json:"ticketId"`
	Ticket   Ticket `json:"-"` // ซ่อนเพื่อเลี่ยง loop

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload แยกเมื่อจำเป็น
}
