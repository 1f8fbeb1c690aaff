package entity

import (
	"gorm.io/gorm"
)

// ไฟล์แนบ — สร้างได้เฉพาะตอนสร้าง ticket
type Attachment struct {
	gorm.Model
	Filename     string `json:"filename"`     // ชื่อไฟล์ที่เก็บจริงบน disk
	OriginalName string `json:"originalName"` // ชื่อไฟล์ตอน upload
	Path         string `json:"path"`

	TicketID uint   `json:"ticketId"`
	Ticket   Ticket `json:"-"`
}
