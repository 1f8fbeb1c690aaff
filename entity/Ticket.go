package entity

import (
	"time"

	"gorm.io/gorm"
)

// สถานะของ ticket
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// ระดับความรุนแรง
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

func IsValidSeverity(s string) bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

func IsValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusClosed
}

type Ticket struct {
	gorm.Model
	TicketType  string `gorm:"not null" json:"ticketType"`
	Severity    string `gorm:"not null" json:"severity"`
	Description string `gorm:"not null" json:"description"`

	// open / in_progress / closed
	Status string `gorm:"not null;default:open" json:"status"`

	// requestor ห้ามเปลี่ยนหลังสร้าง
	RequestorID uint   `json:"requestorId"`
	Requestor   string `gorm:"not null" json:"requestor"` // username ของคนแจ้ง

	// มอบหมายโดย admin เท่านั้น (username, ว่างได้)
	AssignedTo *string `json:"assignedTo,omitempty"`

	SupervisorEmail string `json:"supervisorEmail,omitempty"`
	Location        string `json:"location,omitempty"`
	EmployeeID      string `json:"employeeId,omitempty"`
	Department      string `json:"department,omitempty"`

	// เวลาที่ควรปิดงาน (ชั่วโมง) default 72
	TimeToResolve int `gorm:"not null;default:72" json:"timeToResolve"`

	// set ตอนปิด, clear ตอน reopen
	ClosedAt *time.Time `json:"closedAt,omitempty"`

	// preload แค่ตอน detail
	Comments    []Comment    `gorm:"foreignKey:TicketID" json:"-"`
	Attachments []Attachment `gorm:"foreignKey:TicketID" json:"-"`
}

// Overdue เป็นค่าคำนวณ ไม่เก็บลง DB
func (t *Ticket) Overdue(now time.Time) bool {
	if t.Status == StatusClosed {
		return false
	}
	return now.After(t.CreatedAt.Add(time.Duration(t.TimeToResolve) * time.Hour))
}
