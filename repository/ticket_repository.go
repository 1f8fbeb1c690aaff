package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

// ---------------- Tickets (CRUD หลัก) ----------------

// POST /api/tickets → สร้าง ticket (ใน transaction เดียวกับ attachments)
func (r *TicketRepository) CreateTicket(tx *gorm.DB, t *entity.Ticket) error {
	return tx.Create(t).Error
}

func (r *TicketRepository) CreateAttachment(tx *gorm.DB, a *entity.Attachment) error {
	return tx.Create(a).Error
}

func (r *TicketRepository) GetTicket(ticketID uint) (*entity.Ticket, error) {
	var t entity.Ticket
	if err := r.DB.First(&t, ticketID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// TicketFilter = เงื่อนไขกรองรายการ (เฉพาะ admin ใช้ครบ)
type TicketFilter struct {
	Status     string
	AssignedTo string
	Department string
	Severity   string

	// ถ้าไม่ว่าง จะเห็นเฉพาะ ticket ของ requestor คนนี้ (non-admin)
	Requestor string
}

func (f TicketFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AssignedTo != "" {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Requestor != "" {
		q = q.Where("requestor = ?", f.Requestor)
	}
	return q
}

// GET /api/tickets → รายการ ticket ใหม่สุดก่อน
func (r *TicketRepository) ListTickets(f TicketFilter) ([]entity.Ticket, error) {
	var out []entity.Ticket
	err := f.apply(r.DB.Model(&entity.Ticket{})).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// อัปเดตฟิลด์ของ ticket (updated_at ขยับเสมอ)
func (r *TicketRepository) UpdateFields(ticketID uint, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	return r.DB.Model(&entity.Ticket{}).Where("id = ?", ticketID).Updates(updates).Error
}

// ---------------- Comments ----------------

func (r *TicketRepository) AddComment(cm *entity.Comment) error {
	return r.DB.Create(cm).Error
}

// คอมเมนต์ของ ticket พร้อม username คนเขียน เรียงเก่า→ใหม่
type CommentRow struct {
	ID        uint      `json:"id"`
	Body      string    `json:"comment"`
	UserID    uint      `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *TicketRepository) ListComments(ticketID uint) ([]CommentRow, error) {
	var out []CommentRow
	err := r.DB.Model(&entity.Comment{}).
		Select("comments.id, comments.body, comments.user_id, users.username, comments.created_at").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.ticket_id = ?", ticketID).
		Order("comments.created_at ASC").
		Scan(&out).Error
	return out, err
}

// ---------------- Attachments ----------------

func (r *TicketRepository) ListAttachments(ticketID uint) ([]entity.Attachment, error) {
	var out []entity.Attachment
	err := r.DB.Where("ticket_id = ?", ticketID).Find(&out).Error
	return out, err
}

// ---------------- Overdue / Dashboard ----------------

// ticket ที่ยังไม่ปิดและเลยกำหนด time_to_resolve แล้ว (คำนวณตอน query)
func (r *TicketRepository) ListOverdue() ([]entity.Ticket, error) {
	var out []entity.Ticket
	err := r.DB.
		Where("status != ?", entity.StatusClosed).
		Where("datetime(created_at, '+' || time_to_resolve || ' hours') < datetime('now')").
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// StatsFilter = เงื่อนไขร่วมของทุก count บน dashboard
type StatsFilter struct {
	Department string
	Category   string // ticket_type
	TeamMember string // assigned_to
}

func (f StatsFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Category != "" {
		q = q.Where("ticket_type = ?", f.Category)
	}
	if f.TeamMember != "" {
		q = q.Where("assigned_to = ?", f.TeamMember)
	}
	return q
}

func (r *TicketRepository) CountAll(f StatsFilter) (int64, error) {
	var n int64
	err := f.apply(r.DB.Model(&entity.Ticket{})).Count(&n).Error
	return n, err
}

func (r *TicketRepository) CountByStatus(f StatsFilter, status string) (int64, error) {
	var n int64
	err := f.apply(r.DB.Model(&entity.Ticket{})).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

// นับ overdue แบบหน้าต่าง 72 ชม. คงที่ (พฤติกรรมเดิมของ dashboard)
// created_at ต้อง normalize ผ่าน datetime() ก่อน ไม่งั้นค่าที่เก็บแบบมี
// timezone offset จะถูกเทียบเป็น string ตรง ๆ กับเวลา UTC แล้วนับพลาด
func (r *TicketRepository) CountOverdue(f StatsFilter) (int64, error) {
	var n int64
	err := f.apply(r.DB.Model(&entity.Ticket{})).
		Where("status != ?", entity.StatusClosed).
		Where("datetime(created_at) < datetime('now', '-72 hours')").
		Count(&n).Error
	return n, err
}
