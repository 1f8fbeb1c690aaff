package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

// TicketService จัดการ lifecycle ของ ticket ทั้งหมด
// ใครทำอะไรได้บ้างเช็คที่ชั้นนี้ (middleware กันแค่ route ระดับ role)
type TicketService struct {
	DB       *gorm.DB
	Repo     *repository.TicketRepository
	Notifier *Notifier
}

func NewTicketService(db *gorm.DB, repo *repository.TicketRepository, notifier *Notifier) *TicketService {
	return &TicketService{DB: db, Repo: repo, Notifier: notifier}
}

// ---------------- Create ----------------

type CreateTicketInput struct {
	TicketType      string
	Severity        string
	SupervisorEmail string
	Location        string
	EmployeeID      string
	Description     string
}

// ไฟล์แนบที่ controller เซฟลง disk แล้ว
type AttachmentInput struct {
	Filename     string
	OriginalName string
	Path         string
}

// Create สร้าง ticket + attachments ใน transaction เดียว
// requestor มาจาก identity เสมอ ห้ามรับจาก request body
func (s *TicketService) Create(caller Identity, department string, in CreateTicketInput, files []AttachmentInput) (*entity.Ticket, error) {
	if !entity.IsValidSeverity(in.Severity) {
		return nil, ErrInvalidSeverity
	}

	t := &entity.Ticket{
		TicketType:      in.TicketType,
		Severity:        in.Severity,
		Description:     in.Description,
		Status:          entity.StatusOpen,
		RequestorID:     caller.ID,
		Requestor:       caller.Username,
		SupervisorEmail: in.SupervisorEmail,
		Location:        in.Location,
		EmployeeID:      in.EmployeeID,
		Department:      department,
		TimeToResolve:   72,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateTicket(tx, t); err != nil {
			return err
		}
		for _, f := range files {
			a := &entity.Attachment{
				TicketID:     t.ID,
				Filename:     f.Filename,
				OriginalName: f.OriginalName,
				Path:         f.Path,
			}
			if err := s.Repo.CreateAttachment(tx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.TicketCreated(t)
	return t, nil
}

// ---------------- Read ----------------

// TicketDetail = ticket + ของลูก + overdue ที่คำนวณตอนอ่าน
type TicketDetail struct {
	entity.Ticket
	Overdue     bool                    `json:"overdue"`
	Comments    []repository.CommentRow `json:"comments"`
	Attachments []entity.Attachment     `json:"attachments"`
}

// Get อ่าน ticket เดี่ยว — เจ้าของหรือ admin เท่านั้น
func (s *TicketService) Get(caller Identity, ticketID uint) (*TicketDetail, error) {
	t, err := s.Repo.GetTicket(ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && t.Requestor != caller.Username {
		return nil, ErrForbidden
	}

	comments, err := s.Repo.ListComments(ticketID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.Repo.ListAttachments(ticketID)
	if err != nil {
		return nil, err
	}

	return &TicketDetail{
		Ticket:      *t,
		Overdue:     t.Overdue(time.Now()),
		Comments:    comments,
		Attachments: attachments,
	}, nil
}

// TicketRow = แถวในรายการ พร้อม overdue flag
type TicketRow struct {
	entity.Ticket
	Overdue bool `json:"overdue"`
}

// List — admin กรองได้เต็ม, non-admin เห็นเฉพาะของตัวเองเสมอไม่ว่าจะส่ง filter อะไรมา
func (s *TicketService) List(caller Identity, f repository.TicketFilter) ([]TicketRow, error) {
	if !caller.IsAdmin() {
		f.Requestor = caller.Username
	}

	tickets, err := s.Repo.ListTickets(f)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]TicketRow, 0, len(tickets))
	for i := range tickets {
		out = append(out, TicketRow{Ticket: tickets[i], Overdue: tickets[i].Overdue(now)})
	}
	return out, nil
}

// ListOverdue — ticket ที่ยังไม่ปิดและเลยกำหนด (admin เท่านั้น ผ่าน route)
func (s *TicketService) ListOverdue() ([]entity.Ticket, error) {
	return s.Repo.ListOverdue()
}

// ---------------- Comments ----------------

// AddComment — ต้องอ่าน ticket ได้ก่อน (เจ้าของหรือ admin) ถึงคอมเมนต์ได้
func (s *TicketService) AddComment(caller Identity, ticketID uint, body string) (*entity.Comment, error) {
	t, err := s.Repo.GetTicket(ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && t.Requestor != caller.Username {
		return nil, ErrForbidden
	}

	cm := &entity.Comment{
		TicketID: t.ID,
		UserID:   caller.ID,
		Body:     body,
	}
	if err := s.Repo.AddComment(cm); err != nil {
		return nil, err
	}

	s.Notifier.CommentAdded(t.ID, caller.Username)
	return cm, nil
}
