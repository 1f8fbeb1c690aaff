// services/ticket_transitions.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

// การเปลี่ยนสถานะไม่บังคับลำดับ (open↔in_progress↔closed ได้หมด)
// ที่คุมคือ "ใคร" เปลี่ยนได้: status/reopen = เจ้าของหรือ admin,
// assign/severity = admin เท่านั้น

func (s *TicketService) loadForWrite(caller Identity, ticketID uint, ownerOnly bool) (*entity.Ticket, error) {
	t, err := s.Repo.GetTicket(ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if ownerOnly && !caller.IsAdmin() && t.Requestor != caller.Username {
		return nil, ErrForbidden
	}
	return t, nil
}

// UpdateStatus — เจ้าของหรือ admin; สถานะเดิมซ้ำก็ไม่ error (updated_at ขยับอยู่ดี)
func (s *TicketService) UpdateStatus(caller Identity, ticketID uint, status, assignedTo string) error {
	if !entity.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	t, err := s.loadForWrite(caller, ticketID, true)
	if err != nil {
		return err
	}

	updates := map[string]any{"status": status}
	if status == entity.StatusClosed {
		// ปิดซ้ำไม่ขยับเวลาปิดเดิม
		if t.Status != entity.StatusClosed {
			updates["closed_at"] = time.Now()
		}
	} else if t.Status == entity.StatusClosed {
		// ออกจาก closed → ล้าง closed_at
		updates["closed_at"] = nil
	}

	// assigned_to ผ่าน endpoint นี้ได้เฉพาะ admin
	assigned := ""
	if assignedTo != "" && caller.IsAdmin() {
		updates["assigned_to"] = assignedTo
		assigned = assignedTo
	}

	if err := s.Repo.UpdateFields(t.ID, updates); err != nil {
		return err
	}

	// broadcast เฉพาะค่าที่ถูกบันทึกจริง
	s.Notifier.TicketUpdated(t.ID, status, assigned)
	return nil
}

// Assign — admin เท่านั้น
func (s *TicketService) Assign(caller Identity, ticketID uint, assignedTo string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}

	t, err := s.loadForWrite(caller, ticketID, false)
	if err != nil {
		return err
	}

	if err := s.Repo.UpdateFields(t.ID, map[string]any{"assigned_to": assignedTo}); err != nil {
		return err
	}

	s.Notifier.TicketAssigned(t.ID, assignedTo)
	return nil
}

// ChangeSeverity — admin เท่านั้น และต้องเป็น High/Medium/Low
func (s *TicketService) ChangeSeverity(caller Identity, ticketID uint, severity string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	if !entity.IsValidSeverity(severity) {
		return ErrInvalidSeverity
	}

	t, err := s.loadForWrite(caller, ticketID, false)
	if err != nil {
		return err
	}

	if err := s.Repo.UpdateFields(t.ID, map[string]any{"severity": severity}); err != nil {
		return err
	}

	s.Notifier.SeverityUpdated(t.ID, severity)
	return nil
}

// Reopen — เจ้าของหรือ admin; กลับเป็น open และล้าง closed_at
func (s *TicketService) Reopen(caller Identity, ticketID uint) error {
	t, err := s.loadForWrite(caller, ticketID, true)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"status":    entity.StatusOpen,
		"closed_at": nil,
	}
	if err := s.Repo.UpdateFields(t.ID, updates); err != nil {
		return err
	}

	s.Notifier.TicketReopened(t.ID)
	return nil
}
