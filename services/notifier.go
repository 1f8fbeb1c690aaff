package services

import (
	"log"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

type mailJob struct {
	to     string
	ticket *entity.Ticket
}

// Broadcaster กระจาย event ให้ทุก live session (ปกติคือ ws.EventHub)
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Notifier กระจายเหตุการณ์หลัง commit: broadcast เข้า hub + ส่งเมลผ่าน worker
// ทั้งคู่เป็น best-effort — พังแค่ log ไม่กระทบ response ที่ตอบไปแล้ว
type Notifier struct {
	hub    Broadcaster
	mailer *Mailer
	mailQ  chan mailJob
}

func NewNotifier(hub Broadcaster, mailer *Mailer) *Notifier {
	return &Notifier{
		hub:    hub,
		mailer: mailer,
		mailQ:  make(chan mailJob, 32),
	}
}

// Run = worker ส่งเมลนอก request path (SMTP ช้าก็ไม่ block การสร้าง ticket)
func (n *Notifier) Run() {
	for job := range n.mailQ {
		if err := n.mailer.SendTicketCreated(job.to, job.ticket); err != nil {
			log.Printf("email error: %v", err)
		}
	}
}

func (n *Notifier) enqueueMail(to string, t *entity.Ticket) {
	select {
	case n.mailQ <- mailJob{to: to, ticket: t}:
	default:
		log.Printf("mail queue full, dropping notification for ticket %d", t.ID)
	}
}

// ---------------- Lifecycle events ----------------

func (n *Notifier) TicketCreated(t *entity.Ticket) {
	n.hub.Broadcast("newTicket", map[string]any{
		"id":         t.ID,
		"ticketType": t.TicketType,
		"severity":   t.Severity,
		"requestor":  t.Requestor,
	})
	if t.SupervisorEmail != "" {
		n.enqueueMail(t.SupervisorEmail, t)
	}
}

func (n *Notifier) TicketUpdated(ticketID uint, status string, assignedTo string) {
	data := map[string]any{"id": ticketID, "status": status}
	if assignedTo != "" {
		data["assignedTo"] = assignedTo
	}
	n.hub.Broadcast("ticketUpdated", data)
}

func (n *Notifier) TicketAssigned(ticketID uint, assignedTo string) {
	n.hub.Broadcast("ticketAssigned", map[string]any{"id": ticketID, "assignedTo": assignedTo})
}

func (n *Notifier) SeverityUpdated(ticketID uint, severity string) {
	n.hub.Broadcast("severityUpdated", map[string]any{"id": ticketID, "severity": severity})
}

func (n *Notifier) TicketReopened(ticketID uint) {
	n.hub.Broadcast("ticketReopened", map[string]any{"id": ticketID})
}

func (n *Notifier) CommentAdded(ticketID uint, username string) {
	n.hub.Broadcast("commentAdded", map[string]any{"ticketId": ticketID, "username": username})
}
