package services

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

// Mailer ส่งอีเมลแจ้งเตือนผ่าน SMTP ตามค่าใน settings
// อ่าน settings ใหม่ทุกครั้ง เพราะ admin แก้ค่าได้ระหว่างรัน
type Mailer struct {
	settingsRepo *repository.SettingsRepository
	baseURL      string
	from         string
}

func NewMailer(repo *repository.SettingsRepository, baseURL string) *Mailer {
	return &Mailer{
		settingsRepo: repo,
		baseURL:      baseURL,
		from:         "noreply@graviti.com",
	}
}

// SendTicketCreated แจ้ง supervisor ว่ามี ticket ใหม่
func (m *Mailer) SendTicketCreated(to string, t *entity.Ticket) error {
	set, err := m.settingsRepo.Get()
	if err != nil {
		return err
	}
	if set.EmailHost == "" {
		return errors.New("smtp not configured")
	}

	subject := fmt.Sprintf("New IT Ticket #%d - %s", t.ID, t.TicketType)
	htmlBody := fmt.Sprintf(`
		<h2>New IT Ticket Created</h2>
		<p><strong>Ticket ID:</strong> %d</p>
		<p><strong>Type:</strong> %s</p>
		<p><strong>Severity:</strong> %s</p>
		<p><strong>Requestor:</strong> %s</p>
		<p><strong>Description:</strong> %s</p>
		<p><strong>Location:</strong> %s</p>
		<p><a href="%s/admin.html">View Ticket Details</a></p>
	`, t.ID, t.TicketType, t.Severity, t.Requestor, t.Description, t.Location, m.baseURL)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(set.EmailHost, set.EmailPort, set.EmailUser, set.EmailPassword)
	return dialer.DialAndSend(msg)
}
