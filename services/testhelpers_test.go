package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/ws"
)

// DB in-memory แยกต่อ test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Ticket{}, &entity.Comment{}, &entity.Attachment{},
		&entity.Settings{},
	))
	require.NoError(t, db.FirstOrCreate(&entity.Settings{}, entity.Settings{ID: 1}).Error)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role, department string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	u := &entity.User{
		Username:   username,
		Email:      username + "@graviti.com",
		Password:   string(hash),
		Role:       role,
		Department: department,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func asIdentity(u *entity.User) Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// notifier จริงแต่ไม่ start worker — hub ไม่มี client, mail queue ก็แค่ค้างใน buffer
func newTestNotifier(db *gorm.DB) *Notifier {
	settingsRepo := repository.NewSettingsRepository(db)
	return NewNotifier(ws.NewEventHub(), NewMailer(settingsRepo, "http://localhost:3000"))
}

func newTicketService(t *testing.T, db *gorm.DB) *TicketService {
	t.Helper()
	return NewTicketService(db, repository.NewTicketRepository(db), newTestNotifier(db))
}

// เก็บ event ที่ถูก broadcast ไว้ตรวจใน test
type recordingBroadcaster struct {
	events []ws.Event
}

func (r *recordingBroadcaster) Broadcast(event string, data any) {
	r.events = append(r.events, ws.Event{Event: event, Data: data})
}

func newRecordingTicketService(t *testing.T, db *gorm.DB) (*TicketService, *recordingBroadcaster) {
	t.Helper()
	rec := &recordingBroadcaster{}
	notifier := NewNotifier(rec, NewMailer(repository.NewSettingsRepository(db), "http://localhost:3000"))
	return NewTicketService(db, repository.NewTicketRepository(db), notifier), rec
}
