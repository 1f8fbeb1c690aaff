package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

func createTicket(t *testing.T, svc *TicketService, caller Identity, severity string) *entity.Ticket {
	t.Helper()
	ticket, err := svc.Create(caller, "Ops", CreateTicketInput{
		TicketType:  "Laptop",
		Severity:    severity,
		Description: "won't boot",
	}, nil)
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketDefaults(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	assert.Equal(t, entity.StatusOpen, ticket.Status)
	assert.Equal(t, "bob", ticket.Requestor)
	assert.Equal(t, 72, ticket.TimeToResolve)
	assert.Nil(t, ticket.ClosedAt)
	assert.Equal(t, "Ops", ticket.Department)
}

func TestCreateTicketRejectsUnknownSeverity(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	_, err := svc.Create(asIdentity(bob), "Ops", CreateTicketInput{
		TicketType:  "Laptop",
		Severity:    "Critical", // ไม่อยู่ใน High/Medium/Low
		Description: "won't boot",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	// ต้องไม่มีแถวหลงเข้า DB
	var count int64
	db.Model(&entity.Ticket{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateTicketWithAttachments(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	files := []AttachmentInput{
		{Filename: "1-a.png", OriginalName: "a.png", Path: "uploads/1-a.png"},
		{Filename: "2-b.log", OriginalName: "b.log", Path: "uploads/2-b.log"},
	}
	ticket, err := svc.Create(asIdentity(bob), "Ops", CreateTicketInput{
		TicketType:  "Laptop",
		Severity:    entity.SeverityLow,
		Description: "screen flicker",
	}, files)
	require.NoError(t, err)

	attachments, err := svc.Repo.ListAttachments(ticket.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, "a.png", attachments[0].OriginalName)
}

func TestClosedAtFollowsStatus(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	ticket := createTicket(t, svc, caller, entity.SeverityHigh)

	// ปิด → closed_at ต้องถูก set
	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusClosed, ""))
	got, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, got.Status)
	require.NotNil(t, got.ClosedAt)

	// reopen → closed_at ต้องถูกล้าง
	require.NoError(t, svc.Reopen(caller, ticket.ID))
	got, err = svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOpen, got.Status)
	assert.Nil(t, got.ClosedAt)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	ticket := createTicket(t, svc, caller, entity.SeverityMedium)

	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusInProgress, ""))
	first, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	// สถานะเดิมซ้ำ → ไม่ error, updated_at ขยับ
	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusInProgress, ""))
	second, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInProgress, second.Status)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestCloseTwiceKeepsClosedAt(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	ticket := createTicket(t, svc, caller, entity.SeverityHigh)

	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusClosed, ""))
	first, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ClosedAt)

	time.Sleep(10 * time.Millisecond)

	// ปิดซ้ำ → เวลาปิดเดิมต้องไม่ขยับ
	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusClosed, ""))
	second, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, second.ClosedAt)
	assert.True(t, second.ClosedAt.Equal(*first.ClosedAt))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	ticket := createTicket(t, svc, caller, entity.SeverityMedium)
	assert.ErrorIs(t, svc.UpdateStatus(caller, ticket.ID, "resolved", ""), ErrInvalidStatus)
}

func TestUpdateStatusOwnerOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	alice := seedUser(t, db, "alice", "secret2", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	// เพื่อนร่วมแผนกก็เปลี่ยนสถานะ ticket คนอื่นไม่ได้
	assert.ErrorIs(t, svc.UpdateStatus(asIdentity(alice), ticket.ID, entity.StatusClosed, ""), ErrForbidden)

	assert.NoError(t, svc.UpdateStatus(asIdentity(bob), ticket.ID, entity.StatusInProgress, ""))
	assert.NoError(t, svc.UpdateStatus(asIdentity(admin), ticket.ID, entity.StatusClosed, ""))
}

func TestAssignAdminOnly(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)
	before, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)

	// เจ้าของเองก็ assign ไม่ได้
	assert.ErrorIs(t, svc.Assign(asIdentity(bob), ticket.ID, "carol"), ErrForbidden)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, svc.Assign(asIdentity(admin), ticket.ID, "carol"))
	got, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "carol", *got.AssignedTo)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt))
}

func TestChangeSeverityAdminOnly(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityLow)

	assert.ErrorIs(t, svc.ChangeSeverity(asIdentity(bob), ticket.ID, entity.SeverityHigh), ErrForbidden)
	assert.ErrorIs(t, svc.ChangeSeverity(asIdentity(admin), ticket.ID, "Critical"), ErrInvalidSeverity)

	require.NoError(t, svc.ChangeSeverity(asIdentity(admin), ticket.ID, entity.SeverityHigh))
	got, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SeverityHigh, got.Severity)
}

func TestReopenOwnerOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	alice := seedUser(t, db, "alice", "secret2", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)
	require.NoError(t, svc.UpdateStatus(asIdentity(bob), ticket.ID, entity.StatusClosed, ""))

	assert.ErrorIs(t, svc.Reopen(asIdentity(alice), ticket.ID), ErrForbidden)
	assert.NoError(t, svc.Reopen(asIdentity(bob), ticket.ID))

	require.NoError(t, svc.UpdateStatus(asIdentity(admin), ticket.ID, entity.StatusClosed, ""))
	assert.NoError(t, svc.Reopen(asIdentity(admin), ticket.ID))
}

func TestListScopedByRole(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	alice := seedUser(t, db, "alice", "secret2", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	// admin เห็น
	rows, err := svc.List(asIdentity(admin), repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ticket.ID, rows[0].ID)

	// alice ไม่เห็นของ bob แม้จะส่ง filter มาเอง
	rows, err = svc.List(asIdentity(alice), repository.TicketFilter{Department: "Ops"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// non-admin ยัดค่า Requestor มาเองก็ถูกทับด้วย identity ตัวเอง
	rows, err = svc.List(asIdentity(alice), repository.TicketFilter{Requestor: "bob"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// bob เห็นของตัวเอง
	rows, err = svc.List(asIdentity(bob), repository.TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	first := createTicket(t, svc, caller, entity.SeverityLow)
	time.Sleep(10 * time.Millisecond)
	second := createTicket(t, svc, caller, entity.SeverityHigh)

	rows, err := svc.List(caller, repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestGetAccessControl(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	alice := seedUser(t, db, "alice", "secret2", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	_, err := svc.Get(asIdentity(alice), ticket.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	detail, err := svc.Get(asIdentity(admin), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, detail.ID)

	_, err = svc.Get(asIdentity(admin), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsOrderedAndGuarded(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	alice := seedUser(t, db, "alice", "secret2", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	_, err := svc.AddComment(asIdentity(alice), ticket.ID, "sneaky")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddComment(asIdentity(bob), ticket.ID, "still broken")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.AddComment(asIdentity(admin), ticket.ID, "looking into it")
	require.NoError(t, err)

	detail, err := svc.Get(asIdentity(bob), ticket.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "still broken", detail.Comments[0].Body)
	assert.Equal(t, "bob", detail.Comments[0].Username)
	assert.Equal(t, "admin", detail.Comments[1].Username)
}

func TestOverdueIsDerived(t *testing.T) {
	db := newTestDB(t)
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)
	caller := asIdentity(bob)

	ticket := createTicket(t, svc, caller, entity.SeverityHigh)

	// ย้อน created_at ไป 80 ชม. (เกิน time_to_resolve 72)
	old := time.Now().Add(-80 * time.Hour)
	require.NoError(t, db.Model(&entity.Ticket{}).Where("id = ?", ticket.ID).
		Update("created_at", old).Error)

	got, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.True(t, got.Overdue(time.Now()))

	rows, err := svc.List(caller, repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Overdue)

	overdue, err := svc.ListOverdue()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, ticket.ID, overdue[0].ID)

	// ปิดแล้วต้องไม่ overdue ต่อให้เก่าแค่ไหน
	require.NoError(t, svc.UpdateStatus(caller, ticket.ID, entity.StatusClosed, ""))
	got, err = svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.False(t, got.Overdue(time.Now()))

	overdue, err = svc.ListOverdue()
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestAssignedToViaStatusEndpointAdminOnly(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc := newTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)

	// เจ้าของเปลี่ยนสถานะได้ แต่ assigned_to ที่แนบมาต้องถูกเมิน
	require.NoError(t, svc.UpdateStatus(asIdentity(bob), ticket.ID, entity.StatusInProgress, "carol"))
	got, err := svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)

	// admin แนบ assigned_to มากับ status ได้
	require.NoError(t, svc.UpdateStatus(asIdentity(admin), ticket.ID, entity.StatusInProgress, "carol"))
	got, err = svc.Repo.GetTicket(ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "carol", *got.AssignedTo)
}

func TestStatusBroadcastCarriesOnlySavedAssignee(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", "admin123", entity.RoleAdmin, "IT")
	bob := seedUser(t, db, "bob", "secret1", entity.RoleUser, "Ops")
	svc, rec := newRecordingTicketService(t, db)

	ticket := createTicket(t, svc, asIdentity(bob), entity.SeverityHigh)
	rec.events = nil

	// non-admin แนบ assigned_to → ไม่ถูกบันทึก และต้องไม่หลุดไปกับ event
	require.NoError(t, svc.UpdateStatus(asIdentity(bob), ticket.ID, entity.StatusInProgress, "carol"))
	require.Len(t, rec.events, 1)
	assert.Equal(t, "ticketUpdated", rec.events[0].Event)
	data := rec.events[0].Data.(map[string]any)
	assert.NotContains(t, data, "assignedTo")

	// admin แนบ → บันทึกจริง event ถึงมี assignedTo
	require.NoError(t, svc.UpdateStatus(asIdentity(admin), ticket.ID, entity.StatusInProgress, "carol"))
	require.Len(t, rec.events, 2)
	data = rec.events[1].Data.(map[string]any)
	assert.Equal(t, "carol", data["assignedTo"])
}
