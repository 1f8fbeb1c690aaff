package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
	"github.com/gokulkolipaka/graviti-ticketing-v2/utils"
)

type TicketController struct {
	ticketService *services.TicketService
	userRepo      *repository.UserRepository
	uploadDir     string
}

func NewTicketController(ticketService *services.TicketService, userRepo *repository.UserRepository, uploadDir string) *TicketController {
	return &TicketController{ticketService: ticketService, userRepo: userRepo, uploadDir: uploadDir}
}

func ticketID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid ticket id")
		return 0, false
	}
	return uint(id), true
}

// POST /api/tickets (multipart)
func (tc *TicketController) Create(c *gin.Context) {
	var req struct {
		TicketType      string `form:"ticket_type"`
		Severity        string `form:"severity"`
		SupervisorEmail string `form:"supervisor_email"`
		Location        string `form:"location"`
		EmployeeID      string `form:"employee_id"`
		Description     string `form:"description"`
	}
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	// validate ก่อนแตะ DB — ตอบรายฟิลด์แบบระบบเดิม
	fields := map[string]string{}
	if req.TicketType == "" {
		fields["ticket_type"] = "Ticket type is required"
	}
	if !entity.IsValidSeverity(req.Severity) {
		fields["severity"] = "Invalid severity"
	}
	if req.Description == "" {
		fields["description"] = "Description is required"
	}
	if len(fields) > 0 {
		resp.ValidationError(c, fields)
		return
	}

	caller := currentIdentity(c)

	// department มาจาก record ของ requestor
	// user หายจากตาราง (ถูกลบทีหลัง) ยังเปิด ticket ได้แบบไม่มี department
	// แต่ DB พังจริงต้องตอบ 500 ไม่ใช่เปิด ticket เงียบ ๆ
	department := ""
	if u, err := tc.userRepo.FindByID(caller.ID); err == nil {
		department = u.Department
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		resp.ServerError(c, err)
		return
	}

	// เซฟไฟล์แนบลง disk ก่อน แล้วค่อย insert ใน transaction เดียวกับ ticket
	var files []services.AttachmentInput
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["attachments"] {
			filename, path, err := utils.SaveUpload(c, fh, tc.uploadDir)
			if err != nil {
				resp.ServerError(c, err)
				return
			}
			files = append(files, services.AttachmentInput{
				Filename:     filename,
				OriginalName: fh.Filename,
				Path:         path,
			})
		}
	}

	ticket, err := tc.ticketService.Create(caller, department, services.CreateTicketInput{
		TicketType:      req.TicketType,
		Severity:        req.Severity,
		SupervisorEmail: req.SupervisorEmail,
		Location:        req.Location,
		EmployeeID:      req.EmployeeID,
		Description:     req.Description,
	}, files)
	if err != nil {
		fail(c, err)
		return
	}

	resp.Created(c, gin.H{"ticketId": ticket.ID, "ticket": ticket})
}

// GET /api/tickets?status&assigned_to&department&severity
func (tc *TicketController) List(c *gin.Context) {
	f := repository.TicketFilter{
		Status:     c.Query("status"),
		AssignedTo: c.Query("assigned_to"),
		Department: c.Query("department"),
		Severity:   c.Query("severity"),
	}

	tickets, err := tc.ticketService.List(currentIdentity(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, tickets)
}

// GET /api/tickets/:id → ticket + comments + attachments
func (tc *TicketController) Detail(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	detail, err := tc.ticketService.Get(currentIdentity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, detail)
}

// PUT /api/tickets/:id/status {status, assigned_to?}
func (tc *TicketController) UpdateStatus(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req struct {
		Status     string `json:"status" binding:"required"`
		AssignedTo string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := tc.ticketService.UpdateStatus(currentIdentity(c), id, req.Status, req.AssignedTo); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Ticket updated successfully"})
}

// PUT /api/tickets/:id/assign (admin) {assigned_to}
func (tc *TicketController) Assign(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req struct {
		AssignedTo string `json:"assigned_to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := tc.ticketService.Assign(currentIdentity(c), id, req.AssignedTo); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Ticket assigned successfully"})
}

// PUT /api/tickets/:id/severity (admin) {severity}
func (tc *TicketController) UpdateSeverity(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req struct {
		Severity string `json:"severity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := tc.ticketService.ChangeSeverity(currentIdentity(c), id, req.Severity); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Severity updated successfully"})
}

// PUT /api/tickets/:id/reopen (เจ้าของหรือ admin)
func (tc *TicketController) Reopen(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	if err := tc.ticketService.Reopen(currentIdentity(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Ticket reopened successfully"})
}

// POST /api/tickets/:id/comments {comment}
func (tc *TicketController) AddComment(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if _, err := tc.ticketService.AddComment(currentIdentity(c), id, req.Comment); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Comment added successfully"})
}

// GET /api/tickets/overdue (admin)
func (tc *TicketController) Overdue(c *gin.Context) {
	tickets, err := tc.ticketService.ListOverdue()
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, tickets)
}
