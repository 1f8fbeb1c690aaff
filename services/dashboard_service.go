package services

import (
	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

// DashboardService นับตัวเลขสรุป — ไม่ cache คำนวณใหม่ทุกครั้ง
type DashboardService struct {
	ticketRepo *repository.TicketRepository
}

func NewDashboardService(repo *repository.TicketRepository) *DashboardService {
	return &DashboardService{ticketRepo: repo}
}

type DashboardStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Closed     int64 `json:"closed"`
	Overdue    int64 `json:"overdue"`
}

// Stats = 5 count ที่ใช้ predicate ร่วมกัน
func (s *DashboardService) Stats(f repository.StatsFilter) (*DashboardStats, error) {
	out := &DashboardStats{}

	var err error
	if out.Total, err = s.ticketRepo.CountAll(f); err != nil {
		return nil, err
	}
	if out.Open, err = s.ticketRepo.CountByStatus(f, entity.StatusOpen); err != nil {
		return nil, err
	}
	if out.InProgress, err = s.ticketRepo.CountByStatus(f, entity.StatusInProgress); err != nil {
		return nil, err
	}
	if out.Closed, err = s.ticketRepo.CountByStatus(f, entity.StatusClosed); err != nil {
		return nil, err
	}
	if out.Overdue, err = s.ticketRepo.CountOverdue(f); err != nil {
		return nil, err
	}
	return out, nil
}
