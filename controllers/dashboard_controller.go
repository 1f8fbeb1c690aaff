package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
)

type DashboardController struct {
	dashboardService *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: service}
}

// GET /api/dashboard/stats?department&category&team_member
func (dc *DashboardController) Stats(c *gin.Context) {
	f := repository.StatsFilter{
		Department: c.Query("department"),
		Category:   c.Query("category"),
		TeamMember: c.Query("team_member"),
	}

	stats, err := dc.dashboardService.Stats(f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, stats)
}
