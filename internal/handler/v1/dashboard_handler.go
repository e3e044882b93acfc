package v1

import (
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "stats", stats)
}

func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 10)

	activities, err := h.svc.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "activities", activities)
}

func (h *DashboardHandler) TodaysAppointments(c *gin.Context) {
	entries, err := h.svc.TodaysAppointments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "appointments", entries)
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "summary", summary)
}
