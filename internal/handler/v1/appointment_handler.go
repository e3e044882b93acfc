package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	svc     *service.AppointmentService
	metrics *metrics.Collector
}

func NewAppointmentHandler(svc *service.AppointmentService, collector *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, metrics: collector}
}

type createAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	DoctorID  uuid.UUID `json:"doctorId" binding:"required"`
	Date      time.Time `json:"appointmentDate" binding:"required"`
	Time      string    `json:"appointmentTime" binding:"required"`
	Duration  int       `json:"duration"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Symptoms  string    `json:"symptoms"`
	Notes     string    `json:"notes"`
}

type updateAppointmentRequest struct {
	Date     *time.Time `json:"appointmentDate"`
	Time     *string    `json:"appointmentTime"`
	Duration *int       `json:"duration"`
	Type     *string    `json:"type"`
	Status   *string    `json:"status"`
	Priority *string    `json:"priority"`
	Symptoms *string    `json:"symptoms"`
	Notes    *string    `json:"notes"`
}

func (h *AppointmentHandler) List(c *gin.Context) {
	q := &appointment.ListAppointmentsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "limit", 10),
	}
	if raw := c.Query("status"); raw != "" {
		status := appointment.AppointmentStatus(raw)
		q.Status = &status
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
			return
		}
		q.Date = &date
	}
	if raw := c.Query("doctorId"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid doctorId: must be a valid UUID")
			return
		}
		q.DoctorID = &doctorID
	}

	page, err := h.svc.ListAppointments(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "appointments", page.Appointments, pagination(page.Page, page.TotalPages, page.TotalCount))
}

// Today lists every appointment on the local calendar day, sorted by the raw
// time string. Registered before the /:id route so "today" never parses as
// an id.
func (h *AppointmentHandler) Today(c *gin.Context) {
	appointments, err := h.svc.TodaysAppointments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "appointments", appointments)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := currentClaims(c)
	a, err := h.svc.ScheduleAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Type:      appointment.AppointmentType(req.Type),
		Priority:  appointment.Priority(req.Priority),
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
		CreatedBy: &claims.UserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondEntity(c, http.StatusCreated, "Appointment scheduled successfully", "appointment", a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "appointment", a)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &appointment.UpdateAppointmentCommand{
		Date:     req.Date,
		Time:     req.Time,
		Duration: req.Duration,
		Symptoms: req.Symptoms,
		Notes:    req.Notes,
	}
	if req.Type != nil {
		t := appointment.AppointmentType(*req.Type)
		cmd.Type = &t
	}
	if req.Status != nil {
		s := appointment.AppointmentStatus(*req.Status)
		cmd.Status = &s
	}
	if req.Priority != nil {
		p := appointment.Priority(*req.Priority)
		cmd.Priority = &p
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Status != nil {
		h.metrics.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	}
	respondEntity(c, http.StatusOK, "Appointment updated successfully", "appointment", a)
}

// Delete cancels the appointment; the row survives with status cancelled.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.CancelAppointment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Appointment cancelled successfully")
}
