package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecordHandler struct {
	svc     *service.RecordService
	metrics *metrics.Collector
}

func NewRecordHandler(svc *service.RecordService, collector *metrics.Collector) *RecordHandler {
	return &RecordHandler{svc: svc, metrics: collector}
}

type createRecordRequest struct {
	PatientID         uuid.UUID             `json:"patientId" binding:"required"`
	DoctorID          uuid.UUID             `json:"doctorId" binding:"required"`
	AppointmentID     *uuid.UUID            `json:"appointmentId"`
	VisitType         string                `json:"visitType" binding:"required"`
	ChiefComplaint    string                `json:"chiefComplaint"`
	Symptoms          []string              `json:"symptoms"`
	Diagnosis         string                `json:"diagnosis"`
	Treatment         string                `json:"treatment"`
	Prescriptions     []record.Prescription `json:"prescriptions"`
	Vitals            *record.Vitals        `json:"vitals"`
	Tests             []record.TestResult   `json:"tests"`
	FollowUpDate      *time.Time            `json:"followUpDate"`
	FollowUpCompleted bool                  `json:"followUpCompleted"`
	Notes             string                `json:"notes"`
	Attachments       []string              `json:"attachments"`
}

type updateRecordRequest struct {
	VisitType         *string                `json:"visitType"`
	ChiefComplaint    *string                `json:"chiefComplaint"`
	Symptoms          *[]string              `json:"symptoms"`
	Diagnosis         *string                `json:"diagnosis"`
	Treatment         *string                `json:"treatment"`
	Prescriptions     *[]record.Prescription `json:"prescriptions"`
	Vitals            *record.Vitals         `json:"vitals"`
	Tests             *[]record.TestResult   `json:"tests"`
	FollowUpDate      *time.Time             `json:"followUpDate"`
	FollowUpCompleted *bool                  `json:"followUpCompleted"`
	Notes             *string                `json:"notes"`
	Attachments       *[]string              `json:"attachments"`
}

func (h *RecordHandler) List(c *gin.Context) {
	q := &record.ListRecordsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "limit", 10),
	}
	if raw := c.Query("patientId"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid patientId: must be a valid UUID")
			return
		}
		q.PatientID = &patientID
	}
	if raw := c.Query("doctorId"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid doctorId: must be a valid UUID")
			return
		}
		q.DoctorID = &doctorID
	}

	page, err := h.svc.ListRecords(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "records", page.Records, pagination(page.Page, page.TotalPages, page.TotalCount))
}

// PatientHistory returns a patient's full record history. Registered before
// the /:id route so "patient" never parses as an id.
func (h *RecordHandler) PatientHistory(c *gin.Context) {
	patientID, ok := parseUUID(c, "patientId")
	if !ok {
		return
	}

	history, err := h.svc.PatientHistory(c.Request.Context(), patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "records", history)
}

func (h *RecordHandler) Create(c *gin.Context) {
	var req createRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.svc.CreateRecord(c.Request.Context(), &record.CreateRecordCommand{
		PatientID:         req.PatientID,
		DoctorID:          req.DoctorID,
		AppointmentID:     req.AppointmentID,
		VisitType:         record.VisitType(req.VisitType),
		ChiefComplaint:    req.ChiefComplaint,
		Symptoms:          req.Symptoms,
		Diagnosis:         req.Diagnosis,
		Treatment:         req.Treatment,
		Prescriptions:     req.Prescriptions,
		Vitals:            req.Vitals,
		Tests:             req.Tests,
		FollowUpDate:      req.FollowUpDate,
		FollowUpCompleted: req.FollowUpCompleted,
		Notes:             req.Notes,
		Attachments:       req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.metrics.RecordsCreatedTotal.Inc()
	respondEntity(c, http.StatusCreated, "Medical record created successfully", "record", m)
}

func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	m, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "record", m)
}

func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &record.UpdateRecordCommand{
		ChiefComplaint:    req.ChiefComplaint,
		Symptoms:          req.Symptoms,
		Diagnosis:         req.Diagnosis,
		Treatment:         req.Treatment,
		Prescriptions:     req.Prescriptions,
		Vitals:            req.Vitals,
		Tests:             req.Tests,
		FollowUpDate:      req.FollowUpDate,
		FollowUpCompleted: req.FollowUpCompleted,
		Notes:             req.Notes,
		Attachments:       req.Attachments,
	}
	if req.VisitType != nil {
		vt := record.VisitType(*req.VisitType)
		cmd.VisitType = &vt
	}

	m, err := h.svc.UpdateRecord(c.Request.Context(), id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusOK, "Medical record updated successfully", "record", m)
}

// Delete removes the record permanently.
func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRecord(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Medical record deleted successfully")
}
