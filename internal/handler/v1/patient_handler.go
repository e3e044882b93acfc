package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	svc     *service.PatientService
	metrics *metrics.Collector
}

func NewPatientHandler(svc *service.PatientService, collector *metrics.Collector) *PatientHandler {
	return &PatientHandler{svc: svc, metrics: collector}
}

type createPatientRequest struct {
	PersonalInfo patient.PersonalInfo `json:"personalInfo" binding:"required"`
	MedicalInfo  patient.MedicalInfo  `json:"medicalInfo"`
	Insurance    *patient.Insurance   `json:"insurance"`
}

type updatePatientRequest struct {
	PersonalInfo *patient.PersonalInfo `json:"personalInfo"`
	MedicalInfo  *patient.MedicalInfo  `json:"medicalInfo"`
	Insurance    *patient.Insurance    `json:"insurance"`
	IsActive     *bool                 `json:"isActive"`
}

func (h *PatientHandler) List(c *gin.Context) {
	q := &patient.ListPatientsQuery{
		Search:          c.Query("search"),
		IncludeInactive: parseQueryBool(c, "includeInactive"),
		Page:            parseQueryInt(c, "page", 1),
		PageSize:        parseQueryInt(c, "limit", 10),
	}

	page, err := h.svc.ListPatients(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "patients", page.Patients, pagination(page.Page, page.TotalPages, page.TotalCount))
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := currentClaims(c)
	cmd := &patient.CreatePatientCommand{
		PersonalInfo: req.PersonalInfo,
		MedicalInfo:  req.MedicalInfo,
		Insurance:    req.Insurance,
		RegisteredBy: &claims.UserID,
	}

	p, err := h.svc.RegisterPatient(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.metrics.PatientsRegisteredTotal.Inc()
	respondEntity(c, http.StatusCreated, "Patient registered successfully", "patient", p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "patient", p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), id, &patient.UpdatePatientCommand{
		PersonalInfo: req.PersonalInfo,
		MedicalInfo:  req.MedicalInfo,
		Insurance:    req.Insurance,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusOK, "Patient updated successfully", "patient", p)
}

// Delete deactivates the patient. The row is kept so history keeps resolving.
func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeactivatePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Patient deactivated successfully")
}
