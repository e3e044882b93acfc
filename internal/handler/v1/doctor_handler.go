package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	svc *service.DoctorService
}

func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

type createDoctorRequest struct {
	PersonalInfo     doctor.PersonalInfo     `json:"personalInfo" binding:"required"`
	ProfessionalInfo doctor.ProfessionalInfo `json:"professionalInfo" binding:"required"`
	Schedule         []doctor.ScheduleSlot   `json:"schedule"`
	ConsultationFee  float64                 `json:"consultationFee"`
}

type updateDoctorRequest struct {
	PersonalInfo     *doctor.PersonalInfo     `json:"personalInfo"`
	ProfessionalInfo *doctor.ProfessionalInfo `json:"professionalInfo"`
	Schedule         *[]doctor.ScheduleSlot   `json:"schedule"`
	ConsultationFee  *float64                 `json:"consultationFee"`
	IsActive         *bool                    `json:"isActive"`
}

func (h *DoctorHandler) List(c *gin.Context) {
	q := &doctor.ListDoctorsQuery{
		Search:          c.Query("search"),
		Specialization:  c.Query("specialization"),
		IncludeInactive: parseQueryBool(c, "includeInactive"),
		Page:            parseQueryInt(c, "page", 1),
		PageSize:        parseQueryInt(c, "limit", 10),
	}

	page, err := h.svc.ListDoctors(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "doctors", page.Doctors, pagination(page.Page, page.TotalPages, page.TotalCount))
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	claims := currentClaims(c)
	d, err := h.svc.AddDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		PersonalInfo:     req.PersonalInfo,
		ProfessionalInfo: req.ProfessionalInfo,
		Schedule:         req.Schedule,
		ConsultationFee:  req.ConsultationFee,
		AddedBy:          &claims.UserID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusCreated, "Doctor added successfully", "doctor", d)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "doctor", d)
}

func (h *DoctorHandler) GetSchedule(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	schedule, err := h.svc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOne(c, "schedule", schedule)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.UpdateDoctor(c.Request.Context(), id, &doctor.UpdateDoctorCommand{
		PersonalInfo:     req.PersonalInfo,
		ProfessionalInfo: req.ProfessionalInfo,
		Schedule:         req.Schedule,
		ConsultationFee:  req.ConsultationFee,
		IsActive:         req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEntity(c, http.StatusOK, "Doctor updated successfully", "doctor", d)
}

// Delete deactivates the doctor; existing appointments keep resolving.
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeactivateDoctor(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "Doctor deactivated successfully")
}
