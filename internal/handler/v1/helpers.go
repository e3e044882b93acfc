package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Pagination is the list-envelope footer: current page, total pages, total rows.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// respondList writes the list envelope {success, <key>, pagination}.
func respondList(c *gin.Context, key string, items any, p Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		key:          items,
		"pagination": p,
	})
}

// respondEntity writes the mutation envelope {success, message, <key>}.
func respondEntity(c *gin.Context, status int, message, key string, entity any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		key:       entity,
	})
}

// respondOne writes the single-read envelope {success, <key>}.
func respondOne(c *gin.Context, key string, entity any) {
	c.JSON(http.StatusOK, gin.H{"success": true, key: entity})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"fields":  validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, record.ErrRecordNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, patient.ErrDuplicatePatientID),
		errors.Is(err, doctor.ErrDuplicateDoctorID),
		errors.Is(err, appointment.ErrDuplicateAppointmentID),
		errors.Is(err, record.ErrDuplicateRecordID):
		respondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "access denied")

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, service.ErrAccountInactive):
		respondError(c, http.StatusUnauthorized, "account is inactive")

	case errors.Is(err, service.ErrAccountLocked):
		respondError(c, http.StatusTooManyRequests, "account temporarily locked")

	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+param+": must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

func parseQueryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

func pagination(page int, totalPages int, total int64) Pagination {
	return Pagination{Current: page, Pages: totalPages, Total: total}
}
