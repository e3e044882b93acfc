package appointment

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/google/uuid"
)

type AppointmentType string

const (
	TypeConsultation   AppointmentType = "consultation"
	TypeFollowUp       AppointmentType = "follow-up"
	TypeEmergency      AppointmentType = "emergency"
	TypeRoutineCheckup AppointmentType = "routine-checkup"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeConsultation, TypeFollowUp, TypeEmergency, TypeRoutineCheckup:
		return true
	}
	return false
}

// AppointmentStatus has no enforced transition graph: any status may
// overwrite any other. Updates only check the value is a known status.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Appointment keeps the calendar date and the time-of-day string as separate
// fields rather than one instant; the time string ("10:00 AM") is display
// data and sorts lexically.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Display identity in the APP000001 format.
	AppointmentID string `gorm:"column:appointment_id;type:varchar(12);uniqueIndex" json:"appointmentId"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patientId"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctorId"`

	Date     time.Time         `gorm:"column:appointment_date;not null;index" json:"appointmentDate"`
	Time     string            `gorm:"column:appointment_time;type:varchar(20);not null" json:"appointmentTime"`
	Duration int               `gorm:"column:duration_mins;not null;default:30" json:"duration"`
	Type     AppointmentType   `gorm:"column:type;type:varchar(30);not null;default:'consultation'" json:"type"`
	Status   AppointmentStatus `gorm:"column:status;type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Priority Priority          `gorm:"column:priority;type:varchar(10);not null;default:'medium';index" json:"priority"`

	Symptoms string `gorm:"column:symptoms;type:text" json:"symptoms,omitempty"`
	Notes    string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`

	// Resolved strong references, preloaded at read time.
	Patient *patient.Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *doctor.Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	Creator *domain.UserRef `gorm:"-" json:"creator,omitempty"`
}

func (Appointment) TableName() string {
	return "clinic.appointments"
}

type CreateAppointmentCommand struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      time.Time
	Time      string
	Duration  int
	Type      AppointmentType
	Priority  Priority
	Symptoms  string
	Notes     string
	CreatedBy *uuid.UUID
}

type UpdateAppointmentCommand struct {
	Date     *time.Time
	Time     *string
	Duration *int
	Type     *AppointmentType
	Status   *AppointmentStatus
	Priority *Priority
	Symptoms *string
	Notes    *string
}

// ListAppointmentsQuery filters appointments. A nil Status excludes
// cancelled rows (the soft-delete default scope); an explicit Status
// returns exactly that status, cancelled included.
type ListAppointmentsQuery struct {
	Status   *AppointmentStatus
	Date     *time.Time // matches the calendar day containing this instant
	DoctorID *uuid.UUID
	Page     int
	PageSize int
}

type PagedAppointments struct {
	Appointments []*Appointment
	TotalCount   int64
	Page         int
	PageSize     int
	TotalPages   int
}
