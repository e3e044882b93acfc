package record

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/google/uuid"
)

// VisitType shares the appointment type vocabulary.
type VisitType = appointment.AppointmentType

// Prescription is an embedded line item with no independent identity.
type Prescription struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type BloodPressure struct {
	Systolic  *int `json:"systolic,omitempty"`
	Diastolic *int `json:"diastolic,omitempty"`
}

type Vitals struct {
	Temperature   *float64      `json:"temperature,omitempty"`
	BloodPressure BloodPressure `json:"bloodPressure"`
	HeartRate     *int          `json:"heartRate,omitempty"`
	Weight        *float64      `json:"weight,omitempty"`
	Height        *float64      `json:"height,omitempty"`
}

type TestResult struct {
	TestName    string     `json:"testName"`
	Result      string     `json:"result"`
	Date        *time.Time `json:"date,omitempty"`
	Attachments []string   `json:"attachments"`
}

// MedicalRecord is the one entity with hard-delete semantics: DELETE removes
// the row and a subsequent GET returns not found.
type MedicalRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Display identity in the REC000001 format.
	RecordID string `gorm:"column:record_id;type:varchar(12);uniqueIndex" json:"recordId"`

	PatientID     uuid.UUID  `gorm:"column:patient_id;type:uuid;not null;index" json:"patientId"`
	DoctorID      uuid.UUID  `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctorId"`
	AppointmentID *uuid.UUID `gorm:"column:appointment_id;type:uuid;index" json:"appointmentId,omitempty"`

	VisitType VisitType `gorm:"column:visit_type;type:varchar(30);not null" json:"visitType"`

	ChiefComplaint string         `gorm:"column:chief_complaint;type:text" json:"chiefComplaint,omitempty"`
	Symptoms       []string       `gorm:"column:symptoms;serializer:json" json:"symptoms"`
	Diagnosis      string         `gorm:"column:diagnosis;type:text" json:"diagnosis,omitempty"`
	Treatment      string         `gorm:"column:treatment;type:text" json:"treatment,omitempty"`
	Prescriptions  []Prescription `gorm:"column:prescriptions;serializer:json" json:"prescriptions"`
	Vitals         *Vitals        `gorm:"column:vitals;serializer:json" json:"vitals,omitempty"`
	Tests          []TestResult   `gorm:"column:tests;serializer:json" json:"tests"`

	FollowUpDate      *time.Time `gorm:"column:follow_up_date;index" json:"followUpDate,omitempty"`
	FollowUpCompleted bool       `gorm:"column:follow_up_completed;default:false" json:"followUpCompleted"`

	Notes       string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Attachments []string `gorm:"column:attachments;serializer:json" json:"attachments"`

	// Resolved references, preloaded at read time.
	Patient     *patient.Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      *doctor.Doctor           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment *appointment.Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "clinic.medical_records"
}

type CreateRecordCommand struct {
	PatientID         uuid.UUID
	DoctorID          uuid.UUID
	AppointmentID     *uuid.UUID
	VisitType         VisitType
	ChiefComplaint    string
	Symptoms          []string
	Diagnosis         string
	Treatment         string
	Prescriptions     []Prescription
	Vitals            *Vitals
	Tests             []TestResult
	FollowUpDate      *time.Time
	FollowUpCompleted bool
	Notes             string
	Attachments       []string
}

type UpdateRecordCommand struct {
	VisitType         *VisitType
	ChiefComplaint    *string
	Symptoms          *[]string
	Diagnosis         *string
	Treatment         *string
	Prescriptions     *[]Prescription
	Vitals            *Vitals
	Tests             *[]TestResult
	FollowUpDate      *time.Time
	FollowUpCompleted *bool
	Notes             *string
	Attachments       *[]string
}

type ListRecordsQuery struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Page      int
	PageSize  int
}

type PagedRecords struct {
	Records    []*MedicalRecord
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
