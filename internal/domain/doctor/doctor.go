package doctor

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

func (d Weekday) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

type PersonalInfo struct {
	FirstName   string     `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName    string     `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	Phone       string     `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email       string     `gorm:"column:email;type:varchar(255);not null" json:"email"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"dateOfBirth,omitempty"`
}

type ProfessionalInfo struct {
	Specialization string   `gorm:"column:specialization;type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber  string   `gorm:"column:license_number;type:varchar(50);not null" json:"licenseNumber"`
	Experience     int      `gorm:"column:experience_years;not null" json:"experience"` // years
	Qualification  []string `gorm:"column:qualification;serializer:json" json:"qualification"`
	Department     string   `gorm:"column:department;type:varchar(100)" json:"department,omitempty"`
}

// ScheduleSlot is one weekly availability window. Slots are stored for
// display only; booking does not validate against them, so double-booking
// is possible by design.
type ScheduleSlot struct {
	Day         Weekday `json:"day"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	IsAvailable bool    `json:"isAvailable"`
}

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Display identity in the DOC0001 format.
	DoctorID string `gorm:"column:doctor_id;type:varchar(10);uniqueIndex" json:"doctorId"`

	PersonalInfo     PersonalInfo     `gorm:"embedded" json:"personalInfo"`
	ProfessionalInfo ProfessionalInfo `gorm:"embedded" json:"professionalInfo"`
	Schedule         []ScheduleSlot   `gorm:"column:schedule;serializer:json" json:"schedule"`
	ConsultationFee  float64          `gorm:"column:consultation_fee;not null" json:"consultationFee"`

	IsActive bool       `gorm:"column:is_active;default:true;index" json:"isActive"`
	AddedBy  *uuid.UUID `gorm:"column:added_by;type:uuid;index" json:"addedBy,omitempty"`

	Registrar *domain.UserRef `gorm:"-" json:"registrar,omitempty"`
}

func (Doctor) TableName() string {
	return "clinic.doctors"
}

func (d *Doctor) FullName() string {
	return strings.TrimSpace(d.PersonalInfo.FirstName + " " + d.PersonalInfo.LastName)
}

// DisplayName is the "Dr. First Last" form used on the dashboard.
func (d *Doctor) DisplayName() string {
	return "Dr. " + d.FullName()
}

type CreateDoctorCommand struct {
	PersonalInfo     PersonalInfo
	ProfessionalInfo ProfessionalInfo
	Schedule         []ScheduleSlot
	ConsultationFee  float64
	AddedBy          *uuid.UUID
}

type UpdateDoctorCommand struct {
	PersonalInfo     *PersonalInfo
	ProfessionalInfo *ProfessionalInfo
	Schedule         *[]ScheduleSlot
	ConsultationFee  *float64
	IsActive         *bool
}

// ListDoctorsQuery filters doctors. Search matches names, doctorId and
// specialization; Specialization narrows independently of Search.
// Soft-deleted doctors are excluded unless IncludeInactive is set.
type ListDoctorsQuery struct {
	Search          string
	Specialization  string
	IncludeInactive bool
	Page            int
	PageSize        int
}

type PagedDoctors struct {
	Doctors    []*Doctor
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
