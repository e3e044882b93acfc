package patient

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeAPos, BloodTypeANeg, BloodTypeBPos, BloodTypeBNeg,
		BloodTypeABPos, BloodTypeABNeg, BloodTypeOPos, BloodTypeONeg:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type PersonalInfo struct {
	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null" json:"lastName"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null" json:"dateOfBirth"`
	Gender      Gender    `gorm:"column:gender;type:varchar(10);not null" json:"gender"`
	Phone       string    `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email       string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Address     Address   `gorm:"column:address;serializer:json" json:"address"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type MedicalInfo struct {
	BloodType          BloodType         `gorm:"column:blood_type;type:varchar(5)" json:"bloodType,omitempty"`
	Allergies          []string          `gorm:"column:allergies;serializer:json" json:"allergies"`
	ChronicConditions  []string          `gorm:"column:chronic_conditions;serializer:json" json:"chronicConditions"`
	CurrentMedications []string          `gorm:"column:current_medications;serializer:json" json:"currentMedications"`
	EmergencyContact   *EmergencyContact `gorm:"column:emergency_contact;serializer:json" json:"emergencyContact,omitempty"`
}

type Insurance struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policyNumber"`
	GroupNumber  string `json:"groupNumber"`
}

// Patient is soft-deleted only: IsActive flips to false and the row stays put
// so historical appointments and records keep resolving.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Display identity in the PAT000001 format, assigned exactly once at first
	// persistence. Pre-seeded values pass through untouched.
	PatientID string `gorm:"column:patient_id;type:varchar(12);uniqueIndex" json:"patientId"`

	PersonalInfo PersonalInfo `gorm:"embedded" json:"personalInfo"`
	MedicalInfo  MedicalInfo  `gorm:"embedded" json:"medicalInfo"`
	Insurance    *Insurance   `gorm:"column:insurance;serializer:json" json:"insurance,omitempty"`

	IsActive     bool       `gorm:"column:is_active;default:true;index" json:"isActive"`
	RegisteredBy *uuid.UUID `gorm:"column:registered_by;type:uuid;index" json:"registeredBy,omitempty"`

	// Resolved registrar, filled at read time; never persisted.
	Registrar *domain.UserRef `gorm:"-" json:"registrar,omitempty"`
}

func (Patient) TableName() string {
	return "clinic.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.PersonalInfo.FirstName + " " + p.PersonalInfo.LastName)
}

type CreatePatientCommand struct {
	PersonalInfo PersonalInfo
	MedicalInfo  MedicalInfo
	Insurance    *Insurance
	RegisteredBy *uuid.UUID
}

type UpdatePatientCommand struct {
	PersonalInfo *PersonalInfo
	MedicalInfo  *MedicalInfo
	Insurance    *Insurance
	IsActive     *bool
}

// ListPatientsQuery defines filtering and pagination for patient list queries.
// Search is a case-insensitive substring match over first name, last name,
// patientId and phone. Soft-deleted patients are excluded unless
// IncludeInactive is set.
type ListPatientsQuery struct {
	Search          string
	IncludeInactive bool
	Page            int
	PageSize        int
}

type PagedPatients struct {
	Patients   []*Patient
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
