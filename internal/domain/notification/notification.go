package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAppointment Type = "appointment"
	TypePatient     Type = "patient"
	TypeDoctor      Type = "doctor"
	TypeRecord      Type = "record"
	TypeUrgent      Type = "urgent"
	TypeReminder    Type = "reminder"
	TypeSystem      Type = "system"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeAppointment, TypePatient, TypeDoctor, TypeRecord,
		TypeUrgent, TypeReminder, TypeSystem:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// EntityKind tags the optional weak reference to the entity a notification
// is about.
type EntityKind string

const (
	EntityPatient       EntityKind = "Patient"
	EntityDoctor        EntityKind = "Doctor"
	EntityAppointment   EntityKind = "Appointment"
	EntityMedicalRecord EntityKind = "MedicalRecord"
)

const (
	MaxTitleLen   = 100
	MaxMessageLen = 500
)

// Notification is owned by a single user and expires 30 days after creation
// regardless of read state. Expiry is enforced by the store sweeper; reads
// also exclude rows past the TTL so an unswept row never surfaces.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`

	Type     Type     `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Title    string   `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Message  string   `gorm:"column:message;type:varchar(500);not null" json:"message"`
	Priority Priority `gorm:"column:priority;type:varchar(10);not null;default:'medium'" json:"priority"`

	IsRead bool       `gorm:"column:is_read;default:false;index" json:"isRead"`
	ReadAt *time.Time `gorm:"column:read_at" json:"readAt,omitempty"`

	ActionURL         string      `gorm:"column:action_url;type:varchar(255)" json:"actionUrl,omitempty"`
	RelatedEntityID   *uuid.UUID  `gorm:"column:related_entity_id;type:uuid" json:"relatedEntityId,omitempty"`
	RelatedEntityType *EntityKind `gorm:"column:related_entity_type;type:varchar(20)" json:"relatedEntityType,omitempty"`
}

func (Notification) TableName() string {
	return "clinic.notifications"
}

type ListNotificationsQuery struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
}
