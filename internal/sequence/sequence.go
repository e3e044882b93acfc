// Package sequence assigns the human-readable display IDs (PAT000001,
// DOC0001, APP000001, REC000001). Each kind owns one counter row that is
// bumped in a single atomic upsert, so two concurrent creates can never
// observe the same value. The counter replaces the old count-then-format
// read, whose read/write window produced duplicate IDs under load.
package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindPatient     Kind = "patient"
	KindDoctor      Kind = "doctor"
	KindAppointment Kind = "appointment"
	KindRecord      Kind = "medical_record"
)

type format struct {
	prefix string
	width  int
}

var formats = map[Kind]format{
	KindPatient:     {prefix: "PAT", width: 6},
	KindDoctor:      {prefix: "DOC", width: 4},
	KindAppointment: {prefix: "APP", width: 6},
	KindRecord:      {prefix: "REC", width: 6},
}

// Counter is the per-kind sequence row.
type Counter struct {
	Name  string `gorm:"column:name;type:varchar(30);primaryKey"`
	Value int64  `gorm:"column:value;not null"`
}

func (Counter) TableName() string {
	return "clinic.sequences"
}

// FormatID renders the nth identity of a kind in its external format.
func FormatID(kind Kind, n int64) (string, error) {
	f, ok := formats[kind]
	if !ok {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}
	return fmt.Sprintf("%s%0*d", f.prefix, f.width, n), nil
}

type Assigner struct {
	db *gorm.DB
}

func NewAssigner(db *gorm.DB) *Assigner {
	return &Assigner{db: db}
}

// Next reserves and formats the next identity for the kind. The upsert is a
// single statement, so the read-modify-write is atomic at the store level.
func (a *Assigner) Next(ctx context.Context, kind Kind) (string, error) {
	if _, ok := formats[kind]; !ok {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}

	var value int64
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO clinic.sequences AS s (name, value)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = s.value + 1
		RETURNING value`,
		string(kind),
	).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("advancing %s sequence: %w", kind, err)
	}

	return FormatID(kind, value)
}

// Sync raises the counter to at least floor. Called at startup with the
// current row count of each collection so pre-seeded entities with explicit
// IDs never collide with freshly assigned ones. Never lowers the counter.
func (a *Assigner) Sync(ctx context.Context, kind Kind, floor int64) error {
	if _, ok := formats[kind]; !ok {
		return fmt.Errorf("unknown sequence kind %q", kind)
	}

	err := a.db.WithContext(ctx).Exec(`
		INSERT INTO clinic.sequences AS s (name, value)
		VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = GREATEST(s.value, EXCLUDED.value)`,
		string(kind), floor,
	).Error
	if err != nil {
		return fmt.Errorf("syncing %s sequence: %w", kind, err)
	}
	return nil
}
