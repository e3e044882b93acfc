package record

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *MedicalRecord) error

	// GetByID returns the record with its references resolved.
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateRecordCommand) (*MedicalRecord, error)

	// Delete removes the row permanently; medical records are the one kind
	// without soft-delete semantics.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q *ListRecordsQuery) (*PagedRecords, error)

	// ListByPatient returns a patient's full history, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*MedicalRecord, error)

	// CountTotal and CountCreatedInRange feed the dashboard stats.
	CountTotal(ctx context.Context) (int64, error)
	CountCreatedInRange(ctx context.Context, start, end time.Time) (int64, error)

	// CountPendingFollowUps counts records with a follow-up date at or after
	// the given instant that are not marked complete.
	CountPendingFollowUps(ctx context.Context, from time.Time) (int64, error)

	// CreatedSince returns records created after the given instant, newest
	// first, references resolved, capped at limit.
	CreatedSince(ctx context.Context, since time.Time, limit int) ([]*MedicalRecord, error)
}
