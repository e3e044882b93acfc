package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrDuplicatePatientID if the
	// display ID is already taken.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key, soft-deleted or not.
	// Returns ErrPatientNotFound if the row does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Update applies partial updates. Returns ErrPatientNotFound when the id
	// does not resolve.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// Deactivate flips IsActive to false; the row is never removed.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// List returns a paginated, filtered page sorted by creation time descending.
	List(ctx context.Context, q *ListPatientsQuery) (*PagedPatients, error)

	// Count returns the number of active patients created before the cutoff;
	// a nil cutoff counts all active patients. Feeds the dashboard trend.
	Count(ctx context.Context, before *time.Time) (int64, error)

	// CreatedSince returns patients created after the given instant, newest
	// first, capped at limit.
	CreatedSince(ctx context.Context, since time.Time, limit int) ([]*Patient, error)
}
