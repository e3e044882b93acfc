package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key, soft-deleted or not.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateDoctorCommand) (*Doctor, error)

	// Deactivate flips IsActive to false; the row is never removed.
	Deactivate(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, q *ListDoctorsQuery) (*PagedDoctors, error)

	// CountActive and CountTotal feed the dashboard's "% active" figure.
	CountActive(ctx context.Context) (int64, error)
	CountTotal(ctx context.Context) (int64, error)
}
