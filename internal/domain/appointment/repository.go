package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns the appointment with patient and doctor references
	// resolved. Returns ErrAppointmentNotFound if the row does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdateAppointmentCommand) (*Appointment, error)

	// Cancel is the soft delete for appointments: the status becomes
	// cancelled and the row is kept.
	Cancel(ctx context.Context, id uuid.UUID) error

	// List returns a filtered page sorted by date then time-of-day string.
	List(ctx context.Context, q *ListAppointmentsQuery) (*PagedAppointments, error)

	// ListDay returns appointments whose date falls in [start, end), sorted
	// ascending by the raw time-of-day string, references resolved, capped
	// at limit (0 = no cap).
	ListDay(ctx context.Context, start, end time.Time, limit int) ([]*Appointment, error)

	// CountInRange counts appointments with date in [start, end); statuses
	// narrows to the given set when non-empty.
	CountInRange(ctx context.Context, start, end time.Time, statuses []AppointmentStatus) (int64, error)

	// CompletedInRange returns completed appointments in [start, end) with
	// the doctor reference resolved, for the revenue estimate.
	CompletedInRange(ctx context.Context, start, end time.Time) ([]*Appointment, error)

	// CountOpenUrgent counts appointments with priority urgent/high still in
	// scheduled/confirmed state.
	CountOpenUrgent(ctx context.Context) (int64, error)

	// OpenUrgent returns those same appointments, patient resolved, capped
	// at limit.
	OpenUrgent(ctx context.Context, limit int) ([]*Appointment, error)

	// CreatedSince returns appointments created after the given instant,
	// newest first, references resolved, capped at limit.
	CreatedSince(ctx context.Context, since time.Time, limit int) ([]*Appointment, error)
}
