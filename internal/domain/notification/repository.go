package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error

	// List returns the user's notifications, newest first, capped at
	// q.Limit, excluding rows past the TTL.
	List(ctx context.Context, q *ListNotificationsQuery) ([]*Notification, error)

	// CountUnread counts the user's unread, unexpired notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flips IsRead and stamps ReadAt. Scoped to the owning user;
	// returns ErrNotificationNotFound when the id does not resolve for them.
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*Notification, error)

	// MarkAllRead marks every unread notification owned by the user.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Delete removes one notification owned by the user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// DeleteExpired removes notifications created before the cutoff and
	// returns how many went. Called by the TTL sweeper.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
