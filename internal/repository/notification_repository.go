package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewNotificationRepository(db *gorm.DB, ttl time.Duration) *NotificationRepository {
	return &NotificationRepository{db: db, ttl: ttl}
}

var _ notification.Repository = (*NotificationRepository)(nil)

// unexpired guards reads against rows the sweeper has not removed yet.
func (r *NotificationRepository) unexpired(query *gorm.DB) *gorm.DB {
	return query.Where("created_at > ?", time.Now().Add(-r.ttl))
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(ns).Error; err != nil {
		return fmt.Errorf("inserting notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, q *notification.ListNotificationsQuery) ([]*notification.Notification, error) {
	query := r.unexpired(r.db.WithContext(ctx)).
		Where("user_id = ?", q.UserID)
	if q.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var notifications []*notification.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.unexpired(r.db.WithContext(ctx).Model(&notification.Notification{})).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.WithContext(ctx).
		First(&n, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("fetching notification: %w", err)
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	if err := r.db.WithContext(ctx).Save(&n).Error; err != nil {
		return nil, fmt.Errorf("marking notification read: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": time.Now()}).Error
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&notification.Notification{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("deleting notification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&notification.Notification{}, "created_at < ?", cutoff)
	if res.Error != nil {
		return 0, fmt.Errorf("deleting expired notifications: %w", res.Error)
	}
	return res.RowsAffected, nil
}
