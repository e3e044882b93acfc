package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultNotificationLimit = 20
	urgentNotificationCap    = 3
)

type NotificationService struct {
	repo            notification.Repository
	appointmentRepo appointment.Repository
	patientRepo     patient.Repository
	log             *zap.Logger

	now func() time.Time
}

func NewNotificationService(
	repo notification.Repository,
	appointmentRepo appointment.Repository,
	patientRepo patient.Repository,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		log:             log,
		now:             time.Now,
	}
}

// NotificationPage is a user's notification feed plus their unread count.
type NotificationPage struct {
	Notifications []*notification.Notification
	UnreadCount   int64
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (*NotificationPage, error) {
	if limit < 1 {
		limit = defaultNotificationLimit
	}

	notifications, err := s.repo.List(ctx, &notification.ListNotificationsQuery{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*notification.Notification, error) {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

// GenerateSample seeds the canonical demo notifications for the user.
func (s *NotificationService) GenerateSample(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	samples := []*notification.Notification{
		{
			UserID:   userID,
			Type:     notification.TypeAppointment,
			Title:    "New Appointment Scheduled",
			Message:  "A new appointment has been scheduled for today at 2:00 PM",
			Priority: notification.PriorityMedium,
		},
		{
			UserID:   userID,
			Type:     notification.TypeUrgent,
			Title:    "Urgent: Patient Needs Attention",
			Message:  "Patient in room 3 requires immediate medical attention",
			Priority: notification.PriorityHigh,
		},
		{
			UserID:   userID,
			Type:     notification.TypePatient,
			Title:    "New Patient Registration",
			Message:  "A new patient has completed registration and needs initial consultation",
			Priority: notification.PriorityMedium,
		},
		{
			UserID:   userID,
			Type:     notification.TypeReminder,
			Title:    "Follow-up Reminder",
			Message:  "Don't forget to follow up with patients from yesterday's appointments",
			Priority: notification.PriorityLow,
		},
		{
			UserID:   userID,
			Type:     notification.TypeSystem,
			Title:    "System Maintenance",
			Message:  "Scheduled system maintenance tonight from 11 PM to 1 AM",
			Priority: notification.PriorityLow,
		},
	}

	if err := s.repo.CreateBatch(ctx, samples); err != nil {
		s.log.Error("failed to create sample notifications", zap.Error(err))
		return nil, err
	}
	return samples, nil
}

// GenerateFromActivities scans the trailing 24 hours and materializes one
// notification per recent appointment and patient registration, plus up to
// three for open urgent appointments. The scan is not idempotent: calling
// it twice duplicates every notification.
func (s *NotificationService) GenerateFromActivities(ctx context.Context, userID uuid.UUID) (int, error) {
	since := s.now().Add(-24 * time.Hour)

	appointments, err := s.appointmentRepo.CreatedSince(ctx, since, 0)
	if err != nil {
		return 0, fmt.Errorf("listing recent appointments: %w", err)
	}
	patients, err := s.patientRepo.CreatedSince(ctx, since, 0)
	if err != nil {
		return 0, fmt.Errorf("listing recent patients: %w", err)
	}
	urgentAppointments, err := s.appointmentRepo.OpenUrgent(ctx, urgentNotificationCap)
	if err != nil {
		return 0, fmt.Errorf("listing urgent appointments: %w", err)
	}

	var notifications []*notification.Notification
	for _, a := range appointments {
		patientName := "a patient"
		if a.Patient != nil {
			patientName = a.Patient.FullName()
		}
		id := a.ID
		kind := notification.EntityAppointment
		notifications = append(notifications, &notification.Notification{
			UserID:            userID,
			Type:              notification.TypeAppointment,
			Title:             "New Appointment Scheduled",
			Message:           fmt.Sprintf("Appointment %s scheduled for %s", a.AppointmentID, patientName),
			Priority:          notification.PriorityMedium,
			RelatedEntityID:   &id,
			RelatedEntityType: &kind,
		})
	}
	for _, p := range patients {
		id := p.ID
		kind := notification.EntityPatient
		notifications = append(notifications, &notification.Notification{
			UserID:            userID,
			Type:              notification.TypePatient,
			Title:             "New Patient Registered",
			Message:           fmt.Sprintf("%s (%s) has been registered", p.FullName(), p.PatientID),
			Priority:          notification.PriorityLow,
			RelatedEntityID:   &id,
			RelatedEntityType: &kind,
		})
	}
	for _, a := range urgentAppointments {
		patientName := "a patient"
		if a.Patient != nil {
			patientName = a.Patient.FullName()
		}
		id := a.ID
		kind := notification.EntityAppointment
		notifications = append(notifications, &notification.Notification{
			UserID:            userID,
			Type:              notification.TypeUrgent,
			Title:             "Urgent Appointment",
			Message:           fmt.Sprintf("Appointment %s for %s needs attention", a.AppointmentID, patientName),
			Priority:          notification.PriorityHigh,
			RelatedEntityID:   &id,
			RelatedEntityType: &kind,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		s.log.Error("failed to create activity notifications", zap.Error(err))
		return 0, err
	}

	s.log.Info("notifications generated from activities",
		zap.Int("count", len(notifications)),
		zap.String("user_id", userID.String()),
	)
	return len(notifications), nil
}

// SweepExpired removes notifications older than the TTL and reports how
// many went. Runs from the background sweeper started at boot.
func (s *NotificationService) SweepExpired(ctx context.Context, ttl time.Duration) int64 {
	removed, err := s.repo.DeleteExpired(ctx, s.now().Add(-ttl))
	if err != nil {
		s.log.Error("notification sweep failed", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.log.Info("expired notifications removed", zap.Int64("count", removed))
	}
	return removed
}
