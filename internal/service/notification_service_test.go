package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupNotificationService() (*NotificationService, *MockNotificationRepository, *MockAppointmentRepository, *MockPatientRepository) {
	repo := &MockNotificationRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	patientRepo := &MockPatientRepository{}
	svc := NewNotificationService(repo, appointmentRepo, patientRepo, zap.NewNop())
	return svc, repo, appointmentRepo, patientRepo
}

func TestListNotificationsDefaultLimit(t *testing.T) {
	svc, repo, _, _ := setupNotificationService()
	userID := uuid.New()

	repo.On("List", mock.Anything, mock.MatchedBy(func(q *notification.ListNotificationsQuery) bool {
		return q.UserID == userID && q.Limit == defaultNotificationLimit && !q.UnreadOnly
	})).Return([]*notification.Notification{}, nil)
	repo.On("CountUnread", mock.Anything, userID).Return(int64(4), nil)

	page, err := svc.ListNotifications(context.Background(), userID, false, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), page.UnreadCount)
	repo.AssertExpectations(t)
}

func TestGenerateSampleCreatesFive(t *testing.T) {
	svc, repo, _, _ := setupNotificationService()
	userID := uuid.New()

	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ns []*notification.Notification) bool {
		return len(ns) == 5
	})).Return(nil)

	samples, err := svc.GenerateSample(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, samples, 5)
	for _, n := range samples {
		assert.Equal(t, userID, n.UserID)
		assert.True(t, n.Type.IsValid())
		assert.True(t, n.Priority.IsValid())
		assert.LessOrEqual(t, len(n.Title), notification.MaxTitleLen)
		assert.LessOrEqual(t, len(n.Message), notification.MaxMessageLen)
	}
}

func TestGenerateFromActivities(t *testing.T) {
	svc, repo, appointmentRepo, patientRepo := setupNotificationService()
	userID := uuid.New()

	recent := []*appointment.Appointment{
		{ID: uuid.New(), AppointmentID: "APP000010", Patient: &patient.Patient{
			PersonalInfo: patient.PersonalInfo{FirstName: "Arun", LastName: "Menon"},
		}},
		{ID: uuid.New(), AppointmentID: "APP000011"},
	}
	registered := []*patient.Patient{
		{ID: uuid.New(), PatientID: "PAT000003", PersonalInfo: patient.PersonalInfo{
			FirstName: "Leela", LastName: "Pillai",
		}},
	}
	urgent := []*appointment.Appointment{
		{ID: uuid.New(), AppointmentID: "APP000009"},
	}

	appointmentRepo.On("CreatedSince", mock.Anything, mock.Anything, 0).Return(recent, nil)
	patientRepo.On("CreatedSince", mock.Anything, mock.Anything, 0).Return(registered, nil)
	appointmentRepo.On("OpenUrgent", mock.Anything, urgentNotificationCap).Return(urgent, nil)

	var batch []*notification.Notification
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Run(func(args mock.Arguments) {
			batch = args.Get(1).([]*notification.Notification)
		}).Return(nil)

	count, err := svc.GenerateFromActivities(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Len(t, batch, 4)

	assert.Equal(t, notification.TypeAppointment, batch[0].Type)
	assert.Equal(t, notification.PriorityMedium, batch[0].Priority)
	assert.Contains(t, batch[0].Message, "Arun Menon")

	// Missing preload falls back to a generic subject.
	assert.Contains(t, batch[1].Message, "a patient")

	assert.Equal(t, notification.TypePatient, batch[2].Type)
	assert.Equal(t, notification.PriorityLow, batch[2].Priority)
	assert.Contains(t, batch[2].Message, "PAT000003")

	assert.Equal(t, notification.TypeUrgent, batch[3].Type)
	assert.Equal(t, notification.PriorityHigh, batch[3].Priority)
}

func TestGenerateFromActivitiesDuplicatesOnSecondCall(t *testing.T) {
	svc, repo, appointmentRepo, patientRepo := setupNotificationService()
	userID := uuid.New()

	appointmentRepo.On("CreatedSince", mock.Anything, mock.Anything, 0).
		Return([]*appointment.Appointment{{ID: uuid.New(), AppointmentID: "APP000001"}}, nil)
	patientRepo.On("CreatedSince", mock.Anything, mock.Anything, 0).Return([]*patient.Patient{}, nil)
	appointmentRepo.On("OpenUrgent", mock.Anything, urgentNotificationCap).Return([]*appointment.Appointment{}, nil)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	first, err := svc.GenerateFromActivities(context.Background(), userID)
	assert.NoError(t, err)
	second, err := svc.GenerateFromActivities(context.Background(), userID)
	assert.NoError(t, err)

	// No idempotency guard: the same activity produces a row each call.
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "CreateBatch", 2)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	svc, repo, _, _ := setupNotificationService()
	id, userID := uuid.New(), uuid.New()

	repo.On("MarkRead", mock.Anything, id, userID).Return(nil, notification.ErrNotificationNotFound)

	n, err := svc.MarkRead(context.Background(), id, userID)

	assert.Nil(t, n)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestSweepExpiredUsesTTLCutoff(t *testing.T) {
	svc, repo, _, _ := setupNotificationService()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ttl := 30 * 24 * time.Hour

	repo.On("DeleteExpired", mock.Anything, now.Add(-ttl)).Return(int64(3), nil)

	removed := svc.SweepExpired(context.Background(), ttl)
	assert.Equal(t, int64(3), removed)
	repo.AssertExpectations(t)
}
