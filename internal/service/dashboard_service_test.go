package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupDashboardService() (*DashboardService, *MockPatientRepository, *MockDoctorRepository, *MockAppointmentRepository, *MockRecordRepository) {
	patientRepo := &MockPatientRepository{}
	doctorRepo := &MockDoctorRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	recordRepo := &MockRecordRepository{}
	svc := NewDashboardService(patientRepo, doctorRepo, appointmentRepo, recordRepo, zap.NewNop())
	return svc, patientRepo, doctorRepo, appointmentRepo, recordRepo
}

func TestPatientTrend(t *testing.T) {
	assert.Equal(t, "+100%", patientTrend(0, 0))
	assert.Equal(t, "+100%", patientTrend(42, 0))
	assert.Equal(t, "+25%", patientTrend(125, 100))
	assert.Equal(t, "-10%", patientTrend(90, 100))
	assert.Equal(t, "+0%", patientTrend(100, 100))
	// Rounding is half away from zero: 1/3 growth rounds to 33.
	assert.Equal(t, "+33%", patientTrend(4, 3))
}

func TestDoctorTrend(t *testing.T) {
	assert.Equal(t, "+0%", doctorTrend(0, 0))
	assert.Equal(t, "75% active", doctorTrend(3, 4))
	assert.Equal(t, "100% active", doctorTrend(5, 5))
	assert.Equal(t, "67% active", doctorTrend(2, 3))
}

func TestAppointmentTrend(t *testing.T) {
	// Empty yesterday with no appointments today is flat, not growth.
	assert.Equal(t, "+0%", appointmentTrend(0, 0))
	assert.Equal(t, "+100%", appointmentTrend(3, 0))
	assert.Equal(t, "+50%", appointmentTrend(3, 2))
	assert.Equal(t, "-50%", appointmentTrend(1, 2))
}

func TestRecordTrend(t *testing.T) {
	assert.Equal(t, "No records today", recordTrend(0))
	assert.Equal(t, "+1 today", recordTrend(1))
	assert.Equal(t, "+7 today", recordTrend(7))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"under a minute", now.Add(-30 * time.Second), "Just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"days", now.Add(-80 * time.Hour), "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.at, now))
		})
	}
}

func TestStats(t *testing.T) {
	svc, patientRepo, doctorRepo, appointmentRepo, recordRepo := setupDashboardService()

	patientRepo.On("Count", mock.Anything, (*time.Time)(nil)).Return(int64(120), nil)
	patientRepo.On("Count", mock.Anything, mock.AnythingOfType("*time.Time")).Return(int64(100), nil)
	doctorRepo.On("CountActive", mock.Anything).Return(int64(8), nil)
	doctorRepo.On("CountTotal", mock.Anything).Return(int64(10), nil)
	appointmentRepo.On("CountInRange", mock.Anything, mock.Anything, mock.Anything, []appointment.AppointmentStatus(nil)).
		Return(int64(6), nil).Once() // today
	appointmentRepo.On("CountInRange", mock.Anything, mock.Anything, mock.Anything, []appointment.AppointmentStatus(nil)).
		Return(int64(4), nil).Once() // yesterday
	recordRepo.On("CountTotal", mock.Anything).Return(int64(300), nil)
	recordRepo.On("CountCreatedInRange", mock.Anything, mock.Anything, mock.Anything).Return(int64(2), nil)

	stats, err := svc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalPatients.Count)
	assert.Equal(t, "+20%", stats.TotalPatients.Trend)
	assert.Equal(t, int64(8), stats.ActiveDoctors.Count)
	assert.Equal(t, "80% active", stats.ActiveDoctors.Trend)
	assert.Equal(t, int64(6), stats.TodaysAppointments.Count)
	assert.Equal(t, "+50%", stats.TodaysAppointments.Trend)
	assert.Equal(t, int64(300), stats.MedicalRecords.Count)
	assert.Equal(t, "+2 today", stats.MedicalRecords.Trend)
}

func TestStatsFailsWhole(t *testing.T) {
	svc, patientRepo, _, _, _ := setupDashboardService()

	patientRepo.On("Count", mock.Anything, (*time.Time)(nil)).Return(int64(0), assert.AnError)

	stats, err := svc.Stats(context.Background())

	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestRecentActivitiesMergeAndTruncate(t *testing.T) {
	svc, patientRepo, _, appointmentRepo, recordRepo := setupDashboardService()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	doc := &doctor.Doctor{PersonalInfo: doctor.PersonalInfo{FirstName: "Priya", LastName: "Nair"}}
	appointments := []*appointment.Appointment{
		{
			ID:        uuid.New(),
			CreatedAt: now.Add(-10 * time.Minute),
			Priority:  appointment.PriorityUrgent,
			Doctor:    doc,
		},
	}
	patients := []*patient.Patient{
		{
			ID:        uuid.New(),
			CreatedAt: now.Add(-5 * time.Minute),
			PersonalInfo: patient.PersonalInfo{
				FirstName: "Arun",
				LastName:  "Menon",
			},
		},
	}
	records := []*record.MedicalRecord{
		{
			ID:        uuid.New(),
			CreatedAt: now.Add(-2 * time.Hour),
			Patient: &patient.Patient{PersonalInfo: patient.PersonalInfo{
				FirstName: "Arun",
				LastName:  "Menon",
			}},
		},
	}

	appointmentRepo.On("CreatedSince", mock.Anything, mock.Anything, activitySourceCap).Return(appointments, nil)
	patientRepo.On("CreatedSince", mock.Anything, mock.Anything, activitySourceCap).Return(patients, nil)
	recordRepo.On("CreatedSince", mock.Anything, mock.Anything, activitySourceCap).Return(records, nil)

	activities, err := svc.RecentActivities(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, activities, 2)

	// Newest first: patient (5m) before appointment (10m); record (2h) cut.
	assert.Equal(t, "New patient Arun Menon registered", activities[0].Message)
	assert.Equal(t, "5 minutes ago", activities[0].Time)
	assert.Equal(t, "normal", activities[0].Priority)

	assert.Equal(t, "New appointment scheduled with Dr. Priya Nair", activities[1].Message)
	assert.Equal(t, "high", activities[1].Priority)
}

func TestTodaysAppointmentEntries(t *testing.T) {
	svc, _, _, appointmentRepo, _ := setupDashboardService()

	appointments := []*appointment.Appointment{
		{
			ID:     uuid.New(),
			Time:   "10:00 AM",
			Type:   appointment.TypeConsultation,
			Status: appointment.StatusScheduled,
			Patient: &patient.Patient{PersonalInfo: patient.PersonalInfo{
				FirstName: "Arun", LastName: "Menon",
			}},
			Doctor: &doctor.Doctor{PersonalInfo: doctor.PersonalInfo{
				FirstName: "Priya", LastName: "Nair",
			}},
		},
	}
	appointmentRepo.On("ListDay", mock.Anything, mock.Anything, mock.Anything, todaysAppointmentCap).
		Return(appointments, nil)

	entries, err := svc.TodaysAppointments(context.Background())

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Arun Menon", entries[0].Patient)
	assert.Equal(t, "Dr. Priya Nair", entries[0].Doctor)
	assert.Equal(t, "10:00 AM", entries[0].Time)
	assert.Equal(t, "consultation", entries[0].Type)
	assert.Equal(t, "scheduled", entries[0].Status)
}

func TestSummary(t *testing.T) {
	svc, _, _, appointmentRepo, recordRepo := setupDashboardService()

	completed := []*appointment.Appointment{
		{Doctor: &doctor.Doctor{ConsultationFee: 150}},
		{Doctor: &doctor.Doctor{ConsultationFee: 200.5}},
	}
	appointmentRepo.On("CountInRange", mock.Anything, mock.Anything, mock.Anything, []appointment.AppointmentStatus(nil)).
		Return(int64(4), nil)
	appointmentRepo.On("CompletedInRange", mock.Anything, mock.Anything, mock.Anything).Return(completed, nil)
	appointmentRepo.On("CountOpenUrgent", mock.Anything).Return(int64(3), nil)
	recordRepo.On("CountPendingFollowUps", mock.Anything, mock.Anything).Return(int64(5), nil)

	summary, err := svc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "2 out of 4 appointments", summary.Appointments)
	assert.Equal(t, "3 urgent, 5 follow-ups", summary.Urgent)
	assert.Equal(t, "$350.5 (+50% completion)", summary.Revenue)
}

func TestSummaryNoCompletions(t *testing.T) {
	svc, _, _, appointmentRepo, recordRepo := setupDashboardService()

	appointmentRepo.On("CountInRange", mock.Anything, mock.Anything, mock.Anything, []appointment.AppointmentStatus(nil)).
		Return(int64(2), nil)
	appointmentRepo.On("CompletedInRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]*appointment.Appointment{}, nil)
	appointmentRepo.On("CountOpenUrgent", mock.Anything).Return(int64(0), nil)
	recordRepo.On("CountPendingFollowUps", mock.Anything, mock.Anything).Return(int64(0), nil)

	summary, err := svc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "0 out of 2 appointments", summary.Appointments)
	// No completion suffix when nothing completed.
	assert.Equal(t, "$0", summary.Revenue)
}
