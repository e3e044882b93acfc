package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupAppointmentService() (*AppointmentService, *MockAppointmentRepository, *MockPatientRepository, *MockDoctorRepository, *MockIDAssigner) {
	repo := &MockAppointmentRepository{}
	patientRepo := &MockPatientRepository{}
	doctorRepo := &MockDoctorRepository{}
	assigner := &MockIDAssigner{}
	users := &MockUserRefResolver{}
	svc := NewAppointmentService(repo, patientRepo, doctorRepo, assigner, users, zap.NewNop())
	return svc, repo, patientRepo, doctorRepo, assigner
}

func validAppointmentCreate() *appointment.CreateAppointmentCommand {
	return &appointment.CreateAppointmentCommand{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		Time:      "10:00 AM",
	}
}

func TestScheduleAppointmentDefaults(t *testing.T) {
	svc, repo, patientRepo, doctorRepo, assigner := setupAppointmentService()
	cmd := validAppointmentCreate()

	patientRepo.On("GetByID", mock.Anything, cmd.PatientID).Return(&patient.Patient{ID: cmd.PatientID}, nil)
	doctorRepo.On("GetByID", mock.Anything, cmd.DoctorID).Return(&doctor.Doctor{ID: cmd.DoctorID}, nil)
	assigner.On("Next", mock.Anything, sequence.KindAppointment).Return("APP000007", nil)

	reloaded := &appointment.Appointment{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*appointment.Appointment")).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*appointment.Appointment)
			a.ID = uuid.New()
			*reloaded = *a
		}).Return(nil)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(reloaded, nil)

	a, err := svc.ScheduleAppointment(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, "APP000007", a.AppointmentID)
	assert.Equal(t, 30, a.Duration)
	assert.Equal(t, appointment.TypeConsultation, a.Type)
	assert.Equal(t, appointment.PriorityMedium, a.Priority)
	assert.Equal(t, appointment.StatusScheduled, a.Status)
}

func TestScheduleAppointmentUnknownPatient(t *testing.T) {
	svc, _, patientRepo, _, _ := setupAppointmentService()
	cmd := validAppointmentCreate()

	patientRepo.On("GetByID", mock.Anything, cmd.PatientID).Return(nil, patient.ErrPatientNotFound)

	a, err := svc.ScheduleAppointment(context.Background(), cmd)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestScheduleAppointmentUnknownDoctor(t *testing.T) {
	svc, _, patientRepo, doctorRepo, _ := setupAppointmentService()
	cmd := validAppointmentCreate()

	patientRepo.On("GetByID", mock.Anything, cmd.PatientID).Return(&patient.Patient{}, nil)
	doctorRepo.On("GetByID", mock.Anything, cmd.DoctorID).Return(nil, doctor.ErrDoctorNotFound)

	a, err := svc.ScheduleAppointment(context.Background(), cmd)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestScheduleAppointmentDurationBounds(t *testing.T) {
	svc, _, _, _, _ := setupAppointmentService()

	for _, duration := range []int{4, 481, -10} {
		cmd := validAppointmentCreate()
		cmd.Duration = duration

		a, err := svc.ScheduleAppointment(context.Background(), cmd)

		assert.Nil(t, a)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	}
}

func TestUpdateAppointmentStatusUnrestricted(t *testing.T) {
	svc, repo, _, _, _ := setupAppointmentService()
	id := uuid.New()

	// Moving out of a terminal state is allowed; only unknown values fail.
	status := appointment.StatusScheduled
	repo.On("Update", mock.Anything, id, mock.Anything).Return(&appointment.Appointment{
		ID:     id,
		Status: status,
	}, nil)

	a, err := svc.UpdateAppointment(context.Background(), id, &appointment.UpdateAppointmentCommand{
		Status: &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, appointment.StatusScheduled, a.Status)
}

func TestUpdateAppointmentRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := setupAppointmentService()
	bad := appointment.AppointmentStatus("rescheduled")

	a, err := svc.UpdateAppointment(context.Background(), uuid.New(), &appointment.UpdateAppointmentCommand{
		Status: &bad,
	})

	assert.Nil(t, a)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCancelAppointment(t *testing.T) {
	svc, repo, _, _, _ := setupAppointmentService()
	id := uuid.New()

	repo.On("Cancel", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.CancelAppointment(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestListAppointmentsRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _, _, _ := setupAppointmentService()
	bad := appointment.AppointmentStatus("pending")

	page, err := svc.ListAppointments(context.Background(), &appointment.ListAppointmentsQuery{Status: &bad})

	assert.Nil(t, page)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
