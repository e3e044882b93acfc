package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minDurationMins = 5
	maxDurationMins = 480
)

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	assigner    IDAssigner
	users       UserRefResolver
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	assigner IDAssigner,
	users UserRefResolver,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		assigner:    assigner,
		users:       users,
		log:         log,
	}
}

// ScheduleAppointment books an appointment after checking both references
// resolve. Overlap with the doctor's schedule or other appointments is not
// checked; double-booking is allowed.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	applyAppointmentDefaults(cmd)
	if err := validateAppointmentCreate(cmd); err != nil {
		return nil, err
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, err
	}

	appointmentID, err := s.assigner.Next(ctx, sequence.KindAppointment)
	if err != nil {
		s.log.Error("failed to assign appointment ID", zap.Error(err))
		return nil, fmt.Errorf("assigning appointment ID: %w", err)
	}

	a := &appointment.Appointment{
		AppointmentID: appointmentID,
		PatientID:     cmd.PatientID,
		DoctorID:      cmd.DoctorID,
		Date:          cmd.Date,
		Time:          cmd.Time,
		Duration:      cmd.Duration,
		Type:          cmd.Type,
		Status:        appointment.StatusScheduled,
		Priority:      cmd.Priority,
		Symptoms:      cmd.Symptoms,
		Notes:         cmd.Notes,
		CreatedBy:     cmd.CreatedBy,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, err
	}

	// Reload so the patient and doctor references come back resolved.
	created, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	s.resolveCreators(ctx, created)

	s.log.Info("appointment scheduled",
		zap.String("appointment_id", created.AppointmentID),
		zap.String("doctor_id", created.DoctorID.String()),
	)
	return created, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveCreators(ctx, a)
	return a, nil
}

// UpdateAppointment applies partial updates. Status moves are unrestricted:
// any known status may replace any other, including moving out of a
// terminal state.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	if err := validateAppointmentUpdate(cmd); err != nil {
		return nil, err
	}

	a, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.resolveCreators(ctx, a)

	s.log.Info("appointment updated",
		zap.String("appointment_id", a.AppointmentID),
		zap.String("status", string(a.Status)),
	)
	return a, nil
}

// CancelAppointment is the delete operation: status flips to cancelled and
// the row stays.
func (s *AppointmentService) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}
	s.log.Info("appointment cancelled", zap.String("id", id.String()))
	return nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	normalizePage(&q.Page, &q.PageSize)
	if q.Status != nil && !q.Status.IsValid() {
		return nil, &ValidationError{Fields: []string{"status is not a recognized appointment status"}}
	}

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	s.resolveCreators(ctx, page.Appointments...)
	return page, nil
}

// TodaysAppointments returns every appointment on the local calendar day,
// sorted by the raw time-of-day string.
func (s *AppointmentService) TodaysAppointments(ctx context.Context) ([]*appointment.Appointment, error) {
	start, end := localDayWindow()
	appointments, err := s.repo.ListDay(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}
	s.resolveCreators(ctx, appointments...)
	return appointments, nil
}

func (s *AppointmentService) resolveCreators(ctx context.Context, appointments ...*appointment.Appointment) {
	ids := make([]uuid.UUID, 0, len(appointments))
	for _, a := range appointments {
		if a.CreatedBy != nil {
			ids = append(ids, *a.CreatedBy)
		}
	}
	if len(ids) == 0 {
		return
	}

	refs, err := s.users.GetRefs(ctx, ids)
	if err != nil {
		s.log.Warn("failed to resolve creator references", zap.Error(err))
		return
	}
	for _, a := range appointments {
		if a.CreatedBy != nil {
			a.Creator = refs[*a.CreatedBy]
		}
	}
}

func applyAppointmentDefaults(cmd *appointment.CreateAppointmentCommand) {
	if cmd.Duration == 0 {
		cmd.Duration = 30
	}
	if cmd.Type == "" {
		cmd.Type = appointment.TypeConsultation
	}
	if cmd.Priority == "" {
		cmd.Priority = appointment.PriorityMedium
	}
}

func validateAppointmentCreate(cmd *appointment.CreateAppointmentCommand) error {
	var fields []string
	if cmd.PatientID == uuid.Nil {
		fields = append(fields, "patientId is required")
	}
	if cmd.DoctorID == uuid.Nil {
		fields = append(fields, "doctorId is required")
	}
	if cmd.Date.IsZero() {
		fields = append(fields, "appointmentDate is required")
	}
	if strings.TrimSpace(cmd.Time) == "" {
		fields = append(fields, "appointmentTime is required")
	}
	if cmd.Duration < minDurationMins || cmd.Duration > maxDurationMins {
		fields = append(fields, "duration must be between 5 and 480 minutes")
	}
	if !cmd.Type.IsValid() {
		fields = append(fields, "type is not a recognized appointment type")
	}
	if !cmd.Priority.IsValid() {
		fields = append(fields, "priority is not a recognized priority")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateAppointmentUpdate(cmd *appointment.UpdateAppointmentCommand) error {
	var fields []string
	if cmd.Time != nil && strings.TrimSpace(*cmd.Time) == "" {
		fields = append(fields, "appointmentTime must not be empty")
	}
	if cmd.Duration != nil && (*cmd.Duration < minDurationMins || *cmd.Duration > maxDurationMins) {
		fields = append(fields, "duration must be between 5 and 480 minutes")
	}
	if cmd.Type != nil && !cmd.Type.IsValid() {
		fields = append(fields, "type is not a recognized appointment type")
	}
	if cmd.Status != nil && !cmd.Status.IsValid() {
		fields = append(fields, "status is not a recognized appointment status")
	}
	if cmd.Priority != nil && !cmd.Priority.IsValid() {
		fields = append(fields, "priority is not a recognized priority")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
