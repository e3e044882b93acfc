package service

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecordService struct {
	repo            record.Repository
	patientRepo     patient.Repository
	doctorRepo      doctor.Repository
	appointmentRepo appointment.Repository
	assigner        IDAssigner
	log             *zap.Logger
}

func NewRecordService(
	repo record.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	appointmentRepo appointment.Repository,
	assigner IDAssigner,
	log *zap.Logger,
) *RecordService {
	return &RecordService{
		repo:            repo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		assigner:        assigner,
		log:             log,
	}
}

func (s *RecordService) CreateRecord(ctx context.Context, cmd *record.CreateRecordCommand) (*record.MedicalRecord, error) {
	if err := validateRecordCreate(cmd); err != nil {
		return nil, err
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID); err != nil {
		return nil, err
	}
	if cmd.AppointmentID != nil {
		if _, err := s.appointmentRepo.GetByID(ctx, *cmd.AppointmentID); err != nil {
			return nil, err
		}
	}

	recordID, err := s.assigner.Next(ctx, sequence.KindRecord)
	if err != nil {
		s.log.Error("failed to assign record ID", zap.Error(err))
		return nil, fmt.Errorf("assigning record ID: %w", err)
	}

	m := &record.MedicalRecord{
		RecordID:          recordID,
		PatientID:         cmd.PatientID,
		DoctorID:          cmd.DoctorID,
		AppointmentID:     cmd.AppointmentID,
		VisitType:         cmd.VisitType,
		ChiefComplaint:    cmd.ChiefComplaint,
		Symptoms:          cmd.Symptoms,
		Diagnosis:         cmd.Diagnosis,
		Treatment:         cmd.Treatment,
		Prescriptions:     cmd.Prescriptions,
		Vitals:            cmd.Vitals,
		Tests:             cmd.Tests,
		FollowUpDate:      cmd.FollowUpDate,
		FollowUpCompleted: cmd.FollowUpCompleted,
		Notes:             cmd.Notes,
		Attachments:       cmd.Attachments,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error("failed to create medical record", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("medical record created",
		zap.String("record_id", created.RecordID),
		zap.String("patient_id", created.PatientID.String()),
	)
	return created, nil
}

func (s *RecordService) GetRecord(ctx context.Context, id uuid.UUID) (*record.MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RecordService) UpdateRecord(ctx context.Context, id uuid.UUID, cmd *record.UpdateRecordCommand) (*record.MedicalRecord, error) {
	if cmd.VisitType != nil && !cmd.VisitType.IsValid() {
		return nil, &ValidationError{Fields: []string{"visitType is not a recognized visit type"}}
	}

	m, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.log.Info("medical record updated", zap.String("record_id", m.RecordID))
	return m, nil
}

// DeleteRecord removes the row permanently. Medical records are the one
// entity without soft-delete semantics.
func (s *RecordService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("medical record deleted", zap.String("id", id.String()))
	return nil
}

func (s *RecordService) ListRecords(ctx context.Context, q *record.ListRecordsQuery) (*record.PagedRecords, error) {
	normalizePage(&q.Page, &q.PageSize)
	return s.repo.List(ctx, q)
}

// PatientHistory returns the full, unpaginated record history of a patient,
// newest first. The patient must exist; soft-deleted patients still have
// readable history.
func (s *RecordService) PatientHistory(ctx context.Context, patientID uuid.UUID) ([]*record.MedicalRecord, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func validateRecordCreate(cmd *record.CreateRecordCommand) error {
	var fields []string
	if cmd.PatientID == uuid.Nil {
		fields = append(fields, "patientId is required")
	}
	if cmd.DoctorID == uuid.Nil {
		fields = append(fields, "doctorId is required")
	}
	if !cmd.VisitType.IsValid() {
		fields = append(fields, "visitType is not a recognized visit type")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
