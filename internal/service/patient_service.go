package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PatientService struct {
	repo     patient.Repository
	assigner IDAssigner
	users    UserRefResolver
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, assigner IDAssigner, users UserRefResolver, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:     repo,
		assigner: assigner,
		users:    users,
		log:      log,
	}
}

func (s *PatientService) RegisterPatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validatePatientCreate(cmd); err != nil {
		return nil, err
	}

	patientID, err := s.assigner.Next(ctx, sequence.KindPatient)
	if err != nil {
		s.log.Error("failed to assign patient ID", zap.Error(err))
		return nil, fmt.Errorf("assigning patient ID: %w", err)
	}

	p := &patient.Patient{
		PatientID:    patientID,
		PersonalInfo: cmd.PersonalInfo,
		MedicalInfo:  cmd.MedicalInfo,
		Insurance:    cmd.Insurance,
		IsActive:     true,
		RegisteredBy: cmd.RegisteredBy,
	}
	p.PersonalInfo.FirstName = strings.TrimSpace(p.PersonalInfo.FirstName)
	p.PersonalInfo.LastName = strings.TrimSpace(p.PersonalInfo.LastName)
	p.PersonalInfo.Email = strings.ToLower(strings.TrimSpace(p.PersonalInfo.Email))

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, err
	}

	s.resolveRegistrars(ctx, p)

	s.log.Info("patient registered",
		zap.String("patient_id", p.PatientID),
		zap.String("id", p.ID.String()),
	)
	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, p)
	return p, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if err := validatePatientUpdate(cmd); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, p)

	s.log.Info("patient updated", zap.String("patient_id", p.PatientID))
	return p, nil
}

// DeactivatePatient is the delete operation: the row survives with
// isActive=false so existing appointments and records keep resolving.
func (s *PatientService) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("patient deactivated", zap.String("id", id.String()))
	return nil
}

func (s *PatientService) ListPatients(ctx context.Context, q *patient.ListPatientsQuery) (*patient.PagedPatients, error) {
	normalizePage(&q.Page, &q.PageSize)

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, page.Patients...)
	return page, nil
}

// resolveRegistrars fills the Registrar field from the registeredBy weak
// reference. Resolution failures are logged and swallowed: a missing or
// deleted registrar must not fail a patient read.
func (s *PatientService) resolveRegistrars(ctx context.Context, patients ...*patient.Patient) {
	ids := make([]uuid.UUID, 0, len(patients))
	for _, p := range patients {
		if p.RegisteredBy != nil {
			ids = append(ids, *p.RegisteredBy)
		}
	}
	if len(ids) == 0 {
		return
	}

	refs, err := s.users.GetRefs(ctx, ids)
	if err != nil {
		s.log.Warn("failed to resolve registrar references", zap.Error(err))
		return
	}
	for _, p := range patients {
		if p.RegisteredBy != nil {
			p.Registrar = refs[*p.RegisteredBy]
		}
	}
}

func validatePatientCreate(cmd *patient.CreatePatientCommand) error {
	var fields []string
	if strings.TrimSpace(cmd.PersonalInfo.FirstName) == "" {
		fields = append(fields, "personalInfo.firstName is required")
	}
	if strings.TrimSpace(cmd.PersonalInfo.LastName) == "" {
		fields = append(fields, "personalInfo.lastName is required")
	}
	if cmd.PersonalInfo.DateOfBirth.IsZero() {
		fields = append(fields, "personalInfo.dateOfBirth is required")
	}
	if !cmd.PersonalInfo.Gender.IsValid() {
		fields = append(fields, "personalInfo.gender must be male, female or other")
	}
	if strings.TrimSpace(cmd.PersonalInfo.Phone) == "" {
		fields = append(fields, "personalInfo.phone is required")
	}
	if cmd.MedicalInfo.BloodType != "" && !cmd.MedicalInfo.BloodType.IsValid() {
		fields = append(fields, "medicalInfo.bloodType is not a recognized blood type")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validatePatientUpdate(cmd *patient.UpdatePatientCommand) error {
	var fields []string
	if cmd.PersonalInfo != nil {
		if strings.TrimSpace(cmd.PersonalInfo.FirstName) == "" {
			fields = append(fields, "personalInfo.firstName is required")
		}
		if strings.TrimSpace(cmd.PersonalInfo.LastName) == "" {
			fields = append(fields, "personalInfo.lastName is required")
		}
		if !cmd.PersonalInfo.Gender.IsValid() {
			fields = append(fields, "personalInfo.gender must be male, female or other")
		}
	}
	if cmd.MedicalInfo != nil && cmd.MedicalInfo.BloodType != "" && !cmd.MedicalInfo.BloodType.IsValid() {
		fields = append(fields, "medicalInfo.bloodType is not a recognized blood type")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = defaultPageSize
	}
	if *pageSize > maxPageSize {
		*pageSize = maxPageSize
	}
}
