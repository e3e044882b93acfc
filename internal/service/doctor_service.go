package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DoctorService struct {
	repo     doctor.Repository
	assigner IDAssigner
	users    UserRefResolver
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, assigner IDAssigner, users UserRefResolver, log *zap.Logger) *DoctorService {
	return &DoctorService{
		repo:     repo,
		assigner: assigner,
		users:    users,
		log:      log,
	}
}

func (s *DoctorService) AddDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	if err := validateDoctorCreate(cmd); err != nil {
		return nil, err
	}

	doctorID, err := s.assigner.Next(ctx, sequence.KindDoctor)
	if err != nil {
		s.log.Error("failed to assign doctor ID", zap.Error(err))
		return nil, fmt.Errorf("assigning doctor ID: %w", err)
	}

	d := &doctor.Doctor{
		DoctorID:         doctorID,
		PersonalInfo:     cmd.PersonalInfo,
		ProfessionalInfo: cmd.ProfessionalInfo,
		Schedule:         cmd.Schedule,
		ConsultationFee:  cmd.ConsultationFee,
		IsActive:         true,
		AddedBy:          cmd.AddedBy,
	}
	d.PersonalInfo.FirstName = strings.TrimSpace(d.PersonalInfo.FirstName)
	d.PersonalInfo.LastName = strings.TrimSpace(d.PersonalInfo.LastName)
	d.PersonalInfo.Email = strings.ToLower(strings.TrimSpace(d.PersonalInfo.Email))

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, err
	}

	s.resolveRegistrars(ctx, d)

	s.log.Info("doctor added",
		zap.String("doctor_id", d.DoctorID),
		zap.String("specialization", d.ProfessionalInfo.Specialization),
	)
	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, d)
	return d, nil
}

// GetSchedule returns a doctor's weekly availability slots. The slots are
// display data only; booking never checks them.
func (s *DoctorService) GetSchedule(ctx context.Context, id uuid.UUID) ([]doctor.ScheduleSlot, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Schedule, nil
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	if err := validateDoctorUpdate(cmd); err != nil {
		return nil, err
	}

	d, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, d)

	s.log.Info("doctor updated", zap.String("doctor_id", d.DoctorID))
	return d, nil
}

// DeactivateDoctor is the delete operation; the row survives with
// isActive=false.
func (s *DoctorService) DeactivateDoctor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("doctor deactivated", zap.String("id", id.String()))
	return nil
}

func (s *DoctorService) ListDoctors(ctx context.Context, q *doctor.ListDoctorsQuery) (*doctor.PagedDoctors, error) {
	normalizePage(&q.Page, &q.PageSize)

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	s.resolveRegistrars(ctx, page.Doctors...)
	return page, nil
}

func (s *DoctorService) resolveRegistrars(ctx context.Context, doctors ...*doctor.Doctor) {
	ids := make([]uuid.UUID, 0, len(doctors))
	for _, d := range doctors {
		if d.AddedBy != nil {
			ids = append(ids, *d.AddedBy)
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
	for _, d := range doctors {
		if d.AddedBy != nil {
			d.Registrar = refs[*d.AddedBy]
		}
	}
}

func validateDoctorCreate(cmd *doctor.CreateDoctorCommand) error {
	var fields []string
	if strings.TrimSpace(cmd.PersonalInfo.FirstName) == "" {
		fields = append(fields, "personalInfo.firstName is required")
	}
	if strings.TrimSpace(cmd.PersonalInfo.LastName) == "" {
		fields = append(fields, "personalInfo.lastName is required")
	}
	if strings.TrimSpace(cmd.PersonalInfo.Phone) == "" {
		fields = append(fields, "personalInfo.phone is required")
	}
	if strings.TrimSpace(cmd.PersonalInfo.Email) == "" {
		fields = append(fields, "personalInfo.email is required")
	}
	if strings.TrimSpace(cmd.ProfessionalInfo.Specialization) == "" {
		fields = append(fields, "professionalInfo.specialization is required")
	}
	if strings.TrimSpace(cmd.ProfessionalInfo.LicenseNumber) == "" {
		fields = append(fields, "professionalInfo.licenseNumber is required")
	}
	if cmd.ProfessionalInfo.Experience < 0 {
		fields = append(fields, "professionalInfo.experience must not be negative")
	}
	if cmd.ConsultationFee < 0 {
		fields = append(fields, "consultationFee must not be negative")
	}
	fields = append(fields, validateSchedule(cmd.Schedule)...)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateDoctorUpdate(cmd *doctor.UpdateDoctorCommand) error {
	var fields []string
	if cmd.PersonalInfo != nil {
		if strings.TrimSpace(cmd.PersonalInfo.FirstName) == "" {
			fields = append(fields, "personalInfo.firstName is required")
		}
		if strings.TrimSpace(cmd.PersonalInfo.LastName) == "" {
			fields = append(fields, "personalInfo.lastName is required")
		}
	}
	if cmd.ConsultationFee != nil && *cmd.ConsultationFee < 0 {
		fields = append(fields, "consultationFee must not be negative")
	}
	if cmd.Schedule != nil {
		fields = append(fields, validateSchedule(*cmd.Schedule)...)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateSchedule(slots []doctor.ScheduleSlot) []string {
	var fields []string
	for i, slot := range slots {
		if !slot.Day.IsValid() {
			fields = append(fields, fmt.Sprintf("schedule[%d].day is not a valid weekday", i))
		}
	}
	return fields
}
