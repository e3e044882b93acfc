package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

var _ doctor.Repository = (*DoctorRepository)(nil)

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return doctor.ErrDuplicateDoctorID
		}
		return fmt.Errorf("inserting doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("fetching doctor: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.PersonalInfo != nil {
		d.PersonalInfo = *cmd.PersonalInfo
	}
	if cmd.ProfessionalInfo != nil {
		d.ProfessionalInfo = *cmd.ProfessionalInfo
	}
	if cmd.Schedule != nil {
		d.Schedule = *cmd.Schedule
	}
	if cmd.ConsultationFee != nil {
		d.ConsultationFee = *cmd.ConsultationFee
	}
	if cmd.IsActive != nil {
		d.IsActive = *cmd.IsActive
	}

	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}
	return d, nil
}

func (r *DoctorRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivating doctor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) (*doctor.PagedDoctors, error) {
	base := r.db.WithContext(ctx).Model(&doctor.Doctor{})

	if !q.IncludeInactive {
		base = base.Where("is_active = ?", true)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR doctor_id ILIKE ? OR specialization ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Specialization != "" {
		base = base.Where("specialization ILIKE ?", "%"+q.Specialization+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting doctors: %w", err)
	}

	var doctors []*doctor.Doctor
	err := base.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}

	return &doctor.PagedDoctors{
		Doctors:    doctors,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

func (r *DoctorRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting active doctors: %w", err)
	}
	return count, nil
}

func (r *DoctorRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&doctor.Doctor{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting doctors: %w", err)
	}
	return count, nil
}
