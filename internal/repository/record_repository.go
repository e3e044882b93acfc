package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

var _ record.Repository = (*RecordRepository)(nil)

func (r *RecordRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Appointment")
}

func (r *RecordRepository) Create(ctx context.Context, m *record.MedicalRecord) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return record.ErrDuplicateRecordID
		}
		return fmt.Errorf("inserting medical record: %w", err)
	}
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*record.MedicalRecord, error) {
	var m record.MedicalRecord
	err := r.withRefs(ctx).First(&m, "clinic.medical_records.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, record.ErrRecordNotFound
		}
		return nil, fmt.Errorf("fetching medical record: %w", err)
	}
	return &m, nil
}

func (r *RecordRepository) Update(ctx context.Context, id uuid.UUID, cmd *record.UpdateRecordCommand) (*record.MedicalRecord, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.VisitType != nil {
		m.VisitType = *cmd.VisitType
	}
	if cmd.ChiefComplaint != nil {
		m.ChiefComplaint = *cmd.ChiefComplaint
	}
	if cmd.Symptoms != nil {
		m.Symptoms = *cmd.Symptoms
	}
	if cmd.Diagnosis != nil {
		m.Diagnosis = *cmd.Diagnosis
	}
	if cmd.Treatment != nil {
		m.Treatment = *cmd.Treatment
	}
	if cmd.Prescriptions != nil {
		m.Prescriptions = *cmd.Prescriptions
	}
	if cmd.Vitals != nil {
		m.Vitals = cmd.Vitals
	}
	if cmd.Tests != nil {
		m.Tests = *cmd.Tests
	}
	if cmd.FollowUpDate != nil {
		m.FollowUpDate = cmd.FollowUpDate
	}
	if cmd.FollowUpCompleted != nil {
		m.FollowUpCompleted = *cmd.FollowUpCompleted
	}
	if cmd.Notes != nil {
		m.Notes = *cmd.Notes
	}
	if cmd.Attachments != nil {
		m.Attachments = *cmd.Attachments
	}

	if err := r.db.WithContext(ctx).Omit("Patient", "Doctor", "Appointment").Save(m).Error; err != nil {
		return nil, fmt.Errorf("updating medical record: %w", err)
	}
	return m, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&record.MedicalRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting medical record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return record.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) List(ctx context.Context, q *record.ListRecordsQuery) (*record.PagedRecords, error) {
	base := r.db.WithContext(ctx).Model(&record.MedicalRecord{})

	if q.PatientID != nil {
		base = base.Where("patient_id = ?", *q.PatientID)
	}
	if q.DoctorID != nil {
		base = base.Where("doctor_id = ?", *q.DoctorID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting medical records: %w", err)
	}

	var records []*record.MedicalRecord
	err := base.
		Preload("Patient").Preload("Doctor").Preload("Appointment").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing medical records: %w", err)
	}

	return &record.PagedRecords{
		Records:    records,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

func (r *RecordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*record.MedicalRecord, error) {
	var records []*record.MedicalRecord
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Appointment").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient history: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&record.MedicalRecord{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting medical records: %w", err)
	}
	return count, nil
}

func (r *RecordRepository) CountCreatedInRange(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&record.MedicalRecord{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting records in range: %w", err)
	}
	return count, nil
}

func (r *RecordRepository) CountPendingFollowUps(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&record.MedicalRecord{}).
		Where("follow_up_date >= ? AND follow_up_completed = ?", from, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting pending follow-ups: %w", err)
	}
	return count, nil
}

func (r *RecordRepository) CreatedSince(ctx context.Context, since time.Time, limit int) ([]*record.MedicalRecord, error) {
	var records []*record.MedicalRecord
	err := r.withRefs(ctx).
		Where("clinic.medical_records.created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent records: %w", err)
	}
	return records, nil
}
