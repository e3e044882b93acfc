package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Patient").Preload("Doctor")
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appointment.ErrDuplicateAppointmentID
		}
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.withRefs(ctx).First(&a, "clinic.appointments.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Date != nil {
		a.Date = *cmd.Date
	}
	if cmd.Time != nil {
		a.Time = *cmd.Time
	}
	if cmd.Duration != nil {
		a.Duration = *cmd.Duration
	}
	if cmd.Type != nil {
		a.Type = *cmd.Type
	}
	if cmd.Status != nil {
		a.Status = *cmd.Status
	}
	if cmd.Priority != nil {
		a.Priority = *cmd.Priority
	}
	if cmd.Symptoms != nil {
		a.Symptoms = *cmd.Symptoms
	}
	if cmd.Notes != nil {
		a.Notes = *cmd.Notes
	}

	if err := r.db.WithContext(ctx).Omit("Patient", "Doctor").Save(a).Error; err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}
	return a, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Update("status", appointment.StatusCancelled)
	if res.Error != nil {
		return fmt.Errorf("cancelling appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	base := r.db.WithContext(ctx).Model(&appointment.Appointment{})

	if q.Status != nil {
		base = base.Where("status = ?", *q.Status)
	} else {
		// Default scope: cancelled is the soft-deleted state.
		base = base.Where("status <> ?", appointment.StatusCancelled)
	}
	if q.Date != nil {
		start := startOfDay(*q.Date)
		base = base.Where("appointment_date >= ? AND appointment_date < ?", start, start.AddDate(0, 0, 1))
	}
	if q.DoctorID != nil {
		base = base.Where("doctor_id = ?", *q.DoctorID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	var appointments []*appointment.Appointment
	err := base.
		Preload("Patient").Preload("Doctor").
		Order("appointment_date ASC, appointment_time ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return &appointment.PagedAppointments{
		Appointments: appointments,
		TotalCount:   total,
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalPages:   totalPages(total, q.PageSize),
	}, nil
}

func (r *AppointmentRepository) ListDay(ctx context.Context, start, end time.Time, limit int) ([]*appointment.Appointment, error) {
	query := r.withRefs(ctx).
		Where("appointment_date >= ? AND appointment_date < ?", start, end).
		// Lexical sort on the raw time string, as the dashboard has always
		// displayed it: "2:00 PM" sorts before "10:00 AM".
		Order("appointment_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var appointments []*appointment.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing day appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CountInRange(ctx context.Context, start, end time.Time, statuses []appointment.AppointmentStatus) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", start, end)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting appointments in range: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) CompletedInRange(ctx context.Context, start, end time.Time) ([]*appointment.Appointment, error) {
	var appointments []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("appointment_date >= ? AND appointment_date < ? AND status = ?",
			start, end, appointment.StatusCompleted).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("listing completed appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CountOpenUrgent(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("priority IN ? AND status IN ?",
			[]appointment.Priority{appointment.PriorityUrgent, appointment.PriorityHigh},
			[]appointment.AppointmentStatus{appointment.StatusScheduled, appointment.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting urgent appointments: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) OpenUrgent(ctx context.Context, limit int) ([]*appointment.Appointment, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Where("priority IN ? AND status IN ?",
			[]appointment.Priority{appointment.PriorityUrgent, appointment.PriorityHigh},
			[]appointment.AppointmentStatus{appointment.StatusScheduled, appointment.StatusConfirmed}).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var appointments []*appointment.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing urgent appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CreatedSince(ctx context.Context, since time.Time, limit int) ([]*appointment.Appointment, error) {
	var appointments []*appointment.Appointment
	err := r.withRefs(ctx).
		Where("clinic.appointments.created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent appointments: %w", err)
	}
	return appointments, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
