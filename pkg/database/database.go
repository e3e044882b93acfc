package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey so
		// the repositories can map them to domain errors.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinic", "auth"}
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&patient.Patient{},
		&doctor.Doctor{},
		&appointment.Appointment{},
		&record.MedicalRecord{},
		&notification.Notification{},
		&sequence.Counter{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_day ON clinic.appointments (appointment_date, appointment_time)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_open_urgent ON clinic.appointments (priority, status) WHERE priority IN ('urgent', 'high') AND status IN ('scheduled', 'confirmed')`,
		`CREATE INDEX IF NOT EXISTS idx_records_follow_up ON clinic.medical_records (follow_up_date) WHERE follow_up_completed = false`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON clinic.notifications (user_id, created_at DESC) WHERE is_read = false`,
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			return err
		}
	}
	return nil
}

// SyncSequences raises each display-ID counter to the current row count of
// its collection. Pre-seeded rows with explicit IDs would otherwise collide
// with freshly assigned ones. Counters never go down.
func SyncSequences(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	assigner := sequence.NewAssigner(db)

	counts := []struct {
		kind  sequence.Kind
		model any
	}{
		{sequence.KindPatient, &patient.Patient{}},
		{sequence.KindDoctor, &doctor.Doctor{}},
		{sequence.KindAppointment, &appointment.Appointment{}},
		{sequence.KindRecord, &record.MedicalRecord{}},
	}

	for _, c := range counts {
		var count int64
		if err := db.WithContext(ctx).Model(c.model).Count(&count).Error; err != nil {
			return fmt.Errorf("counting %s rows: %w", c.kind, err)
		}
		if err := assigner.Sync(ctx, c.kind, count); err != nil {
			return err
		}
		log.Debug("sequence synced",
			zap.String("kind", string(c.kind)),
			zap.Int64("floor", count),
		)
	}
	return nil
}
