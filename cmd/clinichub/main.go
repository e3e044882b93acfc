package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/config"
	v1 "github.com/dmehra2102/prod-golang-projects/clinichub/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/sequence"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/tracer"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		zlog.Fatal("initializing tracer", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}

	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("running migrations", zap.Error(err))
	}
	if err := database.SyncSequences(context.Background(), db, zlog); err != nil {
		zlog.Fatal("syncing sequences", zap.Error(err))
	}

	collector := metrics.NewCollector("clinichub")
	jwtManager := auth.NewJWTManager(cfg.JWT)
	assigner := sequence.NewAssigner(db)

	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	notificationRepo := repository.NewNotificationRepository(db, cfg.Notifications.TTL)

	authSvc := service.NewAuthService(userRepo, jwtManager, zlog)
	patientSvc := service.NewPatientService(patientRepo, assigner, userRepo, zlog)
	doctorSvc := service.NewDoctorService(doctorRepo, assigner, userRepo, zlog)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, assigner, userRepo, zlog)
	recordSvc := service.NewRecordService(recordRepo, patientRepo, doctorRepo, appointmentRepo, assigner, zlog)
	dashboardSvc := service.NewDashboardService(patientRepo, doctorRepo, appointmentRepo, recordRepo, zlog)
	notificationSvc := service.NewNotificationService(notificationRepo, appointmentRepo, patientRepo, zlog)

	router := v1.NewRouter(cfg, jwtManager, collector, v1.Handlers{
		Auth:         v1.NewAuthHandler(authSvc),
		Patient:      v1.NewPatientHandler(patientSvc, collector),
		Doctor:       v1.NewDoctorHandler(doctorSvc),
		Appointment:  v1.NewAppointmentHandler(appointmentSvc, collector),
		Record:       v1.NewRecordHandler(recordSvc, collector),
		Dashboard:    v1.NewDashboardHandler(dashboardSvc),
		Notification: v1.NewNotificationHandler(notificationSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Notification TTL sweeper and pool gauge.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
			}
		}
	}()
	go func() {
		ticker := time.NewTicker(cfg.Notifications.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				swept := notificationSvc.SweepExpired(sweepCtx, cfg.Notifications.TTL)
				collector.NotificationsSwept.Add(float64(swept))
			}
		}
	}()

	go func() {
		zlog.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(ctx); err != nil {
		zlog.Error("tracer shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}
