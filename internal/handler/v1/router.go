package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *AuthHandler
	Patient      *PatientHandler
	Doctor       *DoctorHandler
	Appointment  *AppointmentHandler
	Record       *RecordHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
}

func NewRouter(cfg *config.Config, jwtManager *auth.JWTManager, collector *metrics.Collector, h Handlers) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(MetricsMiddleware(collector))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api")

	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "API is working"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.GET("/me", AuthMiddleware(jwtManager), h.Auth.Me)
		authGroup.POST("/change-password", AuthMiddleware(jwtManager), h.Auth.ChangePassword)
	}

	protected := api.Group("")
	protected.Use(AuthMiddleware(jwtManager))
	{
		patients := protected.Group("/patients")
		{
			patients.GET("", h.Patient.List)
			patients.POST("", h.Patient.Create)
			patients.GET("/:id", h.Patient.Get)
			patients.PUT("/:id", h.Patient.Update)
			patients.DELETE("/:id", h.Patient.Delete)
		}

		doctors := protected.Group("/doctors")
		{
			doctors.GET("", h.Doctor.List)
			doctors.POST("", h.Doctor.Create)
			doctors.GET("/:id", h.Doctor.Get)
			doctors.GET("/:id/schedule", h.Doctor.GetSchedule)
			doctors.PUT("/:id", h.Doctor.Update)
			doctors.DELETE("/:id", h.Doctor.Delete)
		}

		appointments := protected.Group("/appointments")
		{
			// Fixed segment first: /today/all must win over /:id.
			appointments.GET("/today/all", h.Appointment.Today)
			appointments.GET("", h.Appointment.List)
			appointments.POST("", h.Appointment.Create)
			appointments.GET("/:id", h.Appointment.Get)
			appointments.PUT("/:id", h.Appointment.Update)
			appointments.DELETE("/:id", h.Appointment.Delete)
		}

		records := protected.Group("/records")
		{
			// Fixed segment first: /patient/:patientId must win over /:id.
			records.GET("/patient/:patientId", h.Record.PatientHistory)
			records.GET("", h.Record.List)
			records.POST("", h.Record.Create)
			records.GET("/:id", h.Record.Get)
			records.PUT("/:id", h.Record.Update)
			records.DELETE("/:id", h.Record.Delete)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/recent-activities", h.Dashboard.RecentActivities)
			dashboard.GET("/todays-appointments", h.Dashboard.TodaysAppointments)
			dashboard.GET("/summary", h.Dashboard.Summary)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			// Fixed segment first: mark-all-read must win over /:id/read.
			notifications.PUT("/mark-all-read", h.Notification.MarkAllRead)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.DELETE("/:id", h.Notification.Delete)
			notifications.POST("/generate-sample", h.Notification.GenerateSample)
			notifications.POST("/generate-from-activities", h.Notification.GenerateFromActivities)
		}
	}

	return r
}
