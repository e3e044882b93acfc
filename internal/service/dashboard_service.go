package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain/record"
	"go.uber.org/zap"
)

const (
	defaultActivityLimit = 10
	activitySourceCap    = 5
	todaysAppointmentCap = 10
)

// StatEntry is one dashboard stat card: an absolute count plus a
// pre-formatted trend string.
type StatEntry struct {
	Count int64  `json:"count"`
	Trend string `json:"trend"`
}

type Stats struct {
	TotalPatients      StatEntry `json:"totalPatients"`
	ActiveDoctors      StatEntry `json:"activeDoctors"`
	TodaysAppointments StatEntry `json:"todaysAppointments"`
	MedicalRecords     StatEntry `json:"medicalRecords"`
}

// Activity is one recent-activity feed entry. Time is the relative form
// ("5 minutes ago"); CreatedAt orders the merged feed and is not serialized.
type Activity struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Time     string `json:"time"`
	Priority string `json:"priority"`

	CreatedAt time.Time `json:"-"`
}

type TodayAppointment struct {
	ID      string `json:"id"`
	Patient string `json:"patient"`
	Doctor  string `json:"doctor"`
	Time    string `json:"time"`
	Type    string `json:"type"`
	Status  string `json:"status"`
}

type Summary struct {
	Appointments string `json:"appointments"`
	Urgent       string `json:"urgent"`
	Revenue      string `json:"revenue"`
}

type DashboardService struct {
	patientRepo     patient.Repository
	doctorRepo      doctor.Repository
	appointmentRepo appointment.Repository
	recordRepo      record.Repository
	log             *zap.Logger

	// Injectable clock so the window math is testable.
	now func() time.Time
}

func NewDashboardService(
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	appointmentRepo appointment.Repository,
	recordRepo record.Repository,
	log *zap.Logger,
) *DashboardService {
	return &DashboardService{
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
		log:             log,
		now:             time.Now,
	}
}

// Stats computes the four dashboard cards. Any failed query fails the whole
// call; the dashboard never shows partial numbers.
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	todayStart, todayEnd := dayWindow(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	oneMonthAgo := now.AddDate(0, -1, 0)

	totalPatients, err := s.patientRepo.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}
	patientBaseline, err := s.patientRepo.Count(ctx, &oneMonthAgo)
	if err != nil {
		return nil, fmt.Errorf("counting patient baseline: %w", err)
	}

	activeDoctors, err := s.doctorRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting active doctors: %w", err)
	}
	totalDoctors, err := s.doctorRepo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting doctors: %w", err)
	}

	todaysAppointments, err := s.appointmentRepo.CountInRange(ctx, todayStart, todayEnd, nil)
	if err != nil {
		return nil, fmt.Errorf("counting today's appointments: %w", err)
	}
	yesterdaysAppointments, err := s.appointmentRepo.CountInRange(ctx, yesterdayStart, todayStart, nil)
	if err != nil {
		return nil, fmt.Errorf("counting yesterday's appointments: %w", err)
	}

	totalRecords, err := s.recordRepo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	todaysRecords, err := s.recordRepo.CountCreatedInRange(ctx, todayStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("counting today's records: %w", err)
	}

	return &Stats{
		TotalPatients: StatEntry{
			Count: totalPatients,
			Trend: patientTrend(totalPatients, patientBaseline),
		},
		ActiveDoctors: StatEntry{
			Count: activeDoctors,
			Trend: doctorTrend(activeDoctors, totalDoctors),
		},
		TodaysAppointments: StatEntry{
			Count: todaysAppointments,
			Trend: appointmentTrend(todaysAppointments, yesterdaysAppointments),
		},
		MedicalRecords: StatEntry{
			Count: totalRecords,
			Trend: recordTrend(todaysRecords),
		},
	}, nil
}

// RecentActivities merges appointments, patient registrations and medical
// records from the trailing 24 hours into one feed, newest first.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]Activity, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	now := s.now()
	since := now.Add(-24 * time.Hour)

	appointments, err := s.appointmentRepo.CreatedSince(ctx, since, activitySourceCap)
	if err != nil {
		return nil, fmt.Errorf("listing recent appointments: %w", err)
	}
	patients, err := s.patientRepo.CreatedSince(ctx, since, activitySourceCap)
	if err != nil {
		return nil, fmt.Errorf("listing recent patients: %w", err)
	}
	records, err := s.recordRepo.CreatedSince(ctx, since, activitySourceCap)
	if err != nil {
		return nil, fmt.Errorf("listing recent records: %w", err)
	}

	activities := make([]Activity, 0, len(appointments)+len(patients)+len(records))
	for _, a := range appointments {
		priority := "normal"
		if a.Priority == appointment.PriorityUrgent {
			priority = "high"
		}
		doctorName := ""
		if a.Doctor != nil {
			doctorName = a.Doctor.FullName()
		}
		activities = append(activities, Activity{
			ID:        a.ID.String(),
			Type:      "appointment",
			Message:   "New appointment scheduled with Dr. " + doctorName,
			Time:      relativeTime(a.CreatedAt, now),
			Priority:  priority,
			CreatedAt: a.CreatedAt,
		})
	}
	for _, p := range patients {
		activities = append(activities, Activity{
			ID:        p.ID.String(),
			Type:      "patient",
			Message:   "New patient " + p.FullName() + " registered",
			Time:      relativeTime(p.CreatedAt, now),
			Priority:  "normal",
			CreatedAt: p.CreatedAt,
		})
	}
	for _, m := range records {
		patientName := ""
		if m.Patient != nil {
			patientName = m.Patient.FullName()
		}
		activities = append(activities, Activity{
			ID:        m.ID.String(),
			Type:      "record",
			Message:   "Medical record updated for " + patientName,
			Time:      relativeTime(m.CreatedAt, now),
			Priority:  "normal",
			CreatedAt: m.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// TodaysAppointments lists today's schedule, sorted by the raw time-of-day
// string and capped at ten entries.
func (s *DashboardService) TodaysAppointments(ctx context.Context) ([]TodayAppointment, error) {
	start, end := dayWindow(s.now())
	appointments, err := s.appointmentRepo.ListDay(ctx, start, end, todaysAppointmentCap)
	if err != nil {
		return nil, fmt.Errorf("listing today's appointments: %w", err)
	}

	entries := make([]TodayAppointment, 0, len(appointments))
	for _, a := range appointments {
		entry := TodayAppointment{
			ID:     a.ID.String(),
			Time:   a.Time,
			Type:   string(a.Type),
			Status: string(a.Status),
		}
		if a.Patient != nil {
			entry.Patient = a.Patient.FullName()
		}
		if a.Doctor != nil {
			entry.Doctor = a.Doctor.DisplayName()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Summary builds the one-line completion, urgency and revenue digests.
// Revenue joins each completed appointment against its doctor's CURRENT
// consultation fee, so a fee change retroactively moves today's figure.
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	now := s.now()
	start, end := dayWindow(now)

	total, err := s.appointmentRepo.CountInRange(ctx, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("counting today's appointments: %w", err)
	}
	completedAppointments, err := s.appointmentRepo.CompletedInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing completed appointments: %w", err)
	}
	completed := int64(len(completedAppointments))

	urgent, err := s.appointmentRepo.CountOpenUrgent(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting urgent appointments: %w", err)
	}
	followUps, err := s.recordRepo.CountPendingFollowUps(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("counting pending follow-ups: %w", err)
	}

	var revenue float64
	for _, a := range completedAppointments {
		if a.Doctor != nil {
			revenue += a.Doctor.ConsultationFee
		}
	}

	revenueLine := "$" + strconv.FormatFloat(revenue, 'f', -1, 64)
	if completed > 0 && total > 0 {
		completion := roundPct(float64(completed) / float64(total) * 100)
		revenueLine += fmt.Sprintf(" (+%d%% completion)", completion)
	}

	return &Summary{
		Appointments: fmt.Sprintf("%d out of %d appointments", completed, total),
		Urgent:       fmt.Sprintf("%d urgent, %d follow-ups", urgent, followUps),
		Revenue:      revenueLine,
	}, nil
}

// patientTrend compares active patients now against the count a calendar
// month ago. A zero baseline reads as +100% growth.
func patientTrend(total, baseline int64) string {
	if baseline <= 0 {
		return "+100%"
	}
	return fmt.Sprintf("%+d%%", roundPct(float64(total-baseline)/float64(baseline)*100))
}

func doctorTrend(active, total int64) string {
	if total <= 0 {
		return "+0%"
	}
	return fmt.Sprintf("%d%% active", roundPct(float64(active)/float64(total)*100))
}

// appointmentTrend treats an empty yesterday differently from the patient
// card: no appointments either day is flat, not growth.
func appointmentTrend(today, yesterday int64) string {
	if yesterday <= 0 {
		if today > 0 {
			return "+100%"
		}
		return "+0%"
	}
	return fmt.Sprintf("%+d%%", roundPct(float64(today-yesterday)/float64(yesterday)*100))
}

func recordTrend(todayCount int64) string {
	if todayCount > 0 {
		return fmt.Sprintf("+%d today", todayCount)
	}
	return "No records today"
}

func roundPct(v float64) int {
	return int(math.Round(v))
}

// relativeTime renders the feed timestamps: "Just now" under a minute, then
// minutes, hours and days with singular/plural handled.
func relativeTime(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return pluralize(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return pluralize(int(elapsed.Hours()), "hour") + " ago"
	default:
		return pluralize(int(elapsed.Hours()/24), "day") + " ago"
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// dayWindow returns [start, end) of the local calendar day containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func localDayWindow() (time.Time, time.Time) {
	return dayWindow(time.Now())
}
