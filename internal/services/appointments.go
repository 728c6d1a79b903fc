package services

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-mock-api/internal/metrics"
	"github.com/harentsoaR/clinic-mock-api/internal/models"
	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrSlotUnavailable = errors.New("doctor already booked for this time")
)

type StoreOptions struct {
	// EnforceConflicts makes Create reject bookings that overlap a
	// non-cancelled appointment of the same doctor.
	EnforceConflicts bool
	// Logger defaults to a disabled logger when nil.
	Logger  *zerolog.Logger
	Metrics *metrics.StoreMetrics
}

// AppointmentStore caches one bucket of appointments per week, keyed by the
// Monday of that week. Buckets are generated lazily and never evicted.
type AppointmentStore struct {
	mu    sync.Mutex
	gen   *Generator
	weeks map[string][]models.Appointment

	enforceConflicts bool
	log              zerolog.Logger
	metrics          *metrics.StoreMetrics
}

func NewAppointmentStore(gen *Generator, opts StoreOptions) *AppointmentStore {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &AppointmentStore{
		gen:              gen,
		weeks:            make(map[string][]models.Appointment),
		enforceConflicts: opts.EnforceConflicts,
		log:              log,
		metrics:          opts.Metrics,
	}
}

// AppointmentsByWeek returns the bucket for the week containing week, any
// ISO date or timestamp. Repeated reads without writes return the same sequence.
func (s *AppointmentStore) AppointmentsByWeek(week string) ([]models.Appointment, error) {
	t, err := utils.ParseISO(week, s.gen.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, week)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bucketLocked(t)), nil
}

// Create stores a client booking in the week of its start time, assigning an id.
func (s *AppointmentStore) Create(n models.NewAppointment) (models.Appointment, error) {
	start, err := utils.ParseISO(n.StartTime, s.gen.Location())
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: startTime %q", ErrInvalidDate, n.StartTime)
	}
	end, err := utils.ParseISO(n.EndTime, s.gen.Location())
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: endTime %q", ErrInvalidDate, n.EndTime)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.weekKey(start)
	bucket := s.bucketLocked(start)
	if s.enforceConflicts && !slotAvailable(bucket, start, end, n.DoctorID, s.gen.Location()) {
		s.metrics.ObserveCreate("conflict")
		return models.Appointment{}, ErrSlotUnavailable
	}

	apt := n.WithID(s.gen.NewID())
	bucket = append(bucket, apt)
	s.sortLocked(bucket)
	s.weeks[key] = bucket

	s.metrics.ObserveCreate("created")
	s.log.Info().
		Str("id", apt.ID).
		Str("week", key).
		Str("doctor_id", apt.DoctorID).
		Str("start_time", apt.StartTime).
		Msg("appointment created")
	return apt, nil
}

// IsSlotAvailable reports whether doctorID has no non-cancelled appointment
// in the week of start that the interval [start, end) runs into. A week that
// was never generated has no conflicts.
func (s *AppointmentStore) IsSlotAvailable(start, end time.Time, doctorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.weeks[s.weekKey(start)]
	if !ok {
		return true
	}
	return slotAvailable(bucket, start, end, doctorID, s.gen.Location())
}

// slotAvailable flags a conflict when start falls in [a.start, a.end) or end
// falls in (a.start, a.end] of an existing appointment.
func slotAvailable(bucket []models.Appointment, start, end time.Time, doctorID string, loc *time.Location) bool {
	for _, apt := range bucket {
		if apt.DoctorID != doctorID || apt.Status == models.StatusCancelled {
			continue
		}
		aStart, err1 := utils.ParseISO(apt.StartTime, loc)
		aEnd, err2 := utils.ParseISO(apt.EndTime, loc)
		if err1 != nil || err2 != nil {
			continue
		}
		startInside := !start.Before(aStart) && start.Before(aEnd)
		endInside := end.After(aStart) && !end.After(aEnd)
		if startInside || endInside {
			return false
		}
	}
	return true
}

func (s *AppointmentStore) weekKey(t time.Time) string {
	return utils.WeekKey(t.In(s.gen.Location()))
}

func (s *AppointmentStore) bucketLocked(t time.Time) []models.Appointment {
	key := s.weekKey(t)
	if bucket, ok := s.weeks[key]; ok {
		return bucket
	}
	bucket := s.gen.Week(t)
	s.weeks[key] = bucket
	s.metrics.ObserveWeekGenerated(len(bucket))
	s.log.Debug().Str("week", key).Int("appointments", len(bucket)).Msg("generated week")
	return bucket
}

func (s *AppointmentStore) sortLocked(bucket []models.Appointment) {
	loc := s.gen.Location()
	slices.SortStableFunc(bucket, func(a, b models.Appointment) int {
		at, _ := utils.ParseISO(a.StartTime, loc)
		bt, _ := utils.ParseISO(b.StartTime, loc)
		return at.Compare(bt)
	})
}
