package services

import (
	"sort"
	"strings"
	"time"

	"github.com/harentsoaR/clinic-mock-api/internal/models"
	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

// Rand is the random source used for mock data. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

const (
	SlotLength = 30 * time.Minute

	firstSlotHour = 9
	slotsPerDay   = 14 // 09:00 through 15:30
	minPerDay     = 8
	maxPerDay     = 15
	workdays      = 5
	idLength      = 9
	idAlphabet    = "0123456789abcdefghijklmnopqrstuvwxyz"
	notesChance   = 0.7
)

var patientNames = []string{
	"John Doe",
	"Jane Smith",
	"Robert Brown",
	"Maria Garcia",
	"James Wilson",
	"Sarah Davis",
	"Michael Miller",
	"Lisa Anderson",
	"William Taylor",
	"Emma Thomas",
	"David Martinez",
	"Jennifer Robinson",
	"Joseph White",
	"Margaret Lee",
	"Charles King",
	"Patricia Wright",
}

var appointmentNotes = []string{
	"Follow-up required",
	"Regular checkup",
	"Prescription renewal",
	"Lab results review",
	"Annual physical",
	"Post-surgery check",
}

var statusWeights = []struct {
	status models.Status
	weight float64
}{
	{models.StatusConfirmed, 0.7},
	{models.StatusPending, 0.2},
	{models.StatusCancelled, 0.1},
}

// Generator produces mock appointments. It is not safe for concurrent use;
// AppointmentStore serializes access to it.
type Generator struct {
	rnd       Rand
	doctorIDs []string
	loc       *time.Location
}

// NewGenerator builds a generator drawing doctors from doctorIDs and placing
// business hours in loc (UTC when nil).
func NewGenerator(rnd Rand, doctorIDs []string, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	if len(doctorIDs) == 0 {
		doctorIDs = NewDoctorDirectory(nil).IDs()
	}
	return &Generator{rnd: rnd, doctorIDs: doctorIDs, loc: loc}
}

func (g *Generator) Location() *time.Location {
	return g.loc
}

// NewID returns a short random base36 token. Uniqueness is only probabilistic.
func (g *Generator) NewID() string {
	var b strings.Builder
	b.Grow(idLength)
	for i := 0; i < idLength; i++ {
		b.WriteByte(idAlphabet[g.rnd.Intn(len(idAlphabet))])
	}
	return b.String()
}

// Week generates Monday through Friday of the week containing weekStart,
// concatenated in day order.
func (g *Generator) Week(weekStart time.Time) []models.Appointment {
	monday := utils.StartOfWeek(weekStart.In(g.loc))
	var out []models.Appointment
	for i := 0; i < workdays; i++ {
		out = append(out, g.Day(monday.AddDate(0, 0, i))...)
	}
	return out
}

// Day generates 8 to 15 appointments for the calendar day of date, capped at
// the number of slots. Slots are unique per day across all doctors.
func (g *Generator) Day(date time.Time) []models.Appointment {
	count := minPerDay + g.rnd.Intn(maxPerDay-minPerDay+1)
	if count > slotsPerDay {
		count = slotsPerDay
	}

	y, m, d := date.In(g.loc).Date()
	opening := time.Date(y, m, d, firstSlotHour, 0, 0, 0, g.loc)

	taken := make(map[int]bool, count)
	slots := make([]int, 0, count)
	byslot := make(map[int]models.Appointment, count)
	for len(slots) < count {
		slot := g.rnd.Intn(slotsPerDay)
		if taken[slot] {
			continue
		}
		taken[slot] = true
		slots = append(slots, slot)
		byslot[slot] = g.appointmentAt(opening.Add(time.Duration(slot) * SlotLength))
	}

	sort.Ints(slots)
	out := make([]models.Appointment, 0, count)
	for _, slot := range slots {
		out = append(out, byslot[slot])
	}
	return out
}

func (g *Generator) appointmentAt(start time.Time) models.Appointment {
	return models.Appointment{
		ID:          g.NewID(),
		PatientName: patientNames[g.rnd.Intn(len(patientNames))],
		DoctorID:    g.doctorIDs[g.rnd.Intn(len(g.doctorIDs))],
		StartTime:   utils.FormatISO(start),
		EndTime:     utils.FormatISO(start.Add(SlotLength)),
		Status:      g.status(),
		Notes:       g.notes(),
	}
}

func (g *Generator) status() models.Status {
	r := g.rnd.Float64()
	sum := 0.0
	for _, w := range statusWeights {
		sum += w.weight
		if r < sum {
			return w.status
		}
	}
	return models.StatusConfirmed
}

func (g *Generator) notes() string {
	if g.rnd.Float64() <= notesChance {
		return ""
	}
	return appointmentNotes[g.rnd.Intn(len(appointmentNotes))]
}
