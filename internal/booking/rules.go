// Package booking implements the appointment negotiation flow: a single
// permitted weekday, a fixed daily slot window, backend-blocked dates and
// time locks, and a state machine that re-validates everything against a
// fresh snapshot before persisting.
//
// The same rule set backs both the optimistic pre-validation and the
// authoritative re-check at submission time, so the two passes cannot
// drift apart.
package booking

import (
	"time"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/config"
)

// ISODate is the wire format for appointment dates.
const ISODate = "2006-01-02"

// slotFormat renders times as "9:05 AM", matching the backend's locked-time
// strings.
const slotFormat = "3:04 PM"

// Rules holds the booking constraints. Now is injectable for tests.
type Rules struct {
	Weekday      time.Weekday
	startMinutes int
	endMinutes   int
	SlotInterval time.Duration
	Now          func() time.Time
}

func NewRules(cfg *config.BookingConfig) Rules {
	return Rules{
		Weekday:      cfg.Weekday,
		startMinutes: config.ClockMinutes(cfg.DayStart),
		endMinutes:   config.ClockMinutes(cfg.DayEnd),
		SlotInterval: cfg.SlotInterval,
		Now:          time.Now,
	}
}

// today returns the current date truncated to midnight in local time.
func (r Rules) today() time.Time {
	now := r.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// NextPermittedDate returns the next occurrence of the permitted weekday
// strictly after today. When today already is that weekday the date rolls a
// full week, so same-day bookings are never offered.
func (r Rules) NextPermittedDate(today time.Time) time.Time {
	days := int(r.Weekday-today.Weekday()+7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// PermittedDate returns the currently offered appointment date.
func (r Rules) PermittedDate() time.Time {
	return r.NextPermittedDate(r.today())
}

// ValidateDate checks a candidate ISO date against the full rule set: it
// must parse, fall strictly after today, match the single currently
// permitted occurrence of the fixed weekday, and not be blocked in the
// snapshot.
func (r Rules) ValidateDate(dateISO string, snapshot availability.Snapshot) error {
	date, err := time.ParseInLocation(ISODate, dateISO, r.today().Location())
	if err != nil {
		return invalid("fecha", "formato de fecha inválido")
	}

	today := r.today()
	if !date.After(today) {
		return invalid("fecha", "la fecha debe ser posterior a hoy")
	}
	if !date.Equal(r.NextPermittedDate(today)) {
		return invalid("fecha", "solo está disponible la próxima fecha habilitada")
	}
	for _, blocked := range snapshot.BlockedDates {
		if blocked == dateISO {
			return invalid("fecha", "la fecha seleccionada no está disponible")
		}
	}
	return nil
}

// TimeSlots generates the fixed candidate set: every slot from the window
// start through the window end inclusive, at the configured interval.
func (r Rules) TimeSlots() []string {
	step := int(r.SlotInterval.Minutes())
	if step <= 0 {
		step = 5
	}

	var slots []string
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := r.startMinutes; m <= r.endMinutes; m += step {
		slots = append(slots, base.Add(time.Duration(m)*time.Minute).Format(slotFormat))
	}
	return slots
}

// ValidateTime checks that the slot belongs to the candidate set and is not
// locked in the snapshot.
func (r Rules) ValidateTime(slot string, snapshot availability.Snapshot) error {
	known := false
	for _, candidate := range r.TimeSlots() {
		if candidate == slot {
			known = true
			break
		}
	}
	if !known {
		return invalid("time", "hora fuera del horario de citas")
	}
	for _, locked := range snapshot.LockedTimeSlots {
		if locked == slot {
			return invalid("time", "esa hora ya fue reservada")
		}
	}
	return nil
}
