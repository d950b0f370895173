package booking

import (
	"context"
	"errors"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/logger"
)

// State is the negotiator's position in the booking flow.
type State int

const (
	StateIdle State = iota
	StateDateSelected
	StateTimeSelected
	StateSubmitting
	StateConfirmed
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDateSelected:
		return "DATE_SELECTED"
	case StateTimeSelected:
		return "TIME_SELECTED"
	case StateSubmitting:
		return "SUBMITTING"
	case StateConfirmed:
		return "CONFIRMED"
	case StateRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Backend is the authoritative availability and persistence boundary.
type Backend interface {
	FetchSnapshot(ctx context.Context, windowHours int) (availability.Snapshot, error)
	CreateAppointment(ctx context.Context, req *availability.AppointmentRequest) error
}

// Notifier dispatches the post-persistence notifications.
type Notifier interface {
	BookingConfirmed(ctx context.Context, req *availability.AppointmentRequest) error
}

// Contact identifies the person booking the appointment. Fecha is the
// human-readable date label shown in the confirmation emails.
type Contact struct {
	Name  string
	Email string
	Phone string
	Fecha string
}

// Negotiator drives one booking attempt through the state machine. It is
// not safe for concurrent use; each attempt gets its own instance.
type Negotiator struct {
	rules           Rules
	backend         Backend
	notifier        Notifier
	logger          logger.Logger
	lockWindowHours int

	state    State
	dateISO  string
	timeSlot string
	snapshot availability.Snapshot
}

func NewNegotiator(rules Rules, backend Backend, notifier Notifier, lockWindowHours int, log logger.Logger) *Negotiator {
	return &Negotiator{
		rules:           rules,
		backend:         backend,
		notifier:        notifier,
		logger:          log,
		lockWindowHours: lockWindowHours,
	}
}

func (n *Negotiator) State() State    { return n.state }
func (n *Negotiator) DateISO() string { return n.dateISO }
func (n *Negotiator) Time() string    { return n.timeSlot }

// Refresh pulls a fresh constraint snapshot. A fetch failure keeps the
// previous snapshot and is reported for the caller to surface as an
// unknown state; it never blocks the flow outright because submission
// re-checks against the backend anyway.
func (n *Negotiator) Refresh(ctx context.Context) error {
	snapshot, err := n.backend.FetchSnapshot(ctx, n.lockWindowHours)
	if err != nil {
		n.logger.Warn("Constraint snapshot unavailable", logger.Error(err))
		return err
	}
	n.snapshot = snapshot
	return nil
}

// SelectDate validates the date against the current snapshot. A violation
// keeps the state at IDLE; a blocked date additionally clears any held time
// selection.
func (n *Negotiator) SelectDate(dateISO string) error {
	if err := n.rules.ValidateDate(dateISO, n.snapshot); err != nil {
		n.state = StateIdle
		n.dateISO = ""
		n.timeSlot = ""
		return err
	}
	n.dateISO = dateISO
	if n.state < StateDateSelected {
		n.state = StateDateSelected
	}
	return nil
}

// SelectTime validates the slot against the candidate set and the lock
// snapshot. Requires a selected date.
func (n *Negotiator) SelectTime(slot string) error {
	if n.state < StateDateSelected {
		return invalid("time", "selecciona primero una fecha")
	}
	if err := n.rules.ValidateTime(slot, n.snapshot); err != nil {
		return err
	}
	n.timeSlot = slot
	n.state = StateTimeSelected
	return nil
}

// Submit re-validates date and time against a fresh snapshot, persists the
// appointment and, only after the backend confirms, dispatches the
// notifications. Any failure returns the state to TIME_SELECTED with the
// selections kept so the caller can retry. A negotiator that already
// reached CONFIRMED stays confirmed; late duplicate submissions are no-ops.
func (n *Negotiator) Submit(ctx context.Context, contact Contact) error {
	if n.state == StateConfirmed {
		return nil
	}
	if n.state != StateTimeSelected {
		return invalid("cita", "selecciona fecha y hora antes de confirmar")
	}

	n.state = StateSubmitting

	// Staleness defense: the held snapshot may be arbitrarily old, so both
	// predicates run again against the latest one before the write.
	if snapshot, err := n.backend.FetchSnapshot(ctx, n.lockWindowHours); err == nil {
		n.snapshot = snapshot
	}
	if err := n.rules.ValidateDate(n.dateISO, n.snapshot); err != nil {
		n.state = StateTimeSelected
		return err
	}
	if err := n.rules.ValidateTime(n.timeSlot, n.snapshot); err != nil {
		n.state = StateTimeSelected
		return err
	}

	req := &availability.AppointmentRequest{
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
		Fecha:   contact.Fecha,
		DateISO: n.dateISO,
		Time:    n.timeSlot,
	}

	if err := n.backend.CreateAppointment(ctx, req); err != nil {
		n.state = StateTimeSelected
		if errors.Is(err, availability.ErrWeeklyLimit) {
			n.logger.Info("Booking rejected by weekly limit",
				logger.String("email", contact.Email),
			)
		}
		return err
	}

	n.state = StateConfirmed
	n.logger.Info("Appointment confirmed",
		logger.String("date", n.dateISO),
		logger.String("time", n.timeSlot),
	)

	if err := n.notifier.BookingConfirmed(ctx, req); err != nil {
		// The booking is already persisted; a notification failure must not
		// undo a confirmed state.
		n.logger.Error("Booking confirmation dispatch failed", logger.Error(err))
	}
	return nil
}
