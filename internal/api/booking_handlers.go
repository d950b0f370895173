package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/booking"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/metrics"
)

// appointmentPayload mirrors the booking form.
type appointmentPayload struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Fecha   string `json:"fecha"`
	DateISO string `json:"dateISO"`
	Time    string `json:"time"`
}

func (p *appointmentPayload) complete() bool {
	return p.Name != "" && p.Email != "" && p.Phone != "" &&
		p.Fecha != "" && p.DateISO != "" && p.Time != ""
}

// createAppointment drives one booking attempt through the negotiator. The
// backend's HTTP status propagates verbatim on structured rejections, so a
// weekly-limit 429 reaches the caller as a 429.
func (r *Router) createAppointment(c *gin.Context) {
	var payload appointmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil || !payload.complete() {
		r.countBooking(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos incompletos"})
		return
	}

	ctx := c.Request.Context()
	negotiator := r.newBookingNegotiator()

	// A failed refresh is not fatal; Submit re-fetches and the backend
	// stays the final authority.
	if err := negotiator.Refresh(ctx); err != nil {
		r.logger.Warn("Booking snapshot refresh failed", logger.Error(err))
	}

	if err := negotiator.SelectDate(payload.DateISO); err != nil {
		r.rejectBooking(c, err)
		return
	}
	if err := negotiator.SelectTime(payload.Time); err != nil {
		r.rejectBooking(c, err)
		return
	}

	err := negotiator.Submit(ctx, booking.Contact{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
		Fecha: payload.Fecha,
	})
	if err != nil {
		r.rejectBooking(c, err)
		return
	}

	r.countBooking(metrics.OutcomeConfirmed)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// rejectBooking maps negotiation failures onto HTTP responses: local rule
// violations are 400s, structured backend rejections keep their original
// status and body, anything else is a 502.
func (r *Router) rejectBooking(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		r.countBooking(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Reason})
		return
	}

	var rejection *availability.Rejection
	if errors.As(err, &rejection) {
		outcome := metrics.OutcomeRejected
		if errors.Is(err, availability.ErrWeeklyLimit) {
			outcome = metrics.OutcomeWeeklyLimit
		}
		r.countBooking(outcome)

		body := gin.H{"message": rejection.Message}
		if body["message"] == "" {
			body["message"] = "No se pudo reservar la cita"
		}
		if rejection.Code != "" {
			body["code"] = rejection.Code
		}
		c.JSON(rejection.Status, body)
		return
	}

	r.logger.Error("Appointment submission failed", logger.Error(err))
	r.countBooking(metrics.OutcomeRejected)
	c.JSON(http.StatusBadGateway, gin.H{"message": "No se pudo reservar la cita"})
}

func (r *Router) countBooking(outcome string) {
	if r.metrics != nil {
		r.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}

// appointmentAvailability returns everything the scheduler UI needs: the
// constraint snapshot, the single permitted date and the candidate slots.
// A snapshot failure degrades to empty lists with a flag; it never blocks.
func (r *Router) appointmentAvailability(c *gin.Context) {
	snapshot, err := r.backend.FetchSnapshot(c.Request.Context(), r.cfg.Booking.LockWindowHours)
	degraded := err != nil
	if degraded {
		r.logger.Warn("Availability snapshot degraded", logger.Error(err))
	}

	blocked := snapshot.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}
	locked := snapshot.LockedTimeSlots
	if locked == nil {
		locked = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"permittedDate":   r.rules.PermittedDate().Format(booking.ISODate),
		"blockedDates":    blocked,
		"lockedTimeSlots": locked,
		"timeSlots":       r.rules.TimeSlots(),
		"fetchedAt":       snapshot.FetchedAt,
		"degraded":        degraded,
	})
}
