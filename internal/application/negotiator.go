// Package application implements the job application submission flow: local
// CV and field validation, the backend weekly guard, and the notification
// dispatch with the CV attached. Local checks always run before any network
// call; a guard failure aborts with no partial side effects.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/mailer"
)

// MaxCVSize is the CV upload ceiling.
const MaxCVSize = 5 << 20 // 5 MiB

// allowedCVTypes is the CV mime allow-list: PDF, DOC and DOCX.
var allowedCVTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ErrGuardUnavailable reports that the weekly guard could not be reached.
// The flow fails closed: an unverifiable limit blocks the submission.
var ErrGuardUnavailable = errors.New("weekly application guard unavailable")

// ValidationError is a local field or file check failure. The reason is
// user-facing and names the specific problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Submission is one application attempt.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Message string

	CVFilename string
	CVMimeType string
	CV         []byte
}

// Guard is the backend weekly application limit. *availability.Client
// satisfies this.
type Guard interface {
	LogApplication(ctx context.Context, email string) error
}

// Notifier dispatches the application notifications.
type Notifier interface {
	ApplicationReceived(ctx context.Context, notice *mailer.ApplicationNotice) error
}

// Negotiator orchestrates one application submission.
type Negotiator struct {
	guard    Guard
	notifier Notifier
	logger   logger.Logger
}

func NewNegotiator(guard Guard, notifier Notifier, log logger.Logger) *Negotiator {
	return &Negotiator{guard: guard, notifier: notifier, logger: log}
}

// Validate runs every local check. It touches no network and reports the
// first specific reason found.
func (n *Negotiator) Validate(sub *Submission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return invalid("nombre", "el nombre es obligatorio")
	}
	if strings.TrimSpace(sub.Email) == "" {
		return invalid("email", "el email es obligatorio")
	}
	if strings.TrimSpace(sub.Phone) == "" {
		return invalid("telefono", "el teléfono es obligatorio")
	}
	if len(sub.CV) == 0 {
		return invalid("cv", "adjunta tu currículum")
	}
	if !allowedCVTypes[sub.CVMimeType] {
		return invalid("cv", "formato no permitido: usa PDF, DOC o DOCX")
	}
	if len(sub.CV) > MaxCVSize {
		return invalid("cv", "el archivo supera el límite de 5 MB")
	}
	return nil
}

// Submit validates locally, runs the weekly guard and dispatches the
// notifications. Guard rejection or unavailability aborts before any mail
// goes out, so a blocked submission has zero side effects beyond the
// guard's own log entry.
func (n *Negotiator) Submit(ctx context.Context, sub *Submission) error {
	if err := n.Validate(sub); err != nil {
		return err
	}

	email := strings.TrimSpace(sub.Email)
	if err := n.guard.LogApplication(ctx, email); err != nil {
		if errors.Is(err, availability.ErrWeeklyLimit) {
			n.logger.Info("Application blocked by weekly limit", logger.String("email", email))
			return err
		}
		return fmt.Errorf("%w: %v", ErrGuardUnavailable, err)
	}

	notice := &mailer.ApplicationNotice{
		Name:    strings.TrimSpace(sub.Name),
		Email:   email,
		Phone:   strings.TrimSpace(sub.Phone),
		Message: strings.TrimSpace(sub.Message),
		CV: mailer.Attachment{
			Filename: sub.CVFilename,
			Content:  sub.CV,
		},
	}
	if err := n.notifier.ApplicationReceived(ctx, notice); err != nil {
		return err
	}

	n.logger.Info("Application submitted", logger.String("email", email))
	return nil
}
