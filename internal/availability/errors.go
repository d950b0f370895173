package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrWeeklyLimit marks a structured backend rejection for the one
	// booking or application per email per week rule.
	ErrWeeklyLimit = errors.New("weekly limit reached")

	// ErrSubmission marks any other backend write failure.
	ErrSubmission = errors.New("submission rejected")
)

// WeeklyLimitCode is the machine-readable code the backend attaches to
// weekly-limit rejections.
const WeeklyLimitCode = "EMAIL_WEEKLY_LIMIT"

// Rejection carries the backend's structured rejection payload so the HTTP
// layer can propagate the original status and message verbatim.
type Rejection struct {
	Status  int
	Code    string
	Message string
}

func (r *Rejection) Error() string {
	if r.Message != "" {
		return fmt.Sprintf("backend rejected request (%d %s): %s", r.Status, r.Code, r.Message)
	}
	return fmt.Sprintf("backend rejected request (%d %s)", r.Status, r.Code)
}

// Unwrap classifies the rejection: weekly-limit responses unwrap to
// ErrWeeklyLimit, everything else to ErrSubmission.
func (r *Rejection) Unwrap() error {
	if r.Status == 429 || r.Code == WeeklyLimitCode {
		return ErrWeeklyLimit
	}
	return ErrSubmission
}
