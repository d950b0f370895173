// Package availability talks to the booking plugin's custom REST namespace
// ({domain}/wp-json/vipc/v1): blocked dates, locked time slots, appointment
// persistence, the weekly application guard and the remote email templates.
//
// Read paths fail soft: on any network or parse error they return an empty
// result plus the error, so callers can surface an "unknown" state instead
// of blocking. The backend stays the final authority; an empty blocked list
// never means "verified available".
package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
)

// Client calls the vipc/v1 namespace.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
	now     func() time.Time
}

func NewClient(cfg *config.WordPressConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.Domain + "/wp-json/vipc/v1",
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  log,
		now:     time.Now,
	}
}

// Snapshot is one consistent read of the booking constraints. Re-fetching
// with no backend-side change yields an identical snapshot apart from
// FetchedAt.
type Snapshot struct {
	BlockedDates    []string  `json:"blockedDates"`
	LockedTimeSlots []string  `json:"lockedTimeSlots"`
	FetchedAt       time.Time `json:"fetchedAt"`
}

// AppointmentRequest is the payload persisted by the backend.
type AppointmentRequest struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Fecha   string `json:"fecha"`
	DateISO string `json:"dateISO"`
	Time    string `json:"time"`
}

// EmailTemplate is a remote-configurable notification template.
type EmailTemplate struct {
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

// BlockedDates returns the ISO dates the backend has marked fully
// unavailable. On failure the slice is empty and the error is returned for
// the caller to surface as an unknown state.
func (c *Client) BlockedDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.getJSON(ctx, c.baseURL+"/blocked-dates", &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// LockedTimes returns the time slots locked within the rolling window.
func (c *Client) LockedTimes(ctx context.Context, windowHours int) ([]string, error) {
	var times []string
	endpoint := c.baseURL + "/locked-times?hours=" + strconv.Itoa(windowHours)
	if err := c.getJSON(ctx, endpoint, &times); err != nil {
		return nil, err
	}
	return times, nil
}

// FetchSnapshot bundles both constraint reads. A partial failure still
// returns what was fetched; the error reports the first failure so the
// caller knows the snapshot may be incomplete.
func (c *Client) FetchSnapshot(ctx context.Context, windowHours int) (Snapshot, error) {
	snapshot := Snapshot{FetchedAt: c.now()}

	blocked, blockedErr := c.BlockedDates(ctx)
	if blockedErr == nil {
		snapshot.BlockedDates = blocked
	}

	locked, lockedErr := c.LockedTimes(ctx, windowHours)
	if lockedErr == nil {
		snapshot.LockedTimeSlots = locked
	}

	if blockedErr != nil {
		return snapshot, blockedErr
	}
	return snapshot, lockedErr
}

// CreateAppointment persists the appointment. Non-2xx responses decode the
// backend's structured rejection; a 429 or EMAIL_WEEKLY_LIMIT code surfaces
// as ErrWeeklyLimit through the returned *Rejection.
func (c *Client) CreateAppointment(ctx context.Context, req *AppointmentRequest) error {
	return c.postJSON(ctx, c.baseURL+"/appointments", req)
}

// LogApplication runs the weekly application guard for the given email. The
// backend records the attempt and answers 429 when the address already
// applied this week. Callers must treat any error as a blocking failure.
func (c *Client) LogApplication(ctx context.Context, email string) error {
	return c.postJSON(ctx, c.baseURL+"/apply/log", map[string]string{"email": email})
}

// CitaTemplate fetches the remote appointment confirmation template. Soft
// fails to nil so callers fall back to the built-in template.
func (c *Client) CitaTemplate(ctx context.Context) *EmailTemplate {
	return c.template(ctx, "email-cita-template")
}

// ApplyTemplate fetches the remote application confirmation template.
func (c *Client) ApplyTemplate(ctx context.Context) *EmailTemplate {
	return c.template(ctx, "email-apply-template")
}

func (c *Client) template(ctx context.Context, path string) *EmailTemplate {
	// Cache-busting param: the backend sits behind an aggressive page cache
	// and template edits must take effect immediately.
	endpoint := fmt.Sprintf("%s/%s?cb=%d", c.baseURL, path, c.now().UnixMilli())

	var tpl EmailTemplate
	if err := c.getJSON(ctx, endpoint, &tpl); err != nil {
		c.logger.Warn("Remote email template unavailable, using fallback",
			logger.String("template", path),
			logger.Error(err),
		)
		return nil
	}
	if tpl.Subject == "" && tpl.BodyHTML == "" {
		return nil
	}
	return &tpl
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Availability request failed",
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		return fmt.Errorf("availability fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("availability fetch: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("availability fetch: decode: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Availability write failed",
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		return fmt.Errorf("availability write: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	rejection := &Rejection{Status: resp.StatusCode}
	var decoded struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil {
		rejection.Message = decoded.Message
		rejection.Code = decoded.Code
	}
	return rejection
}
