package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
)

func TestRenderTemplate(t *testing.T) {
	vars := map[string]string{"nombre": "Ana", "fecha": "18 de junio"}

	assert.Equal(t, "Hola Ana, tu cita es el 18 de junio.",
		RenderTemplate("Hola {{nombre}}, tu cita es el {{fecha}}.", vars))

	// Whitespace inside the braces is tolerated.
	assert.Equal(t, "Hola Ana", RenderTemplate("Hola {{ nombre }}", vars))

	// Unknown placeholders render empty.
	assert.Equal(t, "Hola ", RenderTemplate("Hola {{desconocido}}", vars))

	// No placeholders: passthrough.
	assert.Equal(t, "sin variables", RenderTemplate("sin variables", vars))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Ana&lt;/b&gt;", Escape("<b>Ana</b>"))
}

type recordingSender struct {
	sent []*Message
	err  error
}

func (r *recordingSender) Send(msg *Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type staticTemplates struct {
	cita  *availability.EmailTemplate
	apply *availability.EmailTemplate
}

func (s *staticTemplates) CitaTemplate(context.Context) *availability.EmailTemplate {
	return s.cita
}

func (s *staticTemplates) ApplyTemplate(context.Context) *availability.EmailTemplate {
	return s.apply
}

func testNotifier(sender Sender, templates TemplateSource) *Notifier {
	return NewNotifier(sender, templates, config.SMTPConfig{
		InternalEmail: "oficina@example.com",
	}, logger.NewNop())
}

var testAppointment = &availability.AppointmentRequest{
	Name:    "Ana <script>",
	Email:   "ana@example.com",
	Phone:   "809-555-0100",
	Fecha:   "miércoles 18 de junio",
	Time:    "9:05 AM",
	DateISO: "2025-06-18",
}

func TestBookingConfirmedWithRemoteTemplate(t *testing.T) {
	sender := &recordingSender{}
	notifier := testNotifier(sender, &staticTemplates{
		cita: &availability.EmailTemplate{
			Subject:  "Cita confirmada para {{nombre}}",
			BodyHTML: "<p>Te esperamos el {{fecha}} a las {{hora}}.</p>",
		},
	})

	require.NoError(t, notifier.BookingConfirmed(context.Background(), testAppointment))
	require.Len(t, sender.sent, 2)

	internal := sender.sent[0]
	assert.Equal(t, "oficina@example.com", internal.To)
	assert.Equal(t, "📅 Nueva cita reservada", internal.Subject)
	// User input is escaped in the internal notice.
	assert.Contains(t, internal.HTML, "Ana &lt;script&gt;")

	confirmation := sender.sent[1]
	assert.Equal(t, "ana@example.com", confirmation.To)
	assert.Equal(t, "Cita confirmada para Ana <script>", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "miércoles 18 de junio")
	assert.Contains(t, confirmation.HTML, "9:05 AM")
}

func TestBookingConfirmedFallbackTemplate(t *testing.T) {
	sender := &recordingSender{}
	notifier := testNotifier(sender, &staticTemplates{})

	require.NoError(t, notifier.BookingConfirmed(context.Background(), testAppointment))
	require.Len(t, sender.sent, 2)

	confirmation := sender.sent[1]
	assert.Equal(t, fallbackCitaSubject, confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "miércoles 18 de junio")
	assert.Contains(t, confirmation.HTML, "809-912-4201")
}

func TestBookingConfirmedSenderFailure(t *testing.T) {
	notifier := testNotifier(&recordingSender{err: assert.AnError}, &staticTemplates{})
	require.Error(t, notifier.BookingConfirmed(context.Background(), testAppointment))
}

func TestApplicationReceived(t *testing.T) {
	sender := &recordingSender{}
	notifier := testNotifier(sender, &staticTemplates{})

	notice := &ApplicationNotice{
		Name:  "Luis",
		Email: "luis@example.com",
		Phone: "809-555-0200",
		CV:    Attachment{Filename: "cv.pdf", Content: []byte("%PDF-1.4")},
	}
	require.NoError(t, notifier.ApplicationReceived(context.Background(), notice))
	require.Len(t, sender.sent, 2)

	internal := sender.sent[0]
	assert.Equal(t, "📄 Nueva aplicación recibida", internal.Subject)
	require.Len(t, internal.Attachments, 1)
	assert.Equal(t, "cv.pdf", internal.Attachments[0].Filename)
	// Empty optional message renders as a dash.
	assert.Contains(t, internal.HTML, "—")

	confirmation := sender.sent[1]
	assert.Equal(t, fallbackApplySubject, confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "Estimado/a Luis")
	assert.Empty(t, confirmation.Attachments)
}
