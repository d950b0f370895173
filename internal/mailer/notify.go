package mailer

import (
	"context"
	"fmt"

	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/metrics"
)

// TemplateSource provides the remote-configurable confirmation templates.
// A nil result means the template is unavailable and the built-in fallback
// applies. *availability.Client satisfies this.
type TemplateSource interface {
	CitaTemplate(ctx context.Context) *availability.EmailTemplate
	ApplyTemplate(ctx context.Context) *availability.EmailTemplate
}

// ApplicationNotice is the payload for application notifications.
type ApplicationNotice struct {
	Name    string
	Email   string
	Phone   string
	Message string
	CV      Attachment
}

// Notifier composes and dispatches the transactional notifications: an
// internal notice to the office plus a templated confirmation to the user.
type Notifier struct {
	sender        Sender
	templates     TemplateSource
	internalEmail string
	logger        logger.Logger
	metrics       *metrics.Metrics
}

// WithMetrics attaches the mail counters. Optional; a nil receiver setup
// simply skips counting.
func (n *Notifier) WithMetrics(m *metrics.Metrics) *Notifier {
	n.metrics = m
	return n
}

func (n *Notifier) countMail(kind string, err error) {
	if n.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	n.metrics.MailsSent.WithLabelValues(kind, result).Inc()
}

func NewNotifier(sender Sender, templates TemplateSource, cfg config.SMTPConfig, log logger.Logger) *Notifier {
	return &Notifier{
		sender:        sender,
		templates:     templates,
		internalEmail: cfg.InternalEmail,
		logger:        log,
	}
}

const fallbackCitaSubject = "✅ Confirmación de cita"

const fallbackCitaBody = `
<h2>Hola {{nombre}},</h2>
<p>Tu cita ha sido reservada exitosamente.</p>
<p><b>Fecha:</b> {{fecha}}</p>
<p>📞 Recuerda llamar 24 horas antes al <b>809-912-4201</b>.</p>
<br/>
<p>VIP Caribbean</p>`

// BookingConfirmed sends the internal booking notice and the user
// confirmation. The remote template wins when available; otherwise the
// built-in fallback goes out.
func (n *Notifier) BookingConfirmed(ctx context.Context, req *availability.AppointmentRequest) error {
	internal := &Message{
		FromName: "Citas Web",
		To:       n.internalEmail,
		Subject:  "📅 Nueva cita reservada",
		HTML: fmt.Sprintf(`<h3>Nueva cita reservada</h3>
<p><b>Nombre:</b> %s</p>
<p><b>Email:</b> %s</p>
<p><b>Teléfono:</b> %s</p>
<p><b>Fecha:</b> %s</p>
<p><b>Hora:</b> %s</p>`,
			Escape(req.Name), Escape(req.Email), Escape(req.Phone),
			Escape(req.Fecha), Escape(req.Time)),
	}
	if err := n.sender.Send(internal); err != nil {
		n.countMail("cita_interna", err)
		return fmt.Errorf("internal booking notice: %w", err)
	}
	n.countMail("cita_interna", nil)

	vars := map[string]string{
		"nombre":   req.Name,
		"email":    req.Email,
		"telefono": req.Phone,
		"fecha":    req.Fecha,
		"hora":     req.Time,
	}
	subject, body := fallbackCitaSubject, fallbackCitaBody
	if tpl := n.templates.CitaTemplate(ctx); tpl != nil {
		if tpl.Subject != "" {
			subject = tpl.Subject
		}
		if tpl.BodyHTML != "" {
			body = tpl.BodyHTML
		}
	}

	confirmation := &Message{
		To:      req.Email,
		Subject: RenderTemplate(subject, vars),
		HTML:    RenderTemplate(body, vars),
	}
	if err := n.sender.Send(confirmation); err != nil {
		n.countMail("cita_confirmacion", err)
		return fmt.Errorf("booking confirmation: %w", err)
	}
	n.countMail("cita_confirmacion", nil)

	n.logger.Info("Booking notifications dispatched", logger.String("to", req.Email))
	return nil
}

const fallbackApplySubject = "🌴 Gracias por su interés en VIP Caribbean República Dominicana"

const fallbackApplyBody = `
<div style="font-family: Arial, sans-serif; font-size: 14px; color: #222;">
	<p><strong>Estimado/a {{nombre}}:</strong></p>
	<p>Gracias por contactar a <strong>VIP Caribbean República Dominicana</strong>. Hemos recibido su currículum y le agradecemos su interés en formar parte de nuestro equipo.</p>
	<p>Para que podamos considerarle para un puesto, es imprescindible que cumpla con los requisitos esenciales y prepare los documentos para la pre-entrevista.</p>
	<h3>📝 Requisitos Esenciales</h3>
	<ul>
		<li>Ser ciudadano dominicano o poseer pasaporte dominicano.</li>
		<li>Tener al menos 21 años de edad.</li>
		<li>Dominio del idioma inglés (obligatorio).</li>
		<li>Experiencia previa en el sector (algunos puestos ofrecen capacitación).</li>
	</ul>
	<h3>📄 Documentos para la Pre-Entrevista</h3>
	<ul>
		<li>CV en inglés (PDF, con usuario de Microsoft Teams).</li>
		<li>Dos cartas de referencia.</li>
		<li>Dos copias a color del pasaporte (vigencia mínima 1 año).</li>
		<li>Certificado de antecedentes penales.</li>
		<li>Dos fotos 2x2.</li>
	</ul>
	<h3>📞 Cómo programar su pre-entrevista</h3>
	<p>Una vez tenga todos los documentos listos, llámenos a:</p>
	<p>📞 809-970-7669<br>📞 809-912-4201</p>
	<p><strong>Horario:</strong> Lunes a viernes, 9:00 a.m. a 1:00 p.m.</p>
	<br>
	<p>Atentamente,<br><strong>VIP Caribbean República Dominicana</strong></p>
</div>`

// ApplicationReceived sends the internal application notice with the CV
// attached, then the templated user confirmation.
func (n *Notifier) ApplicationReceived(ctx context.Context, app *ApplicationNotice) error {
	message := app.Message
	if message == "" {
		message = "—"
	} else {
		message = Escape(message)
	}

	internal := &Message{
		FromName: "Aplicaciones Web",
		To:       n.internalEmail,
		Subject:  "📄 Nueva aplicación recibida",
		HTML: fmt.Sprintf(`<h3>Nueva aplicación</h3>
<p><strong>Nombre:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Teléfono:</strong> %s</p>
<p><strong>Mensaje:</strong> %s</p>`,
			Escape(app.Name), Escape(app.Email), Escape(app.Phone), message),
		Attachments: []Attachment{app.CV},
	}
	if err := n.sender.Send(internal); err != nil {
		n.countMail("aplicacion_interna", err)
		return fmt.Errorf("internal application notice: %w", err)
	}
	n.countMail("aplicacion_interna", nil)

	vars := map[string]string{
		"nombre":   app.Name,
		"email":    app.Email,
		"telefono": app.Phone,
		"mensaje":  app.Message,
	}
	subject, body := fallbackApplySubject, fallbackApplyBody
	if tpl := n.templates.ApplyTemplate(ctx); tpl != nil {
		if tpl.Subject != "" {
			subject = tpl.Subject
		}
		if tpl.BodyHTML != "" {
			body = tpl.BodyHTML
		}
	}

	confirmation := &Message{
		To:      app.Email,
		Subject: RenderTemplate(subject, vars),
		HTML:    RenderTemplate(body, vars),
	}
	if err := n.sender.Send(confirmation); err != nil {
		n.countMail("aplicacion_confirmacion", err)
		return fmt.Errorf("application confirmation: %w", err)
	}
	n.countMail("aplicacion_confirmacion", nil)

	n.logger.Info("Application notifications dispatched", logger.String("to", app.Email))
	return nil
}
