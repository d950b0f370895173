// Package api is the HTTP surface of the site backend: content read
// endpoints for the presentation layer, the booking and application
// submission endpoints, and the health/metrics plumbing.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vipcaribbean/site-api/internal/application"
	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/booking"
	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/content"
	"github.com/vipcaribbean/site-api/internal/content/aboutus"
	"github.com/vipcaribbean/site-api/internal/faq"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/mailer"
	"github.com/vipcaribbean/site-api/internal/metrics"
)

const serviceVersion = "1.0.0"

// Router wires the handlers to their collaborators.
type Router struct {
	cfg      *config.Config
	logger   logger.Logger
	metrics  *metrics.Metrics
	content  *content.Adapter
	aboutUs  *aboutus.Parser
	faqs     *faq.Adapter
	backend  booking.Backend
	guard    application.Guard
	notifier *mailer.Notifier
	rules    booking.Rules
}

func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	met *metrics.Metrics,
	contentAdapter *content.Adapter,
	faqAdapter *faq.Adapter,
	backend booking.Backend,
	guard application.Guard,
	notifier *mailer.Notifier,
) *Router {
	return &Router{
		cfg:      cfg,
		logger:   log,
		metrics:  met,
		content:  contentAdapter,
		aboutUs:  aboutus.NewParser(aboutus.DefaultHeadings()),
		faqs:     faqAdapter,
		backend:  backend,
		guard:    guard,
		notifier: notifier,
		rules:    booking.NewRules(&cfg.Booking),
	}
}

// Engine builds the gin engine with middleware and every route registered.
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(corsMiddleware(r.cfg.Server.CORSOrigins))
	if r.metrics != nil {
		engine.Use(requestMetrics(r.metrics))
	}

	engine.GET("/health", r.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		apiGroup.POST("/citas", r.createAppointment)
		apiGroup.GET("/citas/disponibilidad", r.appointmentAvailability)
		apiGroup.POST("/aplicar", r.submitApplication)

		contenido := apiGroup.Group("/contenido")
		{
			contenido.GET("/empleos", r.listJobs)
			contenido.GET("/empleos/urgentes", r.listUrgentJobs)
			contenido.GET("/empleos/:slug", r.getJob)
			contenido.GET("/lineas-cruceros", r.listCruiseLines)
			contenido.GET("/eventos", r.listEvents)
			contenido.GET("/eventos/:slug", r.getEvent)
			contenido.GET("/blog", r.listBlogArticles)
			contenido.GET("/blog/:slug", r.getBlogArticle)
			contenido.GET("/faqs", r.listFaqs)
			contenido.GET("/quienes-somos", r.getAboutUs)
			contenido.GET("/candidatos", r.listCandidates)
			contenido.GET("/paginas/:slug", r.getPage)
		}
	}

	return engine
}

// Server wraps the engine in an http.Server with the configured timeouts.
func (r *Router) Server() *http.Server {
	return &http.Server{
		Addr:         r.cfg.Server.Address,
		Handler:      r.Engine(),
		ReadTimeout:  r.cfg.Server.ReadTimeout,
		WriteTimeout: r.cfg.Server.WriteTimeout,
	}
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "site-api",
		"version": serviceVersion,
	})
}

// newBookingNegotiator builds the per-request negotiator. Booking state
// never outlives one request; the backend owns all durable state.
func (r *Router) newBookingNegotiator() *booking.Negotiator {
	return booking.NewNegotiator(r.rules, r.backend, r.notifier, r.cfg.Booking.LockWindowHours, r.logger)
}

func (r *Router) newApplicationNegotiator() *application.Negotiator {
	return application.NewNegotiator(r.guard, r.notifier, r.logger)
}

var _ booking.Backend = (*availability.Client)(nil)
var _ application.Guard = (*availability.Client)(nil)
