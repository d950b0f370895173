// Package app wires the service together: config, logger, metrics, clients,
// negotiators and the HTTP router, in one direction with no globals.
package app

import (
	"fmt"
	"net/http"

	"github.com/vipcaribbean/site-api/internal/api"
	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/config"
	"github.com/vipcaribbean/site-api/internal/content"
	"github.com/vipcaribbean/site-api/internal/faq"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/mailer"
	"github.com/vipcaribbean/site-api/internal/metrics"
	"github.com/vipcaribbean/site-api/internal/wordpress"
)

// App holds the constructed service.
type App struct {
	Config *config.Config
	Logger logger.Logger
	Router *api.Router
}

// New loads configuration and builds the full dependency graph.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	met := metrics.New(nil)

	wp := wordpress.NewClient(&cfg.WordPress, log)
	avail := availability.NewClient(&cfg.WordPress, log)
	notifier := mailer.NewNotifier(mailer.New(cfg.SMTP), avail, cfg.SMTP, log).WithMetrics(met)

	router := api.NewRouter(
		cfg,
		log,
		met,
		content.NewAdapter(wp, log),
		faq.NewAdapter(wp, faq.SourceFlattened, log),
		avail,
		avail,
		notifier,
	)

	return &App{
		Config: cfg,
		Logger: log,
		Router: router,
	}, nil
}

// Server returns the configured HTTP server.
func (a *App) Server() *http.Server {
	return a.Router.Server()
}
