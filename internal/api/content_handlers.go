package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vipcaribbean/site-api/internal/content"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/wordpress"
)

// respondContent finishes a read request: payload on success, 404 for an
// absent slug, 502 degraded error body when the content source is down.
// Read failures stay recoverable; the presentation layer shows an error
// panel with a retry action instead of crashing.
func (r *Router) respondContent(c *gin.Context, contentType string, payload any, err error) {
	if err == nil {
		if r.metrics != nil {
			r.metrics.ContentFetches.WithLabelValues(contentType, "ok").Inc()
		}
		c.JSON(http.StatusOK, payload)
		return
	}

	if errors.Is(err, wordpress.ErrNotFound) {
		if r.metrics != nil {
			r.metrics.ContentFetches.WithLabelValues(contentType, "not_found").Inc()
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Contenido no encontrado"})
		return
	}

	r.logger.Error("Content fetch failed",
		logger.String("content_type", contentType),
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)
	if r.metrics != nil {
		r.metrics.ContentFetches.WithLabelValues(contentType, "error").Inc()
	}
	c.JSON(http.StatusBadGateway, gin.H{"message": "No se pudo cargar el contenido"})
}

func (r *Router) listJobs(c *gin.Context) {
	jobs, err := r.content.Jobs(c.Request.Context())
	r.respondContent(c, wordpress.TypeEmpleos, jobs, err)
}

func (r *Router) listUrgentJobs(c *gin.Context) {
	jobs, err := r.content.UrgentJobs(c.Request.Context())
	r.respondContent(c, wordpress.TypeEmpleos, jobs, err)
}

func (r *Router) getJob(c *gin.Context) {
	job, err := r.content.JobBySlug(c.Request.Context(), c.Param("slug"))
	r.respondContent(c, wordpress.TypeEmpleos, job, err)
}

func (r *Router) listCruiseLines(c *gin.Context) {
	lines, err := r.content.CruiseLines(c.Request.Context())
	r.respondContent(c, wordpress.TypeLineasCruceros, lines, err)
}

func (r *Router) listEvents(c *gin.Context) {
	events, err := r.content.Events(c.Request.Context())
	r.respondContent(c, wordpress.TypeEventos, events, err)
}

func (r *Router) getEvent(c *gin.Context) {
	event, err := r.content.EventBySlug(c.Request.Context(), c.Param("slug"))
	r.respondContent(c, wordpress.TypeEventos, event, err)
}

func (r *Router) listBlogArticles(c *gin.Context) {
	articles, err := r.content.BlogArticles(c.Request.Context())
	r.respondContent(c, wordpress.TypeBlogArticles, articles, err)
}

func (r *Router) getBlogArticle(c *gin.Context) {
	article, err := r.content.BlogArticleBySlug(c.Request.Context(), c.Param("slug"))
	r.respondContent(c, wordpress.TypeBlogArticles, article, err)
}

func (r *Router) listFaqs(c *gin.Context) {
	categories, err := r.faqs.Categories(c.Request.Context())
	r.respondContent(c, "faqs", categories, err)
}

// getAboutUs fetches the quienes-somos page and extracts its structured
// sections from the rendered body.
func (r *Router) getAboutUs(c *gin.Context) {
	page, err := r.content.PageBySlug(c.Request.Context(), "quienes-somos")
	if err != nil {
		r.respondContent(c, wordpress.TypePages, nil, err)
		return
	}
	data := r.aboutUs.Parse(page.Content, page.Title)
	r.respondContent(c, wordpress.TypePages, data, nil)
}

func (r *Router) getPage(c *gin.Context) {
	page, err := r.content.PageBySlug(c.Request.Context(), c.Param("slug"))
	r.respondContent(c, wordpress.TypePages, page, err)
}

// listCandidates supports the interview-status board: optional month, year
// and estado filters.
func (r *Router) listCandidates(c *gin.Context) {
	filter := content.CandidateFilter{Status: c.Query("estado")}
	if v, err := strconv.Atoi(c.Query("mes")); err == nil {
		filter.Month = v
	}
	if v, err := strconv.Atoi(c.Query("ano")); err == nil {
		filter.Year = v
	}

	candidates, err := r.content.Candidates(c.Request.Context(), filter)
	r.respondContent(c, wordpress.TypeCandidatos, candidates, err)
}
