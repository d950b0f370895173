package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/vipcaribbean/site-api/internal/application"
	"github.com/vipcaribbean/site-api/internal/availability"
	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/metrics"
)

// submitApplication accepts the multipart application form: nombre, email,
// telefono, optional mensaje, and the cv file.
func (r *Router) submitApplication(c *gin.Context) {
	file, header, err := c.Request.FormFile("cv")
	if err != nil {
		r.countApplication(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos incompletos"})
		return
	}
	defer file.Close()

	// One byte past the ceiling is enough for the validator to reject an
	// oversized upload without buffering the whole file.
	data, err := io.ReadAll(io.LimitReader(file, application.MaxCVSize+1))
	if err != nil {
		r.countApplication(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"message": "No se pudo leer el archivo"})
		return
	}

	sub := &application.Submission{
		Name:       c.PostForm("nombre"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("telefono"),
		Message:    c.PostForm("mensaje"),
		CVFilename: header.Filename,
		CVMimeType: cvMimeType(header.Header.Get("Content-Type"), data),
		CV:         data,
	}

	if err := r.newApplicationNegotiator().Submit(c.Request.Context(), sub); err != nil {
		r.rejectApplication(c, err)
		return
	}

	r.countApplication(metrics.OutcomeConfirmed)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// cvMimeType prefers the declared content type and falls back to content
// sniffing when the client sent none.
func cvMimeType(declared string, data []byte) string {
	if declared != "" {
		if i := strings.IndexByte(declared, ';'); i >= 0 {
			declared = declared[:i]
		}
		return strings.TrimSpace(declared)
	}
	return mimetype.Detect(data).String()
}

func (r *Router) rejectApplication(c *gin.Context, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		r.countApplication(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Reason})
		return
	}

	if errors.Is(err, availability.ErrWeeklyLimit) {
		r.countApplication(metrics.OutcomeWeeklyLimit)
		message := "Límite semanal alcanzado. Intenta nuevamente la próxima semana."
		var rejection *availability.Rejection
		if errors.As(err, &rejection) && rejection.Message != "" {
			message = rejection.Message
		}
		c.JSON(http.StatusTooManyRequests, gin.H{"message": message})
		return
	}

	if errors.Is(err, application.ErrGuardUnavailable) {
		r.countApplication(metrics.OutcomeRejected)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "No se pudo validar el límite semanal. Inténtalo más tarde.",
		})
		return
	}

	r.logger.Error("Application submission failed", logger.Error(err))
	r.countApplication(metrics.OutcomeRejected)
	c.JSON(http.StatusBadGateway, gin.H{"message": "No se pudo enviar la aplicación"})
}

func (r *Router) countApplication(outcome string) {
	if r.metrics != nil {
		r.metrics.AppsTotal.WithLabelValues(outcome).Inc()
	}
}
