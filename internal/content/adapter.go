package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/wordpress"
)

// Adapter normalizes raw WordPress records into the typed shapes the
// presentation layer consumes. It holds no state beyond its client; every
// fetch produces fresh records.
type Adapter struct {
	wp     *wordpress.Client
	logger logger.Logger
}

func NewAdapter(wp *wordpress.Client, log logger.Logger) *Adapter {
	return &Adapter{wp: wp, logger: log}
}

// PageBySlug fetches and normalizes a page.
func (a *Adapter) PageBySlug(ctx context.Context, slug string) (*Page, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypePages, slug)
	if err != nil {
		return nil, err
	}
	return &Page{
		ID:      rec.ID,
		Slug:    rec.Slug,
		Title:   rec.Title.Rendered,
		Content: rec.Content.Rendered,
		ACF:     rec.ACF,
	}, nil
}

// PostBySlug fetches and normalizes a blog post (the legacy posts type).
func (a *Adapter) PostBySlug(ctx context.Context, slug string) (*Page, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypePosts, slug)
	if err != nil {
		return nil, err
	}
	return &Page{
		ID:      rec.ID,
		Slug:    rec.Slug,
		Title:   rec.Title.Rendered,
		Content: rec.Content.Rendered,
	}, nil
}

// Jobs returns all empleos.
func (a *Adapter) Jobs(ctx context.Context) ([]JobListing, error) {
	records, err := a.wp.List(ctx, wordpress.TypeEmpleos, 0)
	if err != nil {
		return nil, err
	}
	jobs := make([]JobListing, 0, len(records))
	for i := range records {
		jobs = append(jobs, mapJob(&records[i]))
	}
	return jobs, nil
}

// UrgentJobs returns the empleos flagged urgente.
func (a *Adapter) UrgentJobs(ctx context.Context) ([]JobListing, error) {
	jobs, err := a.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	urgent := jobs[:0]
	for _, job := range jobs {
		if job.Urgent {
			urgent = append(urgent, job)
		}
	}
	return urgent, nil
}

// JobBySlug fetches and normalizes a single empleo.
func (a *Adapter) JobBySlug(ctx context.Context, slug string) (*JobListing, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypeEmpleos, slug)
	if err != nil {
		return nil, err
	}
	job := mapJob(rec)
	return &job, nil
}

// CruiseLines returns the partner cruise lines.
func (a *Adapter) CruiseLines(ctx context.Context) ([]CruiseLine, error) {
	records, err := a.wp.List(ctx, wordpress.TypeLineasCruceros, 0)
	if err != nil {
		return nil, err
	}
	lines := make([]CruiseLine, 0, len(records))
	for i := range records {
		rec := &records[i]
		logo := rec.ACFString("logo")
		if logo == "" {
			logo = rec.FeaturedImage()
		}
		lines = append(lines, CruiseLine{
			ID:   rec.ID,
			Name: rec.Title.Rendered,
			Logo: logo,
		})
	}
	return lines, nil
}

// Events returns all eventos as gallery summaries, with media counts derived
// from the body HTML.
func (a *Adapter) Events(ctx context.Context) ([]EventSummary, error) {
	records, err := a.wp.List(ctx, wordpress.TypeEventos, 0)
	if err != nil {
		return nil, err
	}
	events := make([]EventSummary, 0, len(records))
	for i := range records {
		events = append(events, mapEventSummary(&records[i]))
	}
	return events, nil
}

// EventBySlug returns the evento with its full body and extracted media.
func (a *Adapter) EventBySlug(ctx context.Context, slug string) (*EventDetail, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypeEventos, slug)
	if err != nil {
		return nil, err
	}
	images, videos := ExtractMedia(rec.Content.Rendered)
	return &EventDetail{
		EventSummary: mapEventSummary(rec),
		Content:      rec.Content.Rendered,
		Images:       images,
		Videos:       videos,
	}, nil
}

// BlogArticles returns all articulo_blog records.
func (a *Adapter) BlogArticles(ctx context.Context) ([]BlogArticle, error) {
	records, err := a.wp.List(ctx, wordpress.TypeBlogArticles, 0)
	if err != nil {
		return nil, err
	}
	articles := make([]BlogArticle, 0, len(records))
	for i := range records {
		articles = append(articles, mapBlogArticle(&records[i]))
	}
	return articles, nil
}

// BlogArticleBySlug fetches and normalizes a single blog article.
func (a *Adapter) BlogArticleBySlug(ctx context.Context, slug string) (*BlogArticle, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypeBlogArticles, slug)
	if err != nil {
		return nil, err
	}
	article := mapBlogArticle(rec)
	return &article, nil
}

// Candidates returns every candidato matching the filter. The collection is
// unbounded, so it pages through the backend rather than taking one page.
func (a *Adapter) Candidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error) {
	records, err := a.wp.ListAll(ctx, wordpress.TypeCandidatos)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(records))
	for i := range records {
		candidate, err := mapCandidate(&records[i])
		if err != nil {
			a.logger.Warn("Skipping candidate with malformed interview date",
				logger.Int("id", records[i].ID),
				logger.Error(err),
			)
			continue
		}
		if filter.Matches(candidate) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

func mapJob(rec *wordpress.Record) JobListing {
	job := JobListing{
		ID:               rec.ID,
		Slug:             rec.Slug,
		Title:            rec.Title.Rendered,
		Description:      rec.Content.Rendered,
		Logo:             rec.ACFString("logo_del_empleo"),
		ContractDuration: rec.ACFString("duracion_del_contrato"),
		Urgent:           rec.ACFBool("urgente"),
	}

	if term := rec.FirstTerm(); term != nil {
		job.Category = term.Name
	}

	if cl := rec.ACFMap("cruise_line"); cl != nil {
		ref := CruiseLineRef{}
		if name, ok := cl["post_title"].(string); ok {
			ref.Name = name
		}
		if link, ok := cl["guid"].(string); ok {
			ref.Link = link
		}
		if acf, ok := cl["acf"].(map[string]any); ok {
			if logo, ok := acf["logo"].(string); ok {
				ref.Logo = logo
			}
		}
		if ref.Name != "" || ref.Logo != "" || ref.Link != "" {
			job.CruiseLine = &ref
		}
	}

	return job
}

func mapEventSummary(rec *wordpress.Record) EventSummary {
	body := rec.Content.Rendered
	images, videos := ExtractMedia(body)

	return EventSummary{
		ID:               rec.ID,
		Slug:             rec.Slug,
		Title:            rec.Title.Rendered,
		ShortDescription: rec.ACFString("descripcion_corta"),
		Date:             rec.ACFString("fecha_del_evento"),
		Place:            rec.ACFString("lugar_evento"),
		CoverImage:       FirstImage(body),
		PhotoCount:       len(images),
		VideoCount:       len(videos),
	}
}

func mapBlogArticle(rec *wordpress.Record) BlogArticle {
	article := BlogArticle{
		ID:            rec.ID,
		Slug:          rec.Slug,
		Title:         rec.Title.Rendered,
		Excerpt:       rec.ACFString("descripcion_corta"),
		Date:          rec.Date,
		Image:         rec.FeaturedImage(),
		Category:      UncategorizedSlug,
		CategoryLabel: UncategorizedLabel,
		ReadTime:      rec.ACFString("tiempo_lectura"),
		Popular:       rec.ACFBool("es_destacado"),
		Order:         acfInt(rec, "orden_popular"),
	}

	// ACF long description wins over the rendered body.
	article.Content = rec.ACFString("descripcion_larga")
	if article.Content == "" {
		article.Content = rec.Content.Rendered
	}

	if term := rec.TaxonomyTerm("categorias-blog"); term != nil {
		article.Category = term.Slug
		article.CategoryLabel = term.Name
	}

	return article
}

func mapCandidate(rec *wordpress.Record) (Candidate, error) {
	raw := rec.ACFString("fecha_de_entrevista")
	date, err := parseCandidateDate(raw)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		ID:       rec.ID,
		Name:     rec.Title.Rendered,
		Position: rec.ACFString("posicion"),
		Status:   rec.ACFString("estado"),
		Date:     date,
		DateRaw:  raw,
	}, nil
}

// parseCandidateDate parses the backend's DD/MM/YYYY interview date.
func parseCandidateDate(raw string) (time.Time, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid interview date %q", raw)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("invalid interview date %q", raw)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// acfInt reads a numeric ACF field that may arrive as a JSON number or a
// string.
func acfInt(rec *wordpress.Record, key string) int {
	if rec.ACF == nil {
		return 0
	}
	switch v := rec.ACF[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
