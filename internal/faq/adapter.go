package faq

import (
	"context"

	"github.com/vipcaribbean/site-api/internal/logger"
	"github.com/vipcaribbean/site-api/internal/wordpress"
)

// PageSlug is the page whose custom-field map carries the flattened FAQ
// shape.
const PageSlug = "preguntas-frecuentes"

// Adapter fetches FAQ content from the backend and normalizes it into
// categories.
type Adapter struct {
	wp     *wordpress.Client
	source Source
	logger logger.Logger
}

func NewAdapter(wp *wordpress.Client, source Source, log logger.Logger) *Adapter {
	return &Adapter{wp: wp, source: source, logger: log}
}

// Categories returns the grouped FAQ categories from the configured source.
func (a *Adapter) Categories(ctx context.Context) ([]Category, error) {
	if a.source == SourceTagged {
		return a.tagged(ctx)
	}
	return a.flattened(ctx)
}

func (a *Adapter) flattened(ctx context.Context) ([]Category, error) {
	rec, err := a.wp.GetBySlug(ctx, wordpress.TypePages, PageSlug)
	if err != nil {
		return nil, err
	}
	return GroupFlattened(rec.ACF), nil
}

func (a *Adapter) tagged(ctx context.Context) ([]Category, error) {
	records, err := a.wp.ListAll(ctx, wordpress.TypeFaqs)
	if err != nil {
		return nil, err
	}
	entries := make([]TaggedEntry, 0, len(records))
	for i := range records {
		rec := &records[i]
		entries = append(entries, TaggedEntry{
			Tag:      rec.ACFString("seccion"),
			Question: rec.Title.Rendered,
			Answer:   rec.Content.Rendered,
			Order:    acfOrder(rec),
		})
	}
	return GroupTagged(entries), nil
}

// acfOrder reads the orden field, which the backend delivers as a JSON
// number.
func acfOrder(rec *wordpress.Record) int {
	if rec.ACF == nil {
		return 0
	}
	if v, ok := rec.ACF["orden"].(float64); ok {
		return int(v)
	}
	return 0
}
