package wordpress

// Content type identifiers exposed by the WordPress backend. The custom post
// types (empleos, eventos, candidatos, ...) are registered on the backend.
const (
	TypePages          = "pages"
	TypePosts          = "posts"
	TypeEmpleos        = "empleos"
	TypeEventos        = "eventos"
	TypeBlogArticles   = "articulo_blog"
	TypeCandidatos     = "candidatos"
	TypeLineasCruceros = "lineas_cruceros"
	TypeFaqs           = "faqs"
)

// RenderedField is WordPress's {rendered: "..."} wrapper.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// Term is a taxonomy term embedded via ?_embed.
type Term struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

// Media is an embedded featured-media record.
type Media struct {
	SourceURL string `json:"source_url"`
}

// Embedded holds the relations returned with ?_embed.
type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia"`
	Terms         [][]Term `json:"wp:term"`
}

// Record is a raw WordPress content record, before normalization.
type Record struct {
	ID       int            `json:"id"`
	Slug     string         `json:"slug"`
	Date     string         `json:"date"`
	Title    RenderedField  `json:"title"`
	Content  RenderedField  `json:"content"`
	Excerpt  RenderedField  `json:"excerpt"`
	ACF      map[string]any `json:"acf"`
	Embedded *Embedded      `json:"_embedded"`
}

// FeaturedImage returns the embedded featured-media URL, or "" when absent.
func (r *Record) FeaturedImage() string {
	if r.Embedded == nil || len(r.Embedded.FeaturedMedia) == 0 {
		return ""
	}
	return r.Embedded.FeaturedMedia[0].SourceURL
}

// TaxonomyTerm returns the first embedded term of the given taxonomy, or nil.
func (r *Record) TaxonomyTerm(taxonomy string) *Term {
	if r.Embedded == nil {
		return nil
	}
	for _, group := range r.Embedded.Terms {
		for i := range group {
			if group[i].Taxonomy == taxonomy {
				return &group[i]
			}
		}
	}
	return nil
}

// FirstTerm returns the first embedded term of any taxonomy, or nil.
func (r *Record) FirstTerm() *Term {
	if r.Embedded == nil {
		return nil
	}
	for _, group := range r.Embedded.Terms {
		if len(group) > 0 {
			return &group[0]
		}
	}
	return nil
}

// ACFString returns a string-valued ACF field, or "" when missing or not a string.
func (r *Record) ACFString(key string) string {
	if r.ACF == nil {
		return ""
	}
	if s, ok := r.ACF[key].(string); ok {
		return s
	}
	return ""
}

// ACFBool returns a bool-valued ACF field, false when missing.
func (r *Record) ACFBool(key string) bool {
	if r.ACF == nil {
		return false
	}
	if b, ok := r.ACF[key].(bool); ok {
		return b
	}
	return false
}

// ACFMap returns an object-valued ACF field (a relation), or nil.
func (r *Record) ACFMap(key string) map[string]any {
	if r.ACF == nil {
		return nil
	}
	if m, ok := r.ACF[key].(map[string]any); ok {
		return m
	}
	return nil
}
