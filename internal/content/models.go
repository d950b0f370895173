package content

import "time"

// Page is a normalized WordPress page: rendered title/body plus the raw ACF
// fields for templates that read custom fields directly.
type Page struct {
	ID      int            `json:"id"`
	Slug    string         `json:"slug"`
	Title   string         `json:"title"`
	Content string         `json:"content"`
	ACF     map[string]any `json:"acf,omitempty"`
}

// CruiseLineRef is the cruise-line relation attached to a job listing.
type CruiseLineRef struct {
	Name string `json:"nombre"`
	Logo string `json:"logo,omitempty"`
	Link string `json:"enlace,omitempty"`
}

// JobListing is a normalized empleo record.
type JobListing struct {
	ID               int            `json:"id"`
	Slug             string         `json:"slug"`
	Title            string         `json:"titulo"`
	Description      string         `json:"descripcion"` // rendered HTML
	Logo             string         `json:"logoEmpleo,omitempty"`
	CruiseLine       *CruiseLineRef `json:"cruiseLine,omitempty"`
	Category         string         `json:"categoria,omitempty"`
	ContractDuration string         `json:"duracionDelContrato,omitempty"`
	Urgent           bool           `json:"urgente"`
}

// CruiseLine is a partner cruise line (logo wall).
type CruiseLine struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
	Logo string `json:"logo,omitempty"`
}

// EventSummary is an evento as shown on the gallery listing. PhotoCount and
// VideoCount are derived from the raw body HTML and must equal the media
// slice lengths of EventDetail for the same record.
type EventSummary struct {
	ID               int    `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"titulo"`
	ShortDescription string `json:"descripcion"`
	Date             string `json:"fecha,omitempty"`
	Place            string `json:"lugar,omitempty"`
	CoverImage       string `json:"portada,omitempty"`
	PhotoCount       int    `json:"fotosCount"`
	VideoCount       int    `json:"videosCount"`
}

// EventDetail is an evento with its full body and extracted media URLs.
type EventDetail struct {
	EventSummary
	Content string   `json:"contenido"`
	Images  []string `json:"images"`
	Videos  []string `json:"videos"`
}

// BlogArticle is a normalized articulo_blog record.
type BlogArticle struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	ReadTime      string `json:"readTime,omitempty"`
	Popular       bool   `json:"popular"`
	Order         int    `json:"orden"`
}

// Candidate is a pre-interview result entry.
type Candidate struct {
	ID       int       `json:"id"`
	Name     string    `json:"nombre"`
	Position string    `json:"posicion"`
	Status   string    `json:"estado"`
	Date     time.Time `json:"fecha"`
	DateRaw  string    `json:"fechaRaw"` // backend format DD/MM/YYYY
}

// CandidateFilter narrows the candidate listing. Zero values match everything.
type CandidateFilter struct {
	Month  int    // 1-12
	Year   int    // e.g. 2025; Month and Year filter together
	Status string // case-insensitive match on estado
}

// Matches reports whether c passes the filter.
func (f CandidateFilter) Matches(c Candidate) bool {
	if f.Month != 0 && f.Year != 0 {
		if int(c.Date.Month()) != f.Month || c.Date.Year() != f.Year {
			return false
		}
	}
	if f.Status != "" && !equalFold(c.Status, f.Status) {
		return false
	}
	return true
}

// Fallback category used when a blog article has no taxonomy term.
const (
	UncategorizedSlug  = "sin-categoria"
	UncategorizedLabel = "Sin categoría"
)
