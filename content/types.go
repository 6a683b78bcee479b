// Package content loads the site's flat-file content tree (front-matter
// markdown for articles, notes and resources; a single JSON document for
// photo albums) and exposes typed lookup, filtering and pagination over it.
package content

// Record is the base shape shared by every markdown-backed content kind.
// Slug is unique within a kind and immutable once created.
type Record struct {
	Slug        string
	Title       string
	Summary     string
	Date        string // ISO date, e.g. "2024-06-01"
	Updated     string // optional revision date
	Tags        []string
	Body        string // raw markdown source, rendered lazily
	ReadingTime int    // minutes; zero for kinds that don't carry it
}

// Base returns the record itself. It exists so the concrete kinds satisfy
// Filterable through embedding.
func (r Record) Base() Record { return r }

// FilterCategory returns the value matched by the category filter. Kinds
// without a category return the empty string, which never matches.
func (r Record) FilterCategory() string { return "" }

// Article is a long-form blog post.
type Article struct {
	Record
	Cover  string // optional cover image reference
	Series string // optional series grouping
}

// Note is a short-form post. Same shape as the base record.
type Note struct {
	Record
}

// StaticPage is a standalone document outside the dated kinds, such as the
// about page. Only the title is required.
type StaticPage struct {
	Record
}

// Resource is a curated external link. URL is required; Category is a single
// classification string, distinct from tags.
type Resource struct {
	Record
	URL      string
	Category string
}

func (r Resource) FilterCategory() string { return r.Category }

// CoverStyle carries purely cosmetic presentation hints for an album cover.
type CoverStyle struct {
	Blur       bool    `json:"blur,omitempty"`
	BlurRadius int     `json:"blurRadius,omitempty"`
	Opacity    float64 `json:"opacity,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Overlay    string  `json:"overlay,omitempty"`
}

// GalleryImage is one image inside an album. ID is unique within the album.
type GalleryImage struct {
	ID        string   `json:"id"`
	Src       string   `json:"src"`
	Alt       string   `json:"alt"`
	Caption   string   `json:"caption,omitempty"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

// Album is a photo album stored in the gallery JSON document. ImageCount is
// always recomputed from len(Images) on every mutation; it is persisted only
// so the JSON stays a stable write target for external tooling.
type Album struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Cover       string         `json:"cover"`
	CoverStyle  *CoverStyle    `json:"coverStyle,omitempty"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	CreatedAt   string         `json:"createdAt"`
	ImageCount  int            `json:"imageCount"`
	Images      []GalleryImage `json:"images"`
}

// Base adapts an album to the shared record shape so the query engine can
// filter and paginate albums alongside the markdown kinds.
func (a Album) Base() Record {
	return Record{
		Slug:    a.Slug,
		Title:   a.Name,
		Summary: a.Description,
		Date:    a.CreatedAt,
		Tags:    a.Tags,
	}
}

func (a Album) FilterCategory() string { return a.Category }
