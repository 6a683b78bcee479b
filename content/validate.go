package content

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// The builders below turn a parsed file into a typed record. Front-matter
// fields are mapped explicitly, field by field, instead of being merged
// dynamically into the record; anything required-but-missing fails
// validation and the file is skipped as malformed.

const dateLayout = "2006-01-02"

func buildArticle(doc RawDoc) (Article, error) {
	m := doc.Meta
	errs := validation.Errors{
		"title": validation.Validate(m.Title, validation.Required),
		"date":  validation.Validate(m.Date, validation.Required, validation.Date(dateLayout)),
	}
	if err := errs.Filter(); err != nil {
		return Article{}, fmt.Errorf("article %s: %w", doc.Slug, err)
	}
	body := string(doc.Body)
	return Article{
		Record: Record{
			Slug:        doc.Slug,
			Title:       m.Title,
			Summary:     summaryOf(m),
			Date:        m.Date,
			Updated:     m.Updated,
			Tags:        cloneTags(m.Tags),
			Body:        body,
			ReadingTime: ReadingTime(body),
		},
		Cover:  m.Cover,
		Series: m.Series,
	}, nil
}

func buildStaticPage(doc RawDoc) (StaticPage, error) {
	m := doc.Meta
	errs := validation.Errors{
		"title": validation.Validate(m.Title, validation.Required),
	}
	if err := errs.Filter(); err != nil {
		return StaticPage{}, fmt.Errorf("page %s: %w", doc.Slug, err)
	}
	body := string(doc.Body)
	return StaticPage{
		Record: Record{
			Slug:        doc.Slug,
			Title:       m.Title,
			Summary:     summaryOf(m),
			Date:        m.Date,
			Updated:     m.Updated,
			Tags:        cloneTags(m.Tags),
			Body:        body,
			ReadingTime: ReadingTime(body),
		},
	}, nil
}

func buildNote(doc RawDoc) (Note, error) {
	m := doc.Meta
	errs := validation.Errors{
		"title": validation.Validate(m.Title, validation.Required),
		"date":  validation.Validate(m.Date, validation.Required, validation.Date(dateLayout)),
	}
	if err := errs.Filter(); err != nil {
		return Note{}, fmt.Errorf("note %s: %w", doc.Slug, err)
	}
	body := string(doc.Body)
	return Note{
		Record: Record{
			Slug:        doc.Slug,
			Title:       m.Title,
			Summary:     summaryOf(m),
			Date:        m.Date,
			Updated:     m.Updated,
			Tags:        cloneTags(m.Tags),
			Body:        body,
			ReadingTime: ReadingTime(body),
		},
	}, nil
}

func buildResource(doc RawDoc) (Resource, error) {
	m := doc.Meta
	errs := validation.Errors{
		"title": validation.Validate(m.Title, validation.Required),
		"url":   validation.Validate(m.URL, validation.Required, is.URL),
	}
	if err := errs.Filter(); err != nil {
		return Resource{}, fmt.Errorf("resource %s: %w", doc.Slug, err)
	}
	return Resource{
		Record: Record{
			Slug:    doc.Slug,
			Title:   m.Title,
			Summary: summaryOf(m),
			Date:    m.Date,
			Tags:    cloneTags(m.Tags),
			Body:    string(doc.Body),
		},
		URL:      m.URL,
		Category: m.Category,
	}, nil
}

// validateImage guards the album write path; Src is the one field nothing
// can render without.
func validateImage(img GalleryImage) error {
	return validation.Errors{
		"src": validation.Validate(img.Src, validation.Required),
	}.Filter()
}

func validateAlbum(a Album) error {
	return validation.Errors{
		"slug": validation.Validate(a.Slug, validation.Required),
		"name": validation.Validate(a.Name, validation.Required),
	}.Filter()
}

// summaryOf prefers the summary field but falls back to description, which
// is what resource files use.
func summaryOf(m FrontMeta) string {
	if m.Summary != "" {
		return m.Summary
	}
	return m.Description
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}
