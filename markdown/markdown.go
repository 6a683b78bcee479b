// Package markdown converts content bodies to HTML as a templ component.
// Rendering is a deterministic, pure function of the source text: the same
// input always yields byte-identical output.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// engine renders author-controlled content. Raw HTML embedded in the source
// passes through unsanitized; this path must never see user-submitted text.
var engine = newEngine(true)

// safeEngine escapes raw HTML and is the only path user-submitted text (the
// guestbook) may go through.
var safeEngine = newEngine(false)

func newEngine(unsafe bool) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&headingIDTransformer{}, 100)),
		),
	}
	if unsafe {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return goldmark.New(opts...)
}

// Render converts author-controlled markdown to HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// RenderSafe converts markdown with raw HTML escaped. Use for anything a
// visitor typed.
func RenderSafe(source string) (string, error) {
	var buf bytes.Buffer
	if err := safeEngine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// Markdown returns a templ.Component that renders source as HTML.
func Markdown(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render(source)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// headingIDTransformer gives every heading a stable, slug-derived id so
// table-of-contents deep links keep working across rebuilds. Duplicate ids
// within one document get -1, -2, ... suffixes in source order.
type headingIDTransformer struct{}

func (t *headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	seen := map[string]int{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := HeadingID(string(heading.Text(reader.Source())))
		if count, dup := seen[id]; dup {
			seen[id] = count + 1
			id = id + "-" + strconv.Itoa(count)
		} else {
			seen[id] = 1
		}
		heading.SetAttributeString("id", []byte(id))
		return ast.WalkContinue, nil
	})
}

// HeadingID derives an anchor id from heading text: lowercased, whitespace
// collapsed to single hyphens, everything that is not a letter or digit
// stripped. The derivation is deterministic given the text; duplicate
// handling is the transformer's job. An id that strips to nothing falls back
// to "section".
func HeadingID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}
