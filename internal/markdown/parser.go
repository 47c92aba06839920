// Package markdown parses page bodies with goldmark and derives the plain-text views the
// rest of guidebook needs: flattened text for search and a flat table of contents.
package markdown

import (
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Document is a parsed markdown body together with the source it was parsed from.
// goldmark nodes reference segments of the source, so the two always travel together.
type Document struct {
	root   ast.Node
	source []byte
}

type config struct {
	mdx bool
}

// Option configures parsing.
type Option func(*config)

// WithMDX recognizes top-level MDX import and export statements. They become ESM nodes,
// which carry no text.
func WithMDX() Option {
	return func(c *config) {
		c.mdx = true
	}
}

// ForFile returns the parse options matching a page file name.
func ForFile(name string) []Option {
	if strings.EqualFold(path.Ext(name), ".mdx") {
		return []Option{WithMDX()}
	}
	return nil
}

func newParser(cfg config) parser.Parser {
	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if cfg.mdx {
		parserOpts = append(parserOpts, parser.WithBlockParsers(
			util.Prioritized(esmParser{}, esmParserPriority),
		))
	}

	return goldmark.New(goldmark.WithParserOptions(parserOpts...)).Parser()
}

// Parse parses a markdown body. The body must not contain a frontmatter block.
func Parse(source []byte, opts ...Option) *Document {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Document{
		root:   newParser(cfg).Parse(text.NewReader(source)),
		source: source,
	}
}

// Flatten returns the plain text of the whole document.
func (d *Document) Flatten() string {
	return flattenNode(d.root, d.source)
}

// Headings returns the document's headings in document order.
func (d *Document) Headings() []Heading {
	headings := []Heading{}

	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Title: flattenNode(heading, d.source),
			URL:   anchor(heading),
		})

		return ast.WalkSkipChildren, nil
	})

	return headings
}

// Flatten parses source and returns its plain text.
func Flatten(source []byte, opts ...Option) string {
	return Parse(source, opts...).Flatten()
}

// Headings parses source and returns its table of contents.
func Headings(source []byte, opts ...Option) []Heading {
	return Parse(source, opts...).Headings()
}

func anchor(heading *ast.Heading) string {
	value, ok := heading.AttributeString("id")
	if !ok {
		return ""
	}

	switch id := value.(type) {
	case []byte:
		return "#" + string(id)
	case string:
		return "#" + id
	default:
		return ""
	}
}
