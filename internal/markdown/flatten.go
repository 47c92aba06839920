package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//nolint:gochecknoglobals // Compiled once.
var (
	htmlComment     = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlDeclaration = regexp.MustCompile(`(?s)<[?!].*?>`)
	htmlTag         = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
	htmlRawElement  = regexp.MustCompile(`(?i)^\s*<(?:script|style)\b`)
	htmlSpaces      = regexp.MustCompile(`[ \t]+`)
)

// flattenNode concatenates the literal text below n in document order.
//
// Consecutive text siblings form one fragment; each fragment is trimmed and fragments are
// joined with single spaces. Wrappers such as emphasis, links and raw HTML only contribute
// the text nested inside them. HTML and JSX blocks contribute the markdown between their
// tags. Code blocks and MDX import/export blocks contribute nothing.
func flattenNode(n ast.Node, source []byte) string {
	return flattener{source: source}.flatten(n)
}

type flattener struct {
	source []byte

	// nested is set while flattening the content of an HTML block.
	nested bool
}

func (f flattener) flatten(n ast.Node) string {
	var (
		fragments []string
		run       strings.Builder
	)

	flush := func() {
		if fragment := strings.TrimSpace(run.String()); fragment != "" {
			fragments = append(fragments, fragment)
		}
		run.Reset()
	}

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := node.(type) {
		case *ast.Text:
			if !isText(node.PreviousSibling()) {
				flush()
			}
			run.Write(node.Segment.Value(f.source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				run.WriteByte(' ')
			}
			if !isText(node.NextSibling()) {
				flush()
			}
		case *ast.String:
			if !isText(node.PreviousSibling()) {
				flush()
			}
			run.Write(node.Value)
			if !isText(node.NextSibling()) {
				flush()
			}
		case *ast.AutoLink:
			flush()
			run.Write(node.Label(f.source))
			flush()
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			flush()
			if !f.nested {
				run.WriteString(f.htmlBlockText(node))
				flush()
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	flush()

	return strings.Join(fragments, " ")
}

// htmlBlockText strips the tags of an HTML block and flattens what remains as markdown.
func (f flattener) htmlBlockText(block *ast.HTMLBlock) string {
	var raw bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		raw.Write(segment.Value(f.source))
	}
	if block.HasClosure() {
		raw.Write(block.ClosureLine.Value(f.source))
	}

	content := raw.Bytes()
	if htmlRawElement.Match(content) {
		return ""
	}

	content = htmlComment.ReplaceAll(content, nil)
	content = htmlDeclaration.ReplaceAll(content, nil)
	content = htmlTag.ReplaceAll(content, []byte(" "))
	content = htmlSpaces.ReplaceAll(content, []byte(" "))

	// Indentation inside HTML is layout, not code blocks.
	inner := bytes.Split(content, []byte("\n"))
	for i, line := range inner {
		inner[i] = bytes.TrimLeft(line, " \t")
	}
	content = bytes.Join(inner, []byte("\n"))

	root := newParser(config{}).Parse(text.NewReader(content))
	return flattener{source: content, nested: true}.flatten(root)
}

func isText(n ast.Node) bool {
	switch n.(type) {
	case *ast.Text, *ast.String:
		return true
	default:
		return false
	}
}
