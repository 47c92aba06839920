package markdown

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindESM is the node kind of an MDX import/export block.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once.
var KindESM = ast.NewNodeKind("ESM")

// ESM is a top-level MDX import or export statement. It spans until the next blank line.
type ESM struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *ESM) Kind() ast.NodeKind {
	return KindESM
}

// IsRaw implements ast.Node.
func (n *ESM) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *ESM) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Runs before the HTML block (900) and paragraph (1000) parsers.
const esmParserPriority = 150

//nolint:gochecknoglobals // Compiled once.
var esmStart = regexp.MustCompile(`^(?:import|export)(?:\s|\{|\*)`)

type esmParser struct{}

func (esmParser) Trigger() []byte {
	return []byte{'i', 'e'}
}

func (esmParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent.Kind() != ast.KindDocument || pc.BlockOffset() != 0 {
		return nil, parser.NoChildren
	}

	line, segment := reader.PeekLine()
	if !esmStart.Match(line) {
		return nil, parser.NoChildren
	}

	node := &ESM{}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)

	return node, parser.NoChildren
}

func (esmParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}

	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)

	return parser.Continue | parser.NoChildren
}

func (esmParser) Close(ast.Node, text.Reader, parser.Context) {}

func (esmParser) CanInterruptParagraph() bool {
	return false
}

func (esmParser) CanAcceptIndentedLine() bool {
	return false
}
