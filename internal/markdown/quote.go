package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// quoteBlock is a run of consecutive lines starting with a single '>'. Unlike a
// markdown blockquote the marker stays visible and the lines keep their inline
// formatting, so emphasis, code spans and >>N links work inside a quote.
type quoteBlock struct {
	ast.BaseBlock
}

var kindQuote = ast.NewNodeKind("Quote")

func (n *quoteBlock) Kind() ast.NodeKind { return kindQuote }

func (n *quoteBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// quotes is the goldmark extension registering quote parsing and rendering.
type quotes struct{}

func (quotes) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(util.Prioritized(quoteParser{}, 500)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(quoteRenderer{}, 500)))
}

// isQuoteLine: ">>N" opens a thread link, not a quote.
func isQuoteLine(line []byte) bool {
	return len(line) > 0 && line[0] == '>' && (len(line) == 1 || line[1] != '>')
}

type quoteParser struct{}

func (quoteParser) Trigger() []byte { return []byte{'>'} }

func (quoteParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	if !isQuoteLine(line) {
		return nil, parser.NoChildren
	}
	node := &quoteBlock{}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (quoteParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if !isQuoteLine(line) {
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

// Close drops the trailing newline so the last line does not end in a break.
func (quoteParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	lines := node.Lines()
	if n := lines.Len(); n > 0 {
		last := lines.At(n - 1)
		lines.Set(n-1, last.TrimRightSpace(reader.Source()))
	}
}

func (quoteParser) CanInterruptParagraph() bool { return true }

func (quoteParser) CanAcceptIndentedLine() bool { return false }

// quoteRenderer only wraps the block; its inline children go through the
// regular html renderer and are escaped there.
type quoteRenderer struct{}

func (quoteRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindQuote, renderQuote)
}

func renderQuote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="quote">`)
	} else {
		_, _ = w.WriteString("</span>\n")
	}
	return ast.WalkContinue, nil
}
