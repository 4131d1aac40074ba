package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/util/sets"
)

// defaultGrammars is the grammar set available without any explicit
// preloading. A fence language outside this set (and outside the configured
// allow-list) falls back to plain text rendering; it is never an error.
var defaultGrammars = sets.New(
	"bash", "c", "cpp", "csharp", "css", "diff", "dockerfile", "go", "html",
	"java", "javascript", "json", "jsx", "makefile", "markdown", "python",
	"ruby", "rust", "shell", "sql", "toml", "tsx", "typescript", "xml", "yaml",
)

// Renderer converts markdown bodies (frontmatter already removed) to HTML.
// Stateless after construction; safe for reuse across documents.
type Renderer struct {
	md  goldmark.Markdown
	cfg config.MarkdownConfig
}

// NewRenderer builds a goldmark engine from the markdown configuration.
// GFM extensions and auto heading IDs are always on; raw HTML passes through
// because post bodies are trusted local content.
func NewRenderer(cfg config.MarkdownConfig) *Renderer {
	theme := cfg.Theme
	if theme == "" {
		theme = config.DefaultTheme
	}
	cb := &codeBlockRenderer{
		theme:     theme,
		wrap:      cfg.WrapLines(),
		preloaded: sets.New(cfg.Langs...),
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(cb, 200)),
		),
	)
	return &Renderer{md: md, cfg: cfg}
}

// Render converts a markdown body into HTML.
func (r *Renderer) Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// codeBlockRenderer overrides fenced and indented code block rendering so the
// highlight theme lives in a CSS class (swappable via stylesheet, no rebuild)
// and long lines can soft-wrap.
type codeBlockRenderer struct {
	theme     string
	wrap      bool
	preloaded sets.Set[string]
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(gmast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*gmast.FencedCodeBlock)
	if entering {
		lang := ""
		if n.Info != nil {
			lang = string(n.Language(source))
		}
		r.writeOpen(w, lang)
		r.writeLines(w, source, n)
	} else {
		_, _ = w.WriteString("</code></pre>\n")
	}
	return gmast.WalkContinue, nil
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		r.writeOpen(w, "")
		r.writeLines(w, source, node)
	} else {
		_, _ = w.WriteString("</code></pre>\n")
	}
	return gmast.WalkContinue, nil
}

func (r *codeBlockRenderer) writeOpen(w util.BufWriter, lang string) {
	lang = r.effectiveLanguage(lang)
	_, _ = w.WriteString(`<pre class="astro-code `)
	_, _ = w.Write(util.EscapeHTML([]byte(r.theme)))
	_, _ = w.WriteString(`" data-language="`)
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString(`"`)
	if r.wrap {
		_, _ = w.WriteString(` style="white-space: pre-wrap; word-wrap: break-word;"`)
	}
	_, _ = w.WriteString(`><code class="language-`)
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString(`">`)
}

func (r *codeBlockRenderer) writeLines(w util.BufWriter, source []byte, n gmast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
}

// effectiveLanguage maps a fence info string onto the grammar actually used.
// Unset or unknown languages fall back to plaintext rather than failing.
func (r *codeBlockRenderer) effectiveLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "plaintext"
	}
	if defaultGrammars.Has(lang) || r.preloaded.Has(lang) {
		return lang
	}
	return "plaintext"
}
