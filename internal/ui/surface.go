package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vk/aplab/internal/chart"
)

// Kind identifies the type of a block.
type Kind string

const (
	KindTitle      Kind = "title"
	KindHeader     Kind = "header"
	KindSubheader  Kind = "subheader"
	KindMarkdown   Kind = "markdown"
	KindText       Kind = "text"
	KindCode       Kind = "code"
	KindTable      Kind = "table"
	KindChart      Kind = "chart"
	KindBanner     Kind = "banner"
	KindMetric     Kind = "metric"
	KindDivider    Kind = "divider"
	KindCodeEditor Kind = "code_editor"
	KindColumns    Kind = "columns"
	KindTabs       Kind = "tabs"
	KindExpander   Kind = "expander"
	KindWidget     Kind = "widget"
)

// Level is the severity of a banner.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Block is one element of a surface. Which fields are set depends on Kind.
type Block struct {
	Kind     Kind
	Text     string
	Lang     string
	Level    Level
	Header   []string
	Rows     [][]string
	Figure   *chart.Figure
	Metric   *Metric
	Widget   *Widget
	Editor   *Editor
	Labels   []string
	Children []*Surface
	Open     bool
}

// Metric is a headline number with an optional delta.
type Metric struct {
	Label string
	Value string
	Delta string
}

// Pass is the state shared by a surface and all of its nested containers
// during one render pass.
type Pass struct {
	inputs  Inputs
	keys    map[string]int
	widgets []*Widget
}

// Surface is an ordered list of blocks.
type Surface struct {
	pass   *Pass
	blocks []*Block
}

// NewSurface starts a render pass over the given inputs.
func NewSurface(in Inputs) *Surface {
	return &Surface{pass: &Pass{inputs: in, keys: make(map[string]int)}}
}

// Blocks returns the blocks in output order.
func (s *Surface) Blocks() []*Block { return s.blocks }

// Len returns the number of top-level blocks.
func (s *Surface) Len() int { return len(s.blocks) }

// Widgets returns every widget registered during the pass, in call order,
// including those inside containers.
func (s *Surface) Widgets() []*Widget {
	return append([]*Widget(nil), s.pass.widgets...)
}

// Inputs returns the inputs of the pass.
func (s *Surface) Inputs() Inputs { return s.pass.inputs }

func (s *Surface) add(b *Block) *Block {
	s.blocks = append(s.blocks, b)
	return b
}

func (s *Surface) child() *Surface {
	return &Surface{pass: s.pass}
}

func (s *Surface) Title(text string)     { s.add(&Block{Kind: KindTitle, Text: text}) }
func (s *Surface) Header(text string)    { s.add(&Block{Kind: KindHeader, Text: text}) }
func (s *Surface) Subheader(text string) { s.add(&Block{Kind: KindSubheader, Text: text}) }

// Markdown appends a markdown block. Common leading indentation is removed.
func (s *Surface) Markdown(text string) {
	s.add(&Block{Kind: KindMarkdown, Text: Dedent(text)})
}

// Markdownf is Markdown with fmt formatting.
func (s *Surface) Markdownf(format string, args ...any) {
	s.Markdown(fmt.Sprintf(format, args...))
}

// Text appends preformatted plain text.
func (s *Surface) Text(text string) { s.add(&Block{Kind: KindText, Text: text}) }

// Code appends a Python code sample.
func (s *Surface) Code(src string) { s.CodeLang("python", src) }

// CodeLang appends a code sample in the given language.
func (s *Surface) CodeLang(lang, src string) {
	s.add(&Block{Kind: KindCode, Lang: lang, Text: strings.Trim(Dedent(src), "\n")})
}

// Table appends a table. Rows shorter than the header are padded.
func (s *Surface) Table(header []string, rows [][]string) {
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(header) {
			row = append(append([]string(nil), row...), make([]string, len(header)-len(row))...)
		}
		padded[i] = row
	}
	s.add(&Block{Kind: KindTable, Header: header, Rows: padded})
}

// Chart appends a figure.
func (s *Surface) Chart(fig chart.Figure) { s.add(&Block{Kind: KindChart, Figure: &fig}) }

func (s *Surface) banner(level Level, text string) {
	s.add(&Block{Kind: KindBanner, Level: level, Text: text})
}

func (s *Surface) Success(text string) { s.banner(LevelSuccess, text) }
func (s *Surface) Info(text string)    { s.banner(LevelInfo, text) }
func (s *Surface) Warning(text string) { s.banner(LevelWarning, text) }
func (s *Surface) Error(text string)   { s.banner(LevelError, text) }

// Metric appends a headline number. delta may be empty.
func (s *Surface) Metric(label, value, delta string) {
	s.add(&Block{Kind: KindMetric, Metric: &Metric{Label: label, Value: value, Delta: delta}})
}

func (s *Surface) Divider() { s.add(&Block{Kind: KindDivider}) }

// Columns appends n side-by-side containers.
func (s *Surface) Columns(n int) []*Surface {
	if n < 1 {
		n = 1
	}
	b := s.add(&Block{Kind: KindColumns})
	for i := 0; i < n; i++ {
		b.Children = append(b.Children, s.child())
	}
	return b.Children
}

// Tabs appends one tab per label; all tab bodies are rendered.
func (s *Surface) Tabs(labels ...string) []*Surface {
	b := s.add(&Block{Kind: KindTabs, Labels: labels})
	for range labels {
		b.Children = append(b.Children, s.child())
	}
	return b.Children
}

// Expander appends a collapsible container.
func (s *Surface) Expander(title string, open bool) *Surface {
	b := s.add(&Block{Kind: KindExpander, Text: title, Open: open})
	b.Children = []*Surface{s.child()}
	return b.Children[0]
}

// Dedent removes leading and trailing blank lines and the longest common
// whitespace prefix of the remaining non-blank lines.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// Slug turns a label into a widget key: lower case letters and digits
// separated by single underscores.
func Slug(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "widget"
	}
	return b.String()
}

func (p *Pass) claim(key string) string {
	n := p.keys[key]
	p.keys[key] = n + 1
	if n == 0 {
		return key
	}
	for {
		candidate := fmt.Sprintf("%s_%d", key, n+1)
		if _, taken := p.keys[candidate]; !taken {
			p.keys[candidate] = 1
			return candidate
		}
		n++
	}
}
