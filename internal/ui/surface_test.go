package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/chart"
)

func TestDedent(t *testing.T) {
	src := `
		# Heading

		Some text
		    indented
	`
	assert.Equal(t, "# Heading\n\nSome text\n    indented", Dedent(src))
}

func TestRenderHTML(t *testing.T) {
	s := NewSurface(Inputs{})
	s.Title("Variables")
	s.Markdown(`
		## What is a variable?

		A **named** box.
	`)
	s.Code(`x = 5`)
	s.Table([]string{"Name", "Value"}, [][]string{{"x"}})
	s.Chart(chart.FlowChart([]string{"A", "B"}))
	s.Warning("Careful <now>")
	s.Metric("Score", "3", "+1")
	tabs := s.Tabs("One", "Two")
	tabs[1].Text("inside")
	exp := s.Expander("More", true)
	exp.Checkbox("Show", true)
	s.Select("Type", []string{"int", "str"}, Index(1))
	s.Button("Go")
	s.CodeEditor("print(1)", 400)

	out, err := RenderHTML(s)
	require.NoError(t, err)
	html := string(out)

	for _, want := range []string{
		`<h1 class="aplab-title">Variables</h1>`,
		`<h2>What is a variable?</h2>`,
		`<strong>named</strong>`,
		`<code class="language-python">x = 5</code>`,
		`<td>x</td><td></td>`,
		`class="aplab-chart" data-figure="`,
		`Careful &lt;now&gt;`,
		`aplab-banner-warning`,
		`<div class="aplab-metric-delta">+1</div>`,
		`inside`,
		`<details class="aplab-expander" open>`,
		`value="on" checked`,
		`<option value="str" selected>str</option>`,
		`name="_clicked" value="go"`,
		`<py-repl auto-generate="true">`,
	} {
		assert.Contains(t, html, want)
	}
	assert.Equal(t, 1, strings.Count(html, "aplab-title"))
}

func TestRenderHTML_NilSurface(t *testing.T) {
	out, err := RenderHTML(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCodeEditorWithExamples(t *testing.T) {
	s := NewSurface(inputs("choose_an_example", "Functions"))
	chosen := s.CodeEditorWithExamples(nil, 400)
	assert.Equal(t, "Functions", chosen)

	last := s.Blocks()[len(s.Blocks())-1]
	require.Equal(t, KindCodeEditor, last.Kind)
	assert.Contains(t, last.Editor.Code, "def greet(name):")
	assert.Equal(t, `["numpy", "pandas"]`, last.Editor.PackagesList())
}

func TestTable_PadsShortRows(t *testing.T) {
	s := NewSurface(Inputs{})
	s.Table([]string{"a", "b", "c"}, [][]string{{"1"}})
	assert.Equal(t, []string{"1", "", ""}, s.Blocks()[0].Rows[0])
}
