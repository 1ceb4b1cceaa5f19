package dispatch

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/ui"
)

// Outcome is the result of one render pass.
type Outcome struct {
	Selection Selection
	Locator   locator.Locator // zero when the selection did not resolve
	Surface   *ui.Surface     // output produced before any failure; may be nil
	Err       error
	Duration  time.Duration
}

// OK reports whether the pass succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Message describes the failure in the translator's locale, or returns ""
// for a successful pass.
func (o Outcome) Message(tr *i18n.Translator) string {
	if o.Err == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s", tr.Text("error_loading"), o.Err)
	if !o.Locator.IsZero() {
		msg += fmt.Sprintf("\n%s: %s", tr.Text("module_path"), o.Locator)
	}
	return msg
}

var errorPanel = template.Must(template.New("error").Parse(
	`<div class="aplab-banner aplab-banner-error aplab-error-panel" role="alert">` +
		`<p>{{.Prefix}}: {{.Err}}</p>` +
		`{{if .Locator}}<p>{{.ModulePath}}: <code>{{.Locator}}</code></p>{{end}}` +
		`</div>`,
))

// HTML renders the pass output followed, on failure, by an error panel.
func (o Outcome) HTML(tr *i18n.Translator) (template.HTML, error) {
	body, err := ui.RenderHTML(o.Surface)
	if err != nil {
		return "", err
	}
	if o.Err == nil {
		return body, nil
	}

	var buf bytes.Buffer
	buf.WriteString(string(body))
	err = errorPanel.Execute(&buf, map[string]string{
		"Prefix":     tr.Text("error_loading"),
		"Err":        o.Err.Error(),
		"ModulePath": tr.Text("module_path"),
		"Locator":    o.Locator.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render error panel: %w", err)
	}
	return template.HTML(buf.String()), nil
}
