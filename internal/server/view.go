package server

import (
	"html/template"
	"net/url"

	"github.com/vk/aplab/internal/dispatch"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/session"
)

var templateFuncs = template.FuncMap{
	"favicon": favicon,
}

// favicon turns an emoji into an inline SVG icon.
func favicon(icon string) template.URL {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		template.HTMLEscapeString(icon) + `</text></svg>`
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

type option struct {
	Value    string
	Label    string
	URL      string
	Selected bool
}

type pageView struct {
	Title      string
	Icon       string
	Wide       bool
	Live       bool
	Locale     string
	Languages  []option
	Categories []option
	Topics     []option
	Category   string
	Topic      string
	Locator    string
	SessionID  string
	OK         bool
	Body       template.HTML

	tr *i18n.Translator
}

// T translates a UI string.
func (v *pageView) T(key string) string { return v.tr.Text(key) }

func (s *Server) pageView(locale string, sess *session.Session, out dispatch.Outcome, body template.HTML) *pageView {
	reg := s.dispatcher.Registry()
	v := &pageView{
		Title:     s.opts.Title,
		Icon:      s.opts.Icon,
		Wide:      s.opts.Layout != "centered",
		Live:      s.opts.Live,
		Locale:    locale,
		Category:  out.Selection.Category,
		Topic:     out.Selection.Topic,
		Locator:   out.Locator.String(),
		SessionID: sess.ID,
		OK:        out.OK(),
		Body:      body,
		tr:        s.bundle.Translator(locale),
	}

	for _, l := range s.bundle.Supported() {
		v.Languages = append(v.Languages, option{
			Value:    l,
			Label:    l,
			URL:      topicURL(out.Selection.Category, out.Selection.Topic, l),
			Selected: l == locale,
		})
	}
	for _, category := range reg.Categories() {
		v.Categories = append(v.Categories, option{
			Value:    category,
			Label:    reg.DisplayName(category, "", locale),
			Selected: category == out.Selection.Category,
		})
	}
	if topics, err := reg.Topics(out.Selection.Category); err == nil {
		for _, topic := range topics {
			v.Topics = append(v.Topics, option{
				Value:    topic,
				Label:    reg.DisplayName(out.Selection.Category, topic, locale),
				Selected: topic == out.Selection.Topic,
			})
		}
	}
	return v
}
