package server

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60

func (s *Server) handleHealth(c *gin.Context) {
	ctxlog.FromContext(c.Request.Context()).Debug("Health check endpoint hit.", "remote_addr", c.ClientIP())
	c.String(http.StatusOK, "OK\n")
}

func (s *Server) handleTopic(c *gin.Context) {
	ctx := c.Request.Context()
	logger := ctxlog.FromContext(ctx)

	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form: %v", err)
		return
	}

	locale := s.resolveLocale(c)
	tr := s.bundle.Translator(locale)
	sess := s.session(c)
	sel := s.dispatcher.Select(formValue(c, "category"), formValue(c, "topic"))

	var in ui.Inputs
	if c.Request.Method == http.MethodPost {
		in = ui.InputsFromForm(c.Request.PostForm)
	} else {
		in = ui.InputsFromForm(c.Request.URL.Query())
	}

	outcome := s.dispatcher.Render(ctx, sel, in, sess, locale)
	body, err := outcome.HTML(tr)
	if err != nil {
		logger.Error("Failed to render page body.", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if c.Query("_partial") == "1" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
		return
	}

	c.HTML(http.StatusOK, "page.tmpl", s.pageView(locale, sess, outcome, body))
}

func (s *Server) resolveLocale(c *gin.Context) string {
	query := c.Request.URL.Query()["lang"]
	if len(query) == 0 {
		query = c.Request.PostForm["lang"]
	}
	cookie, _ := c.Cookie(LangCookie)
	locale := s.bundle.Resolve(query, cookie, c.GetHeader("Accept-Language"))
	if len(query) > 0 && cookie != locale {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(LangCookie, locale, sessionCookieMaxAge, "/", "", false, false)
	}
	return locale
}

func (s *Server) session(c *gin.Context) *session.Session {
	id, _ := c.Cookie(SessionCookie)
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, sessionCookieMaxAge, "/", "", false, true)
		ctxlog.FromContext(c.Request.Context()).Debug("Session created.", "session", sess.ID)
	}
	return sess
}

func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

type catalogTopic struct {
	Label   string `json:"label"`
	Name    string `json:"name"`
	Locator string `json:"locator"`
	URL     string `json:"url"`
}

type catalogCategory struct {
	Label  string         `json:"label"`
	Name   string         `json:"name"`
	Topics []catalogTopic `json:"topics"`
}

func (s *Server) handleCatalog(c *gin.Context) {
	locale := s.resolveLocale(c)
	reg := s.dispatcher.Registry()

	categories := make([]catalogCategory, 0, len(reg.Categories()))
	for _, category := range reg.Categories() {
		topics, _ := reg.Topics(category)
		entry := catalogCategory{Label: category, Name: reg.DisplayName(category, "", locale)}
		for _, topic := range topics {
			loc, _ := reg.Locator(category, topic)
			entry.Topics = append(entry.Topics, catalogTopic{
				Label:   topic,
				Name:    reg.DisplayName(category, topic, locale),
				Locator: loc.String(),
				URL:     topicURL(category, topic, locale),
			})
		}
		categories = append(categories, entry)
	}

	c.JSON(http.StatusOK, gin.H{"locale": locale, "categories": categories})
}

func topicURL(category, topic, locale string) string {
	q := url.Values{}
	q.Set("category", category)
	q.Set("topic", topic)
	q.Set("lang", locale)
	return "/topic?" + q.Encode()
}
