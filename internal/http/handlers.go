package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crguezl/tinyclonec/internal/core"
)

type Handlers struct {
	svc     *core.Service
	baseURL string
}

func NewHandlers(svc *core.Service, baseURL string) *Handlers {
	return &Handlers{svc: svc, baseURL: baseURL}
}

// ---- endpoints ----

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Home renders the submission form plus the newest links.
func (h *Handlers) Home(c *gin.Context) {
	h.renderHome(c, homeData{})
}

// Submit handles the form post. A known or freshly created url renders
// the short link; validation failures re-render the form with the
// messages and the submitted value.
func (h *Handlers) Submit(c *gin.Context) {
	raw := c.PostForm("url")
	l, _, err := h.svc.Shorten(c.Request.Context(), raw)
	if err != nil {
		if ve, ok := core.AsValidation(err); ok {
			h.renderHome(c, homeData{URL: raw, Errors: ve.Messages})
			return
		}
		internalError(c, "shorten", err)
		return
	}
	h.renderHome(c, homeData{Result: l})
}

// Redirect resolves a short code, counts the view, and sends the
// visitor on. Codes that do not resolve get the 404 page.
func (h *Handlers) Redirect(c *gin.Context) {
	l, err := h.svc.Visit(c.Request.Context(), c.Param("code"))
	if err != nil {
		if core.IsNotFound(err) {
			h.notFound(c)
			return
		}
		internalError(c, "visit", err)
		return
	}
	c.Redirect(http.StatusFound, l.URL)
}

// Info shows a link's destination, view count, and creation time
// without counting a view.
func (h *Handlers) Info(c *gin.Context) {
	l, err := h.svc.Metadata(c.Request.Context(), c.Param("code"))
	if err != nil {
		if core.IsNotFound(err) {
			h.notFound(c)
			return
		}
		internalError(c, "info", err)
		return
	}
	c.HTML(http.StatusOK, "info.html", gin.H{
		"Link":     l,
		"ShortURL": h.shortURL(l),
	})
}

// ---- JSON API ----

type createRequest struct {
	URL string `json:"url"`
}

// APICreate is the JSON twin of Submit: 201 for a fresh link, 200 when
// the url was already stored.
func (h *Handlers) APICreate(c *gin.Context) {
	var in createRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid json body"}})
		return
	}
	l, created, err := h.svc.Shorten(c.Request.Context(), in.URL)
	if err != nil {
		if ve, ok := core.AsValidation(err); ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": ve.Messages})
			return
		}
		internalError(c, "api create", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, h.linkJSON(l))
}

// APILink returns a link's metadata as JSON.
func (h *Handlers) APILink(c *gin.Context) {
	l, err := h.svc.Metadata(c.Request.Context(), c.Param("code"))
	if err != nil {
		if core.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "not found")
			return
		}
		internalError(c, "api link", err)
		return
	}
	c.JSON(http.StatusOK, h.linkJSON(l))
}

// ---- helpers ----

type homeData struct {
	URL    string
	Errors []string
	Result *core.Link
}

// renderHome fills in the recent list and renders the index page. The
// page still renders when the recent query fails; the list is empty.
func (h *Handlers) renderHome(c *gin.Context, data homeData) {
	recent, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		slog.Warn("recent links", "error", err)
		recent = nil
	}
	var short string
	if data.Result != nil {
		short = h.shortURL(data.Result)
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"URL":      data.URL,
		"Errors":   data.Errors,
		"Result":   data.Result,
		"ShortURL": short,
		"Recent":   recent,
	})
}

func (h *Handlers) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", nil)
}

func (h *Handlers) shortURL(l *core.Link) string {
	return h.baseURL + "/" + l.Code()
}

func (h *Handlers) linkJSON(l *core.Link) gin.H {
	return gin.H{
		"code":       l.Code(),
		"url":        l.URL,
		"short_url":  h.shortURL(l),
		"view_count": l.ViewCount,
		"created_at": l.CreatedAt,
	}
}

func jsonError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// internalError logs the real error and sends a bare 500; the detail
// stays out of the response.
func internalError(c *gin.Context, op string, err error) {
	slog.Error("handler failure", "op", op, "request_id", c.GetString("request_id"), "error", err)
	jsonError(c, http.StatusInternalServerError, "internal error")
}
