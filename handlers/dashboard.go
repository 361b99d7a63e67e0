package handlers

import (
	"mime"
	"net/http"

	"estateinsights/app"
	"estateinsights/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// AskHandler queries the typed area. htmx callers get the dashboard fragment
// back; plain form posts are redirected to the page.
func (h *Handlers) AskHandler(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}

	var req models.AskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	// Validation and backend failures are already recorded on the session.
	_ = h.dashboard.Ask(c.Request.Context(), s, req.Area)

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	page, err := h.page(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard", page)
}

// DownloadHandler sends the CSV export for the typed area as an attachment.
// The page sends the input box's current text as ?area=.
func (h *Handlers) DownloadHandler(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}

	filename, data, err := h.download(c, s)
	switch {
	case errors.Is(err, app.ErrNoResult):
		c.String(http.StatusConflict, "No insights to download yet.")
		return
	case err != nil:
		c.String(http.StatusBadGateway, app.MsgQueryFailed)
		return
	}
	sendCSV(c, filename, data)
}

// download records the area query parameter, when sent, as the typed area
// and fetches the CSV for it.
func (h *Handlers) download(c *gin.Context, s *app.Session) (string, []byte, error) {
	if area, ok := c.GetQuery("area"); ok {
		s.SetArea(area)
	}
	return h.dashboard.Download(c.Request.Context(), s)
}

func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
