package handlers

import (
	"net/http"

	"estateinsights/app"
	"estateinsights/view"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// @title           Real Estate Insights API
// @version         1.0
// @description     Area insights dashboard and chat assistant over the real estate analytics backend
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

const (
	SessionCookie = "insights_sid"
	SessionHeader = "X-Session-ID"

	sessionCookieMaxAge = 24 * 60 * 60
)

type Handlers struct {
	dashboard *app.Dashboard
}

func New(dashboard *app.Dashboard) *Handlers {
	return &Handlers{dashboard: dashboard}
}

func requestedSessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionHeader); id != "" {
		return id
	}
	id, _ := c.Cookie(SessionCookie)
	return id
}

// session resolves the caller's session, starting one when the header and
// cookie name nothing live. The id is always echoed back.
func (h *Handlers) session(c *gin.Context) (*app.Session, error) {
	s, created, err := h.dashboard.SessionOrNew(requestedSessionID(c))
	if err != nil {
		return nil, err
	}
	if created {
		log.Debug().Str("component", "handlers").Str("session_id", s.ID).Msg("new session")
	}
	h.bindSession(c, s)
	return s, nil
}

func (h *Handlers) bindSession(c *gin.Context, s *app.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, s.ID, sessionCookieMaxAge, "/", "", false, true)
	c.Header(SessionHeader, s.ID)
}

func (h *Handlers) page(s *app.Session) (view.PageData, error) {
	msgs, err := s.Chat.Transcript()
	if err != nil {
		return view.PageData{}, err
	}
	return view.BuildPage(s.State(), msgs, s.Chat.Typing()), nil
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (h *Handlers) logErr(c *gin.Context, err error) {
	log.Error().Err(err).Str("component", "handlers").Str("path", c.Request.URL.Path).Msg("request failed")
}

func (h *Handlers) fail(c *gin.Context, err error) {
	h.logErr(c, err)
	c.String(http.StatusInternalServerError, "Internal server error")
}

// IndexHandler renders the dashboard page. ?new=1 drops the current session
// and starts over with a fresh one.
func (h *Handlers) IndexHandler(c *gin.Context) {
	if c.Query("new") != "" {
		h.dashboard.EndSession(requestedSessionID(c))
		s, err := h.dashboard.NewSession()
		if err != nil {
			h.fail(c, errors.Wrap(err, "start session"))
			return
		}
		h.bindSession(c, s)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}
	page, err := h.page(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index", page)
}
