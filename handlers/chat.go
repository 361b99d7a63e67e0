package handlers

import (
	"net/http"

	"estateinsights/app"
	"estateinsights/models"
	"estateinsights/view"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ChatHandler renders the chat panel. The typing bubble polls it until the
// pending reply lands.
func (h *Handlers) ChatHandler(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}
	h.renderChat(c, s)
}

// ChatSendHandler posts a chat message and answers with the chat panel plus
// an out-of-band dashboard, since an answered query replaces the result.
func (h *Handlers) ChatSendHandler(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	sent, err := s.Chat.SendMessage(c.Request.Context(), req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !sent {
		h.renderChat(c, s)
		return
	}

	page, err := h.page(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	page.OOB = true
	c.HTML(http.StatusOK, "chat_response", page)
}

// ChatUploadHandler forwards the picked spreadsheet to the backend. The
// confirmation arrives later through the typing poll.
func (h *Handlers) ChatUploadHandler(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		h.fail(c, errors.Wrap(err, "resolve session"))
		return
	}

	if err := h.upload(c, s); err != nil {
		if missingFile(err) {
			// Nothing picked: the panel stays as it was.
			h.renderChat(c, s)
			return
		}
		h.fail(c, err)
		return
	}
	h.renderChat(c, s)
}

// upload hands the request's "file" part to the session's chat panel.
func (h *Handlers) upload(c *gin.Context, s *app.Session) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	log.Info().
		Str("component", "handlers").
		Str("session_id", s.ID).
		Str("filename", fileHeader.Filename).
		Int64("size", fileHeader.Size).
		Msg("chat upload")

	// The panel reads the file before returning; the confirmation is timed.
	_, err = s.Chat.HandleFile(c.Request.Context(), fileHeader.Filename, file)
	return err
}

func missingFile(err error) bool {
	return errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)
}

func (h *Handlers) renderChat(c *gin.Context, s *app.Session) {
	msgs, err := s.Chat.Transcript()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "chat", view.BuildChat(msgs, s.Chat.Typing()))
}
