package handlers

import (
	"net/http"

	"estateinsights/app"
	"estateinsights/models"
	"estateinsights/view"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func (h *Handlers) apiSession(c *gin.Context) (*app.Session, bool) {
	s, err := h.session(c)
	if err != nil {
		h.apiFail(c, http.StatusInternalServerError, "Internal server error", err)
		return nil, false
	}
	return s, true
}

func (h *Handlers) apiFail(c *gin.Context, status int, msg string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		h.logErr(c, err)
	}
	c.JSON(status, models.ErrorResponse{Error: msg})
}

func (h *Handlers) chatResponse(c *gin.Context, status int, s *app.Session) {
	msgs, err := s.Chat.Transcript()
	if err != nil {
		h.apiFail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	c.JSON(status, models.ChatResponse{Messages: msgs, Typing: s.Chat.Typing()})
}

// APIAskHandler queries insights for an area
// @Summary      Query area insights
// @Description  Query the backend for an area's summary, price trend and dataset rows. The result is kept on the session for download.
// @Tags         Insights
// @Accept       json
// @Produce      json
// @Param        request      body      models.AskRequest  true   "Area to query"
// @Param        X-Session-ID header    string             false  "Session ID (falls back to the insights_sid cookie)"
// @Success      200          {object}  models.AskResponse    "Insights for the area"
// @Failure      400          {object}  models.ErrorResponse  "Empty area"
// @Failure      502          {object}  models.ErrorResponse  "Backend failure"
// @Router       /api/ask [post]
func (h *Handlers) APIAskHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}

	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.apiFail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	err := h.dashboard.Ask(c.Request.Context(), s, req.Area)
	switch {
	case errors.Is(err, app.ErrEmptyArea):
		h.apiFail(c, http.StatusBadRequest, app.MsgEmptyArea, err)
		return
	case err != nil:
		h.apiFail(c, http.StatusBadGateway, app.MsgQueryFailed, err)
		return
	}

	result := s.State().Result
	c.JSON(http.StatusOK, models.AskResponse{
		Area:   view.DisplayArea(result, req.Area),
		Result: result,
	})
}

// APIResultHandler returns the session's dashboard state
// @Summary      Get dashboard state
// @Description  Get the typed area, the last stored result and the current error message for the session
// @Tags         Insights
// @Produce      json
// @Param        X-Session-ID header    string  false  "Session ID"
// @Success      200          {object}  models.DashboardState  "Dashboard state"
// @Router       /api/result [get]
func (h *Handlers) APIResultHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// APIDownloadHandler downloads the CSV export
// @Summary      Download area CSV
// @Description  Download the filtered dataset for the session's typed area. Available once a query has succeeded.
// @Tags         Insights
// @Produce      text/csv
// @Param        area         query     string  false  "Typed area (defaults to the last one set)"
// @Param        X-Session-ID header    string  false  "Session ID"
// @Success      200          {file}    file                  "CSV attachment"
// @Failure      409          {object}  models.ErrorResponse  "No result yet"
// @Failure      502          {object}  models.ErrorResponse  "Backend failure"
// @Router       /api/download [get]
func (h *Handlers) APIDownloadHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}

	filename, data, err := h.download(c, s)
	switch {
	case errors.Is(err, app.ErrNoResult):
		h.apiFail(c, http.StatusConflict, "No insights to download yet.", err)
		return
	case err != nil:
		h.apiFail(c, http.StatusBadGateway, app.MsgQueryFailed, err)
		return
	}
	sendCSV(c, filename, data)
}

// APIChatHandler returns the chat transcript
// @Summary      Get chat transcript
// @Description  Get the session's chat messages, oldest first, and whether a reply is pending
// @Tags         Chat
// @Produce      json
// @Param        X-Session-ID header    string  false  "Session ID"
// @Success      200          {object}  models.ChatResponse  "Transcript"
// @Router       /api/chat [get]
func (h *Handlers) APIChatHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}
	h.chatResponse(c, http.StatusOK, s)
}

// APIChatMessageHandler sends a chat message
// @Summary      Send chat message
// @Description  Send a message to the assistant. The text is treated as an area query; blank messages are ignored.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request      body      models.ChatRequest  true   "Chat message"
// @Param        X-Session-ID header    string              false  "Session ID"
// @Success      200          {object}  models.ChatResponse   "Transcript after the reply"
// @Failure      400          {object}  models.ErrorResponse  "Invalid request"
// @Router       /api/chat/message [post]
func (h *Handlers) APIChatMessageHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.apiFail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if _, err := s.Chat.SendMessage(c.Request.Context(), req.Message); err != nil {
		h.apiFail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	h.chatResponse(c, http.StatusOK, s)
}

// APIChatUploadHandler uploads a spreadsheet through the chat
// @Summary      Upload spreadsheet
// @Description  Upload an Excel file to the backend. The confirmation message is added to the transcript shortly after.
// @Tags         Chat
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "Spreadsheet"
// @Param        X-Session-ID header    string  false  "Session ID"
// @Success      202          {object}  models.ChatResponse   "Transcript with the upload notice"
// @Failure      400          {object}  models.ErrorResponse  "No file"
// @Router       /api/chat/upload [post]
func (h *Handlers) APIChatUploadHandler(c *gin.Context) {
	s, ok := h.apiSession(c)
	if !ok {
		return
	}

	if err := h.upload(c, s); err != nil {
		if missingFile(err) {
			h.apiFail(c, http.StatusBadRequest, "No file uploaded", err)
			return
		}
		h.apiFail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	h.chatResponse(c, http.StatusAccepted, s)
}
