package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voxboard/voxboard/internal/widget"
)

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listWidgets returns active widgets, or the trash list with ?trashed=true.
func (s *Server) listWidgets(c *gin.Context) {
	if c.Query("trashed") == "true" {
		c.JSON(http.StatusOK, s.store.Trashed())
		return
	}
	c.JSON(http.StatusOK, s.store.List())
}

type createWidgetRequest struct {
	Type     string           `json:"type" binding:"required"`
	Position *widget.Position `json:"position"`
}

// createWidget adds a widget of the requested type. At most one active widget
// per type exists; a duplicate request returns the existing one unchanged.
func (s *Server) createWidget(c *gin.Context) {
	var req createWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := widget.ParseType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, ok := s.store.FindByType(t); ok {
		c.JSON(http.StatusOK, existing)
		return
	}

	pos := widget.Position{}
	if req.Position != nil {
		pos = *req.Position
	}
	created := s.store.Add(t, pos)

	if s.logger != nil {
		s.logger.Info("widget created", "widget_id", created.ID, "type", string(t))
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getWidget(c *gin.Context) {
	w, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

type updateWidgetRequest struct {
	Data     *widget.Data     `json:"data"`
	Position *widget.Position `json:"position"`
}

// updateWidget replaces the data payload and/or moves the widget. At least
// one of the two fields must be present.
func (s *Server) updateWidget(c *gin.Context) {
	var req updateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Data == nil && req.Position == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	id := c.Param("id")
	if req.Data != nil {
		if err := s.store.Update(id, req.Data); err != nil {
			s.renderStoreError(c, err)
			return
		}
	}
	if req.Position != nil {
		if err := s.store.Move(id, *req.Position); err != nil {
			s.renderStoreError(c, err)
			return
		}
	}

	w, _ := s.store.Get(id)
	c.JSON(http.StatusOK, w)
}

// deleteWidget trashes by default; ?permanent=true removes the widget for good.
func (s *Server) deleteWidget(c *gin.Context) {
	id := c.Param("id")

	if c.Query("permanent") == "true" {
		if err := s.store.Delete(id); err != nil {
			s.renderStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	if err := s.store.Trash(id); err != nil {
		s.renderStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) restoreWidget(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Restore(id); err != nil {
		s.renderStoreError(c, err)
		return
	}
	w, _ := s.store.Get(id)
	c.JSON(http.StatusOK, w)
}

type commandRequest struct {
	Text string `json:"text" binding:"required"`
}

type commandResponse struct {
	OK       bool   `json:"ok"`
	Intent   string `json:"intent,omitempty"`
	WidgetID string `json:"widgetId,omitempty"`
	Message  string `json:"message"`
}

// postCommand runs a typed command through the same pipeline as voice input.
// Unrecognized commands are a 200 with ok=false, not an HTTP error.
func (s *Server) postCommand(c *gin.Context) {
	if s.processor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "command pipeline unavailable"})
		return
	}

	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result := s.processor.Process(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, commandResponse{
		OK:       result.OK,
		Intent:   string(result.Intent),
		WidgetID: result.WidgetID,
		Message:  result.Message,
	})
}

func (s *Server) renderStoreError(c *gin.Context, err error) {
	if errors.Is(err, widget.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "widget not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
