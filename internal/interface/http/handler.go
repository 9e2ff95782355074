package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
	"github.com/yanqian/outfit-assistant/internal/domain/session"
)

// Handler wires the HTTP transport to the UI session.
type Handler struct {
	session session.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		session: svc,
		logger:  logger.With("component", "http.handler"),
	}
}

// Page renders the full view as HTML.
func (h *Handler) Page(c *gin.Context) {
	snap, err := h.session.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, viewUnavailable(err))
		return
	}
	var buf bytes.Buffer
	if err := renderPage(&buf, pageData{Snapshot: snap, QuickTags: quickTags}); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, codeRenderFailed, "page render failed", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// View returns the current view snapshot.
func (h *Handler) View(c *gin.Context) {
	snap, err := h.session.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, viewUnavailable(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SetInputs replaces the three form values without submitting.
func (h *Handler) SetInputs(c *gin.Context) {
	var in outfit.RawInput
	if err := c.ShouldBind(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, errMessage(err), err))
		return
	}
	if err := h.session.SetInput(c.Request.Context(), in); err != nil {
		abortWithError(c, viewUnavailable(err))
		return
	}
	h.respondView(c, http.StatusOK)
}

// QuickSelect fills the weather field from a preset tag.
func (h *Handler) QuickSelect(c *gin.Context) {
	weather := strings.TrimSpace(c.Param("weather"))
	if weather == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "weather tag is required", nil))
		return
	}
	if err := h.session.QuickSelect(c.Request.Context(), weather); err != nil {
		abortWithError(c, viewUnavailable(err))
		return
	}
	h.respondView(c, http.StatusOK)
}

// Recommend is the submit trigger. A body, when present, replaces the form
// values first.
func (h *Handler) Recommend(c *gin.Context) {
	var in *outfit.RawInput
	if c.Request.ContentLength != 0 {
		var body outfit.RawInput
		if err := c.ShouldBind(&body); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, errMessage(err), err))
			return
		}
		in = &body
	}
	if err := h.session.Submit(c.Request.Context(), in); err != nil {
		abortWithError(c, triggerError(err))
		return
	}
	h.respondView(c, http.StatusAccepted)
}

// RefreshForecast is the forecast refresh trigger.
func (h *Handler) RefreshForecast(c *gin.Context) {
	if err := h.session.RefreshForecast(c.Request.Context()); err != nil {
		abortWithError(c, triggerError(err))
		return
	}
	h.respondView(c, http.StatusAccepted)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respondView(c *gin.Context, status int) {
	snap, err := h.session.Snapshot(c.Request.Context())
	if err != nil {
		c.Status(status)
		return
	}
	c.JSON(status, snap)
}
