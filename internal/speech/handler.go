package speech

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/shared/server/respond"
)

type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/speech", h.speak)
}

type speakRequest struct {
	Text string `json:"text"`
}

// speak proxies one synthesis session to the response as chunked audio.
// A dropped client cancels the upstream stream through the request
// context.
func (h *Handler) speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	session, err := h.Client.Stream(c.Request.Context(), req.Text)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "speech synthesis failed", nil)
		return
	}
	defer session.Cancel()

	c.Header("Content-Type", "audio/mpeg")
	c.Status(http.StatusOK)
	flusher, _ := c.Writer.(http.Flusher)
	for chunk := range session.Chunks() {
		if _, err := c.Writer.Write(chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	// Headers are out by now; a mid-stream failure can only end the body.
	_ = session.Err()
}
