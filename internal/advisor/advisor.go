// Package advisor serves the career-advice chat.
package advisor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/llm"
	"mitrahire-backend/internal/shared/server/respond"
)

type Service struct {
	LLM llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Reply answers one chat message under the career-advisor context.
// Model failures surface as errors so callers can tell them apart from
// genuine replies.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message is required")
	}
	reply, err := s.LLM.GenerateText(ctx, llm.ChatPrompt(message))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	reply, err := h.Svc.Reply(c.Request.Context(), req.Message)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "model request failed", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"reply": reply})
}
