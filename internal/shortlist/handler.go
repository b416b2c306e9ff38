package shortlist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/llm"
	"mitrahire-backend/internal/shared/server/middleware"
	"mitrahire-backend/internal/shared/server/respond"
	"mitrahire-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("", middleware.RequireRole(users.RoleRecruiter))
	grp.POST("/resumeshortlist", h.shortlist)
	grp.POST("/generate-summary", h.summary)
}

type shortlistRequest struct {
	Count          int         `json:"count"`
	Resumes        []ResumeRef `json:"resumes"`
	JobDescription string      `json:"jobdescription"`
}

func (h *Handler) shortlist(c *gin.Context) {
	var req shortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Count <= 0 || len(req.Resumes) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input: no resumes or invalid count", nil)
		return
	}

	out, err := h.Svc.Shortlist(c.Request.Context(), req.Count, req.JobDescription, req.Resumes)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	if out == nil {
		out = []ScoredResume{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"shortlisted": out})
}

type summaryRequest struct {
	ResumeURL      string `json:"resumeUrl"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeUrl is required", nil)
		return
	}

	summary, err := h.Svc.Summary(c.Request.Context(), req.ResumeURL, req.JobDescription)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary})
}

func respondUpstreamError(c *gin.Context, err error) {
	var malformed *llm.MalformedResponseError
	if errors.As(err, &malformed) {
		respond.Error(c, http.StatusBadGateway, "malformed_upstream", "model returned a malformed response", nil)
		return
	}
	respond.Error(c, http.StatusBadGateway, "upstream_error", err.Error(), nil)
}
