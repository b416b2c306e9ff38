package projects

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	grp := rg.Group("/projects", middleware.RequireRole(users.RoleRecruiter))
	grp.POST("", h.create)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.remove)
	grp.GET("/:id/link", h.shareLink)
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	project, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.Title, req.Description)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, project)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list projects", nil)
		return
	}
	if out == nil {
		out = []Project{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"projects": out})
}

func (h *Handler) get(c *gin.Context) {
	project, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "failed to load project")
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) update(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	project, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Title, req.Description)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			respondProjectError(c, err, "failed to update project")
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, project)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "failed to delete project")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) shareLink(c *gin.Context) {
	link, err := h.Svc.ShareLink(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "failed to build link")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"link": link})
}

func respondProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "project belongs to another recruiter", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
