package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/extract"
	"mitrahire-backend/internal/projects"
	"mitrahire-backend/internal/shared/server/middleware"
	"mitrahire-backend/internal/shared/server/respond"
	"mitrahire-backend/internal/users"
)

type Handler struct {
	Svc      *Service
	Projects *projects.Service
}

func NewHandler(svc *Service, projectSvc *projects.Service) *Handler {
	return &Handler{Svc: svc, Projects: projectSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	// Shareable-link uploads carry identity in the query, not a session.
	rg.POST("/resumes/upload", h.uploadViaLink)

	recruiterOnly := rg.Group("", middleware.RequireRole(users.RoleRecruiter))
	recruiterOnly.POST("/projects/:id/resumes", h.upload)
	recruiterOnly.GET("/projects/:id/resumes", h.list)
	recruiterOnly.GET("/resumes/:id/download", h.download)
}

func (h *Handler) uploadViaLink(c *gin.Context) {
	recruiterID := c.Query("recruiterId")
	projectID := c.Query("projectId")
	if recruiterID == "" || projectID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "recruiterId and projectId are required", nil)
		return
	}
	// The link is only valid for the project it was generated from.
	if _, err := h.Projects.Get(c.Request.Context(), recruiterID, projectID); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "upload link is invalid", nil)
		return
	}
	h.handleUpload(c, recruiterID, projectID)
}

func (h *Handler) upload(c *gin.Context) {
	recruiterID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")
	if _, err := h.Projects.Get(c.Request.Context(), recruiterID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}
	h.handleUpload(c, recruiterID, projectID)
}

func (h *Handler) handleUpload(c *gin.Context, recruiterID, projectID string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxUploadBytes+4096)

	applicantName := c.PostForm("applicantName")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrTooLarge.Error(), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "no file uploaded", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer src.Close()

	resume, err := h.Svc.Upload(
		c.Request.Context(),
		recruiterID,
		projectID,
		applicantName,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge), errors.Is(err, ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, resume)
}

func (h *Handler) list(c *gin.Context) {
	recruiterID := middleware.UserIDFromContext(c)
	projectID := c.Param("id")
	if _, err := h.Projects.Get(c.Request.Context(), recruiterID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}
	out, err := h.Svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	if out == nil {
		out = []Resume{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"resumes": out})
}

func (h *Handler) download(c *gin.Context) {
	resume, rc, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open resume", nil)
		return
	}
	defer rc.Close()

	if resume.RecruiterID != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "resume belongs to another recruiter", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resume.FileName+`"`)
	c.Header("Content-Type", resume.MimeType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers are already written, nothing useful left to send.
		return
	}
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projects.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "project not found", nil)
	case errors.Is(err, projects.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "project belongs to another recruiter", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load project", nil)
	}
}
