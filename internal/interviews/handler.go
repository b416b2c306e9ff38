package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/extract"
	"mitrahire-backend/internal/llm"
	"mitrahire-backend/internal/shared/server/middleware"
	"mitrahire-backend/internal/shared/server/respond"
	"mitrahire-backend/internal/users"
)

type Handler struct {
	Svc   *Service
	Gen   *Generator
	Users *users.Service
}

func NewHandler(svc *Service, gen *Generator, userSvc *users.Service) *Handler {
	return &Handler{Svc: svc, Gen: gen, Users: userSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generatemockquestions", h.generateMockQuestions)
	rg.POST("/interviewfeedback", h.interviewFeedback)

	grp := rg.Group("/interviews")
	grp.POST("", h.create)
	grp.GET("/:id", h.get)
	grp.POST("/:id/start", h.start)
	grp.POST("/:id/transcript", h.setTranscript)
	grp.POST("/:id/next", h.next)
	grp.POST("/:id/end", h.end)
}

func (h *Handler) generateMockQuestions(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, extract.MaxUploadBytes+4096)

	jobDescription := c.PostForm("jobDescription")
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}

	resumeContent := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		if extract.IsPDF(fileHeader.Header.Get("Content-Type")) {
			src, err := fileHeader.Open()
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
				return
			}
			text, err := extract.TextFromReader(c.Request.Context(), src)
			src.Close()
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "failed to extract resume text", nil)
				return
			}
			resumeContent = text
		} else {
			resumeContent = "Unsupported file format."
		}
	}

	set, err := h.Gen.MockQuestions(c.Request.Context(), jobDescription, resumeContent)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	userID := middleware.UserIDFromContext(c)
	if err := h.Users.SaveQuestions(c.Request.Context(), userID, set.Ordered()); err != nil && !errors.Is(err, users.ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store questions", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"technical_questions":  set.Technical,
		"behavioral_questions": set.Behavioral,
	})
}

type feedbackRequest struct {
	UserName string            `json:"userName"`
	Answers  map[string]string `json:"answers"`
}

func (h *Handler) interviewFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Answers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "answers are required", nil)
		return
	}
	summary, feedback, err := h.Gen.Feedback(c.Request.Context(), req.UserName, req.Answers)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary, "feedback": feedback})
}

type createRequest struct {
	Questions []string `json:"questions"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	userName := middleware.UserNameFromContext(c)

	questions := req.Questions
	if len(questions) == 0 {
		// Fall back to the question set stored by the generation step.
		user, err := h.Users.GetByID(c.Request.Context(), userID)
		if err == nil {
			questions = user.Questions
		}
	}

	session, err := h.Svc.Create(c.Request.Context(), userID, userName, questions)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, session)
}

func (h *Handler) get(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, session)
}

func (h *Handler) start(c *gin.Context) {
	session, err := h.Svc.Start(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, session)
}

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

func (h *Handler) setTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	session, err := h.Svc.SetTranscript(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Transcript)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, session)
}

func (h *Handler) next(c *gin.Context) {
	session, err := h.Svc.Next(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, session)
}

func (h *Handler) end(c *gin.Context) {
	session, err := h.Svc.End(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, session)
}

func respondSessionError(c *gin.Context, err error) {
	var malformed *llm.MalformedResponseError
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "interview session not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "session belongs to another user", nil)
	case errors.Is(err, ErrEmptyTranscript):
		respond.Error(c, http.StatusConflict, "conflict", "answer transcript is empty", nil)
	case errors.Is(err, ErrInvalidState):
		respond.Error(c, http.StatusConflict, "conflict", "operation not allowed in this state", nil)
	case errors.As(err, &malformed):
		respond.Error(c, http.StatusBadGateway, "malformed_upstream", "model returned a malformed response", nil)
	case errors.As(err, new(*GenerationError)):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "model request failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "interview operation failed", nil)
	}
}

func respondGenerationError(c *gin.Context, err error) {
	var malformed *llm.MalformedResponseError
	if errors.As(err, &malformed) {
		respond.Error(c, http.StatusBadGateway, "malformed_upstream", "model returned a malformed response", nil)
		return
	}
	respond.Error(c, http.StatusBadGateway, "upstream_error", "model request failed", nil)
}
