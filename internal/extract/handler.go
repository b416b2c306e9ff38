package extract

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mitrahire-backend/internal/shared/telemetry"
)

// MaxUploadBytes caps accepted PDF uploads at 5MB.
const MaxUploadBytes = 5 * 1024 * 1024

// Handler serves the extraction endpoint consumed by the main API
// and by browser clients that want raw resume text.
type Handler struct {
	tmpDir string
}

func NewHandler(tmpDir string) *Handler {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Handler{tmpDir: tmpDir}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/upload", h.Upload)
}

// Upload accepts a single multipart PDF under the "file" field and
// responds with the extracted plain text.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+4096)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large. Maximum size is 5MB."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large. Maximum size is 5MB."})
		return
	}
	if !IsPDF(fileHeader.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF files are allowed!"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error reading uploaded file", "error": err.Error()})
		return
	}
	defer src.Close()

	tmpPath := filepath.Join(h.tmpDir, uuid.NewString()+".pdf")
	dst, err := os.Create(tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error storing uploaded file", "error": err.Error()})
		return
	}
	// The temp copy is removed on every path, including extraction failures.
	defer os.Remove(tmpPath)

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error storing uploaded file", "error": err.Error()})
		return
	}
	if err := dst.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error storing uploaded file", "error": err.Error()})
		return
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error reading uploaded file", "error": err.Error()})
		return
	}
	text, err := Text(c.Request.Context(), data)
	if err != nil {
		telemetry.Error("extract.failed", map[string]any{"file": fileHeader.Filename, "error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error extracting text", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
