package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/contact"
	"coverletter-backend/internal/shared/server/respond"
)

type uploadResponse struct {
	ResumeID      string       `json:"resumeId"`
	ResumeText    string       `json:"resumeText"`
	Contact       contact.Info `json:"contact"`
	MissingFields []string     `json:"missingFields"`
	Warning       *Warning     `json:"warning,omitempty"`
}

// Handler exposes résumé upload over HTTP.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit", gin.H{"limitBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "uploaded file could not be opened", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit", gin.H{"limitBytes": h.MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "uploaded file could not be read", nil)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process upload", nil)
		return
	}

	missing := result.MissingFields()
	if missing == nil {
		missing = []string{}
	}

	c.Set("resumeId", result.ResumeID)
	respond.OK(c, uploadResponse{
		ResumeID:      result.ResumeID,
		ResumeText:    result.Text,
		Contact:       result.Contact,
		MissingFields: missing,
		Warning:       result.Warning,
	})
}
