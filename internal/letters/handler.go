package letters

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/render"
	"coverletter-backend/internal/shared/server/respond"
	"coverletter-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/letters", h.generate)
	rg.GET("/letters", h.list)
	rg.GET("/letters/:id", h.get)
	rg.GET("/letters/:id/download", h.download)
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	lang, err := ParseLanguage(req.Language)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "language must be english or indonesian", nil)
		return
	}

	letter, err := h.Svc.Generate(c.Request.Context(), req.toRequest(lang))
	if err != nil {
		var missingErr *MissingFieldsError
		var genErr *llm.Error
		switch {
		case errors.As(err, &missingErr):
			respond.Error(c, http.StatusUnprocessableEntity, "missing_field", "required fields are missing", missingErr.Fields)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "wordCount must be between 40 and 800", nil)
		case errors.As(err, &genErr):
			respond.Error(c, http.StatusBadGateway, "generation_failed", genErr.Hint(), gin.H{"category": string(genErr.Kind)})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate letter", nil)
		}
		return
	}

	c.Set("letterId", letter.ID)
	respond.JSON(c, http.StatusCreated, toResponse(letter, len(render.Paragraphs(letter.Text)), true))
}

func (h *Handler) get(c *gin.Context) {
	letter, ok := h.fetch(c)
	if !ok {
		return
	}
	respond.OK(c, toResponse(letter, len(render.Paragraphs(letter.Text)), true))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	all, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list letters", nil)
		return
	}
	items := make([]LetterResponse, 0, len(all))
	for _, letter := range all {
		items = append(items, toResponse(letter, len(render.Paragraphs(letter.Text)), false))
	}
	respond.OK(c, gin.H{"items": items, "limit": limit, "offset": offset})
}

func (h *Handler) download(c *gin.Context) {
	letter, ok := h.fetch(c)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	switch format {
	case "", "pdf":
		data, err := render.Letter(letter.Text)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render letter document", nil)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\""+downloadFileName(letter, ".pdf")+"\"")
		c.Data(http.StatusOK, "application/pdf", data)
	case "txt":
		c.Header("Content-Disposition", "attachment; filename=\""+downloadFileName(letter, ".txt")+"\"")
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(letter.Text))
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be pdf or txt", nil)
	}
}

func (h *Handler) fetch(c *gin.Context) (Letter, bool) {
	letterID := c.Param("id")
	letter, err := h.Svc.Get(c.Request.Context(), letterID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "letter not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "letter id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch letter", nil)
		}
		return Letter{}, false
	}
	c.Set("letterId", letter.ID)
	return letter, true
}

func downloadFileName(letter Letter, ext string) string {
	base := "Cover_Letter"
	for _, part := range []string{letter.ApplicantName, letter.Company} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		base += "_" + strings.ReplaceAll(part, " ", "_")
	}
	if sanitized, err := util.SanitizeFileName(base); err == nil {
		base = sanitized
	}
	return base + ext
}
