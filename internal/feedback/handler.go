package feedback

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"writing-tutor-api/internal/extract"
	"writing-tutor-api/internal/shared/server/middleware"
	"writing-tutor-api/internal/shared/server/respond"
	"writing-tutor-api/internal/shared/telemetry"
	"writing-tutor-api/internal/shared/util"
)

const defaultMaxUploadBytes = 5 << 20

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches feedback routes to the router group. The extra
// handlers run in front of the analyze endpoints only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, analyzeMiddleware ...gin.HandlerFunc) {
	analyze := rg.Group("/analyze", analyzeMiddleware...)
	analyze.POST("/writing", h.analyzeWriting)
	analyze.POST("/upload", h.analyzeUpload)

	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type analyzeRequest struct {
	Text           string `json:"text"`
	AssignmentType string `json:"assignmentType"`
	FormLevel      *int   `json:"formLevel"`
}

func (h *Handler) analyzeWriting(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}

	formLevel := DefaultFormLevel
	if req.FormLevel != nil {
		formLevel = *req.FormLevel
	}
	sample, err := buildSample(req.Text, req.AssignmentType, formLevel)
	if err != nil {
		respondValidation(c, err)
		return
	}
	h.run(c, sample)
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", nil)
		return
	}

	formLevel, err := ParseFormLevel(c.PostForm("formLevel"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	assignmentType, err := ParseAssignmentType(c.PostForm("assignmentType"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "failed to read file", nil)
		return
	}

	text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF, DOCX and plain text files are supported", nil)
			return
		}
		safeName, _ := util.SanitizeFileName(fileHeader.Filename)
		telemetry.Error("feedback.extract_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"file_name":  safeName,
			"error":      sanitizeError(err),
		})
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read text from file", nil)
		return
	}

	sample, err := buildSample(text, string(assignmentType), formLevel)
	if err != nil {
		respondValidation(c, err)
		return
	}
	h.run(c, sample)
}

func (h *Handler) run(c *gin.Context, sample WritingSample) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	res, err := h.Svc.Analyze(ctx, sample)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			respondValidation(c, err)
			return
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze writing", nil)
		return
	}

	c.Set("analysisId", res.ID)
	c.Set("feedbackSource", string(res.Source))
	c.Header("X-Analysis-Id", res.ID)
	c.Header("X-Feedback-Source", string(res.Source))
	respond.Raw(c, http.StatusOK, res.Report)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "analysis id is required", nil)
		return
	}

	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis", nil)
		}
		return
	}
	c.Set("analysisId", rec.ID)
	respond.OK(c, rec)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	records, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}
	respond.OK(c, records)
}

// buildSample checks text first so an empty submission always reports the
// missing text rather than a missing assignment type.
func buildSample(text, rawAssignmentType string, formLevel int) (WritingSample, error) {
	if strings.TrimSpace(text) == "" {
		return WritingSample{}, ErrEmptyText
	}
	assignmentType, err := ParseAssignmentType(rawAssignmentType)
	if err != nil {
		return WritingSample{}, err
	}
	if err := ValidateFormLevel(formLevel); err != nil {
		return WritingSample{}, err
	}
	return WritingSample{Text: text, AssignmentType: assignmentType, FormLevel: formLevel}, nil
}

func respondValidation(c *gin.Context, err error) {
	field := "text"
	switch {
	case errors.Is(err, ErrMissingAssignmentType), errors.Is(err, ErrInvalidAssignmentType):
		field = "assignmentType"
	case errors.Is(err, ErrInvalidFormLevel):
		field = "formLevel"
	}
	respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), []map[string]string{
		{"field": field, "issue": err.Error()},
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
