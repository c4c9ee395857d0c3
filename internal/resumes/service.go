package resumes

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"coverletter-backend/internal/contact"
	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/telemetry"
)

// Warning codes reported when an upload is accepted but yields no text.
const (
	WarnUnsupportedFormat = "unsupported_format"
	WarnDecodeFailure     = "decode_failure"
)

// Warning tells the client the upload was stored but text extraction did not
// produce anything usable.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of processing one uploaded résumé.
type Result struct {
	ResumeID   string
	StorageKey string
	Text       string
	Contact    contact.Info
	Warning    *Warning
}

// MissingFields lists contact fields the extraction could not find.
func (r Result) MissingFields() []string {
	return r.Contact.MissingFields()
}

// Service stores uploads, extracts their text, and pulls the contact triple.
type Service struct {
	Store object.ObjectStore
}

// NewService constructs a Service.
func NewService(store object.ObjectStore) *Service {
	return &Service{Store: store}
}

// Process retains the original upload, extracts plain text from it, and scans
// the text for contact details. Unsupported or unreadable files are still
// retained and reported with a warning instead of an error so the client can
// fall back to manual entry.
func (s *Service) Process(ctx context.Context, fileName string, declaredType string, data []byte) (Result, error) {
	result := Result{ResumeID: uuid.NewString()}

	if s.Store != nil {
		key, size, mime, err := s.Store.Save(ctx, "resumes", fileName, bytes.NewReader(data))
		if err != nil {
			return Result{}, err
		}
		result.StorageKey = key
		telemetry.Info("resumes.stored", map[string]any{
			"resume_id":   result.ResumeID,
			"storage_key": key,
			"size_bytes":  size,
			"mime_type":   mime,
		})
	}

	text, err := extract.Text(data, declaredType, fileName)
	if err != nil {
		result.Warning = warningFor(err)
		telemetry.Warn("resumes.extract_failed", map[string]any{
			"resume_id": result.ResumeID,
			"code":      result.Warning.Code,
			"err":       err.Error(),
		})
		return result, nil
	}

	result.Text = text
	result.Contact = contact.Extract(text)

	if s.Store != nil && result.StorageKey != "" && strings.TrimSpace(text) != "" {
		key := result.StorageKey + ".extracted.txt"
		if _, serr := s.Store.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); serr != nil {
			telemetry.Error("resumes.store_text_failed", map[string]any{"resume_id": result.ResumeID, "err": serr.Error()})
		}
	}

	return result, nil
}

func warningFor(err error) *Warning {
	if errors.Is(err, extract.ErrUnsupported) {
		return &Warning{
			Code:    WarnUnsupportedFormat,
			Message: "file format is not supported; upload a PDF, DOCX, or TXT file, or fill the fields manually",
		}
	}
	return &Warning{
		Code:    WarnDecodeFailure,
		Message: "file could not be read; fill the fields manually or upload a different file",
	}
}
