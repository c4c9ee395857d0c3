package letters

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/telemetry"
)

// LLMClient generates letter text from prompts.
type LLMClient interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

// Service runs the letter pipeline: validate, compose, generate, retain.
type Service struct {
	LLM           LLMClient
	Model         string
	FallbackModel string
	Store         object.ObjectStore
	Repo          Repo
	Now           func() time.Time
}

// Generate validates the request, assembles the prompt, and calls the
// generation service exactly once — plus at most one secondary attempt with
// the fallback model when the primary failure category warrants it.
func (s *Service) Generate(ctx context.Context, req Request) (Letter, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return Letter{}, &MissingFieldsError{Fields: missing}
	}
	if req.WordCount == 0 {
		req.WordCount = DefaultWordCount
	}
	if req.WordCount < MinWordCount || req.WordCount > MaxWordCount {
		return Letter{}, ErrInvalidInput
	}
	if req.Language == "" {
		req.Language = LanguageEnglish
	}
	if req.Date.IsZero() {
		req.Date = s.now()
	}

	prompt := BuildPrompt(req)

	text, err := s.LLM.Complete(ctx, s.Model, prompt)
	if err != nil && s.FallbackModel != "" && shouldFallback(err) {
		telemetry.Warn("letters.fallback_attempt", map[string]any{
			"primary_model":  s.Model,
			"fallback_model": s.FallbackModel,
			"kind":           string(llm.KindOf(err)),
		})
		text, err = s.LLM.Complete(ctx, s.FallbackModel, prompt)
	}
	if err != nil {
		return Letter{}, err
	}

	letter := Letter{
		ID:            uuid.NewString(),
		ApplicantName: req.Contact.Name,
		Company:       req.Job.Company,
		JobTitle:      req.Job.Title,
		Language:      req.Language,
		Text:          text,
		WordCount:     len(strings.Fields(text)),
		Model:         s.Model,
		CreatedAt:     s.now(),
	}

	if s.Store != nil {
		key := path.Join("letters", letter.ID+".txt")
		if _, serr := s.Store.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); serr != nil {
			telemetry.Error("letters.store_failed", map[string]any{"err": serr.Error(), "letter_id": letter.ID})
		} else {
			letter.StorageKey = key
		}
	}

	if s.Repo != nil {
		if rerr := s.Repo.Create(ctx, letter); rerr != nil {
			telemetry.Error("letters.retain_failed", map[string]any{"err": rerr.Error(), "letter_id": letter.ID})
		}
	}

	return letter, nil
}

// Get returns a retained letter, loading its text from object storage when
// the in-memory copy has been dropped.
func (s *Service) Get(ctx context.Context, letterID string) (Letter, error) {
	if strings.TrimSpace(letterID) == "" {
		return Letter{}, ErrInvalidInput
	}
	if s.Repo == nil {
		return Letter{}, ErrNotFound
	}
	letter, err := s.Repo.GetByID(ctx, letterID)
	if err != nil {
		return Letter{}, err
	}
	if letter.Text == "" && letter.StorageKey != "" && s.Store != nil {
		text, lerr := loadText(ctx, s.Store, letter.StorageKey)
		if lerr != nil {
			return Letter{}, lerr
		}
		letter.Text = text
	}
	return letter, nil
}

// List returns retained letters, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Letter, error) {
	if s.Repo == nil {
		return []Letter{}, nil
	}
	return s.Repo.List(ctx, limit, offset)
}

// A fallback attempt only makes sense when the primary model itself is the
// problem: unrecognized identifier or exhausted quota.
func shouldFallback(err error) bool {
	switch llm.KindOf(err) {
	case llm.KindModel, llm.KindQuota:
		return true
	default:
		return false
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func loadText(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	reader, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
