package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts the hosted text-generation service.
type Client interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

// Kind categorizes generation failures so callers can act on the category
// instead of matching provider error strings.
type Kind string

const (
	KindCredential Kind = "credential"
	KindPermission Kind = "permission"
	KindQuota      Kind = "quota"
	KindModel      Kind = "model"
	KindTimeout    Kind = "timeout"
	KindTransient  Kind = "transient"
	KindEmpty      Kind = "empty"
)

// Error is a classified generation failure.
type Error struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation failed (%s, model=%s): %v", e.Kind, e.Model, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Hint returns a user-facing explanation for the failure category.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindCredential:
		return "The configured API credential was rejected. Check GEMINI_API_KEY."
	case KindPermission:
		return "The API credential lacks permission for this request."
	case KindQuota:
		return "The generation quota is exhausted. Try again later."
	case KindModel:
		return "The configured model identifier is not recognized by the service."
	case KindTimeout:
		return "The generation service did not respond in time. Resubmit to try again."
	case KindEmpty:
		return "The generation service returned no text. Resubmit to try again."
	default:
		return "A transient failure occurred while contacting the generation service. Resubmit to try again."
	}
}

// KindOf extracts the failure kind, defaulting to transient for plain errors.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return KindTransient
}
