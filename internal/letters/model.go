package letters

import (
	"errors"
	"strings"
	"time"

	"coverletter-backend/internal/contact"
)

var (
	ErrNotFound     = errors.New("letter not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Language selects the output language of the letter.
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguageIndonesian Language = "indonesian"
)

// Word count slider bounds, matching the form control.
const (
	MinWordCount     = 40
	MaxWordCount     = 800
	DefaultWordCount = 100
)

// ParseLanguage normalizes a user-supplied language selector.
// Empty input defaults to English.
func ParseLanguage(raw string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "english", "en":
		return LanguageEnglish, nil
	case "indonesian", "bahasa indonesia", "id":
		return LanguageIndonesian, nil
	default:
		return "", ErrInvalidInput
	}
}

// Job carries the user-supplied job-posting fields.
// Title, Company and Description are required before generation;
// Requirements and the HR fields degrade gracefully when absent.
type Job struct {
	Title        string
	Company      string
	Description  string
	Requirements string
	HRName       string
	HRRole       string
}

// Request is one letter submission: resume text, resolved contact triple,
// job context and output preferences.
type Request struct {
	ResumeText string
	Contact    contact.Info
	Job        Job
	Language   Language
	WordCount  int
	Date       time.Time
}

// MissingFields lists the required fields that are still empty, in a fixed
// order. Generation must not be attempted while this is non-empty.
func (r Request) MissingFields() []string {
	var missing []string
	add := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	add("name", r.Contact.Name)
	add("email", r.Contact.Email)
	add("phone", r.Contact.Phone)
	add("jobTitle", r.Job.Title)
	add("company", r.Job.Company)
	add("jobDescription", r.Job.Description)
	return missing
}

// MissingFieldsError blocks generation and reports which fields are absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Letter is a generated cover letter kept for re-display and download.
type Letter struct {
	ID            string
	ApplicantName string
	Company       string
	JobTitle      string
	Language      Language
	Text          string
	WordCount     int
	Model         string
	StorageKey    string
	CreatedAt     time.Time
}
