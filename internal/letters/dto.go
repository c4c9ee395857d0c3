package letters

import (
	"time"

	"coverletter-backend/internal/contact"
)

type generateRequest struct {
	ResumeText      string `json:"resumeText"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	JobTitle        string `json:"jobTitle"`
	Company         string `json:"company"`
	JobDescription  string `json:"jobDescription"`
	JobRequirements string `json:"jobRequirements"`
	HRName          string `json:"hrName"`
	HRRole          string `json:"hrRole"`
	WordCount       int    `json:"wordCount"`
	Language        string `json:"language"`
}

func (r generateRequest) toRequest(lang Language) Request {
	return Request{
		ResumeText: r.ResumeText,
		Contact: contact.Info{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
		},
		Job: Job{
			Title:        r.JobTitle,
			Company:      r.Company,
			Description:  r.JobDescription,
			Requirements: r.JobRequirements,
			HRName:       r.HRName,
			HRRole:       r.HRRole,
		},
		Language:  lang,
		WordCount: r.WordCount,
	}
}

// LetterResponse is the outward-facing representation of a generated letter.
type LetterResponse struct {
	LetterID   string    `json:"letterId"`
	Letter     string    `json:"letter,omitempty"`
	Company    string    `json:"company"`
	JobTitle   string    `json:"jobTitle"`
	Language   string    `json:"language"`
	Words      int       `json:"words"`
	Paragraphs int       `json:"paragraphs"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toResponse(letter Letter, paragraphs int, includeText bool) LetterResponse {
	resp := LetterResponse{
		LetterID:   letter.ID,
		Company:    letter.Company,
		JobTitle:   letter.JobTitle,
		Language:   string(letter.Language),
		Words:      letter.WordCount,
		Paragraphs: paragraphs,
		CreatedAt:  letter.CreatedAt,
	}
	if includeText {
		resp.Letter = letter.Text
	}
	return resp
}
