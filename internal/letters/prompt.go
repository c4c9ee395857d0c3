package letters

import (
	"fmt"
	"strings"
)

const promptDateLayout = "02 January 2006"

// GreetingTarget resolves who the letter is addressed to: "{name}, {role}"
// when both HR fields are given, the name alone when only the name is given,
// and "the Hiring Manager" otherwise.
func GreetingTarget(hrName, hrRole string) string {
	hrName = strings.TrimSpace(hrName)
	hrRole = strings.TrimSpace(hrRole)
	switch {
	case hrName != "" && hrRole != "":
		return fmt.Sprintf("%s, %s", hrName, hrRole)
	case hrName != "":
		return hrName
	default:
		return "the Hiring Manager"
	}
}

func languageInstruction(lang Language) string {
	if lang == LanguageIndonesian {
		return "Indonesian (Bahasa Indonesia)"
	}
	return "English"
}

// BuildPrompt assembles the generation instruction from the request.
// The assembly is pure string interpolation: the same request always yields
// the same prompt.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are a professional cover letter writer. Your task is to create an engaging, professional, and customized cover letter using the following information.\n\n")

	fmt.Fprintf(&b, "Date: %s\n\n", req.Date.Format(promptDateLayout))

	b.WriteString("Applicant:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.Contact.Name)
	fmt.Fprintf(&b, "- Email: %s\n", req.Contact.Email)
	fmt.Fprintf(&b, "- Phone: %s\n\n", req.Contact.Phone)

	b.WriteString("Resume (analyze for achievements, skills, and experiences):\n")
	b.WriteString(req.ResumeText)
	b.WriteString("\n\n")

	b.WriteString("Job:\n")
	fmt.Fprintf(&b, "- Position: %s\n", req.Job.Title)
	fmt.Fprintf(&b, "- Company: %s\n", req.Job.Company)
	fmt.Fprintf(&b, "- Description: %s\n", req.Job.Description)
	fmt.Fprintf(&b, "- Requirements: %s\n\n", req.Job.Requirements)

	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "- Write the letter in %s.\n", languageInstruction(req.Language))
	fmt.Fprintf(&b, "- Target approximately %d words (+/- 15%% is acceptable).\n", req.WordCount)
	fmt.Fprintf(&b, "- Address the letter to %s.\n\n", GreetingTarget(req.Job.HRName, req.Job.HRRole))

	b.WriteString("Structure and tone:\n")
	b.WriteString("1. Header: the applicant's contact details, the date, and the recipient/company details.\n")
	b.WriteString("2. Salutation: use the specific name if one is given, otherwise \"Dear Hiring Manager\".\n")
	fmt.Fprintf(&b, "3. Introduction: show enthusiasm and suitability for the %s role.\n", req.Job.Title)
	fmt.Fprintf(&b, "4. Body: match the top two or three job requirements with real achievements and skills from the resume, and highlight the value the applicant brings to %s.\n", req.Job.Company)
	b.WriteString("5. Closing: reaffirm interest and politely invite follow-up.\n")
	b.WriteString("6. Signature: the applicant's full name.\n\n")

	b.WriteString("Critical rules:\n")
	b.WriteString("1. Do not include any placeholder text in square brackets such as [Your Name], [Date], or [Company Name]; use the actual values provided above.\n")
	b.WriteString("2. Do not invent experience, skills, or achievements that are not present in the resume.\n")
	b.WriteString("3. Avoid generic claims the resume cannot support.\n")
	b.WriteString("4. Quantify achievements wherever the resume provides numbers.\n")
	b.WriteString("5. Do not include any physical address, and do not ask for one to be filled in.\n\n")

	b.WriteString("Do not copy the resume. Synthesize it into a flowing, impactful letter. Output only the letter text.\n")

	return b.String()
}
