package contact

import (
	"regexp"
	"strings"
	"unicode"
)

// Info is the contact triple pulled from résumé text. An empty field means
// extraction found nothing and the caller must collect the value manually.
type Info struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Name extraction only ever inspects the top of the document; résumés put the
// applicant's name near the first line.
const nameScanLines = 10

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	phoneRe = regexp.MustCompile(`(\+62|62|08)[0-9\s-]{8,}`)
)

// Extract scans résumé text for the applicant's name, email address, and
// Indonesian-style phone number. Pure function: no state, identical input
// yields identical output.
func Extract(text string) Info {
	return Info{
		Name:  extractName(text),
		Email: emailRe.FindString(text),
		Phone: extractPhone(text),
	}
}

// MissingFields lists which of the three fields are absent, in a fixed order.
func (i Info) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(i.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(i.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(i.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// extractPhone returns the first +62/62/08 number run of eight or more
// digits/spaces/hyphens that is not glued to a preceding digit. RE2 has no
// lookbehind, so digit adjacency is checked by re-scanning from the character
// after a rejected start. The greedy class swallows separators past the last
// digit (including a line break after the number), so the match is trimmed
// back to its final digit.
func extractPhone(text string) string {
	pos := 0
	for pos < len(text) {
		loc := phoneRe.FindStringIndex(text[pos:])
		if loc == nil {
			return ""
		}
		start, end := pos+loc[0], pos+loc[1]
		if start == 0 || !isASCIIDigit(text[start-1]) {
			return strings.TrimRight(text[start:end], " \t\r\n-")
		}
		pos = start + 1
	}
	return ""
}

// extractName returns the first non-empty line among the first ten whose
// first character is uppercase.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if unicode.IsUpper([]rune(trimmed)[0]) {
			return trimmed
		}
	}
	return ""
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
