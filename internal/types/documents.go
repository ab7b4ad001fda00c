// Package types defines the canonical document shapes exchanged with the API.
package types

// Language codes accepted by the generation API.
const (
	LanguagePTBR = "pt-BR"
	LanguageENUS = "en-US"
)

// Tone options accepted by the generation API.
const (
	ToneProfissional = "profissional"
	ToneNeutro       = "neutro"
	ToneCriativo     = "criativo"
)

// ContactInfo holds optional contact fields. The whole object is omitted
// from a Resume when every field is empty after cleaning.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience is one work history entry. EndDate is either a "YYYY-MM" token
// or the ongoing sentinel; StartDate is always a calendar month.
type Experience struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Bullets   []string `json:"bullets"`
	TechStack []string `json:"tech_stack"`
}

// Education is one education entry. Neither date may be the ongoing sentinel.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// LanguageSkill pairs a language name with a CEFR-style proficiency level.
type LanguageSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ExternalLink is kept only when both label and URL survive cleaning.
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Resume is the post-normalization, schema-valid resume document.
type Resume struct {
	Name          string          `json:"name"`
	JobTitle      string          `json:"job_title"`
	Introduction  string          `json:"introduction"`
	Contact       *ContactInfo    `json:"contact_information,omitempty"`
	Experiences   []Experience    `json:"experiences"`
	Education     []Education     `json:"education"`
	Languages     []LanguageSkill `json:"languages"`
	ExternalLinks []ExternalLink  `json:"external_links"`
}

// CoverLetter is the canonical cover letter document.
type CoverLetter struct {
	Greeting  string `json:"greeting"`
	Body      string `json:"body"`
	Signature string `json:"signature"`
}
