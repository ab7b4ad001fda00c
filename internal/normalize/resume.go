// Package normalize transforms pruned LLM output into the canonical resume
// shape. It composes the sanitize, dates and keywords packages; downstream
// schema validation is the gate that rejects empty mandatory fields.
package normalize

import (
	"fmt"
	"strings"

	"github.com/mfcarvalho/cv-generator/internal/dates"
	"github.com/mfcarvalho/cv-generator/internal/keywords"
	"github.com/mfcarvalho/cv-generator/internal/sanitize"
	"github.com/mfcarvalho/cv-generator/internal/types"
)

// Resume normalizes a raw extracted/generated record. Scalar fields default
// to "" when cleaning yields nothing; contact information is dropped entirely
// when every sub-field ends up empty; a first invalid date aborts with a
// DateError carrying the field path. Normalizing an already-canonical record
// is a no-op.
func Resume(raw map[string]any, jobText string) (*types.Resume, error) {
	out := &types.Resume{
		Name:          sanitize.Clean(str(raw, "name"), sanitize.MaxName),
		JobTitle:      sanitize.Clean(str(raw, "job_title"), sanitize.MaxJobTitle),
		Introduction:  sanitize.Clean(str(raw, "introduction"), sanitize.MaxIntro),
		Experiences:   []types.Experience{},
		Education:     []types.Education{},
		Languages:     []types.LanguageSkill{},
		ExternalLinks: []types.ExternalLink{},
	}

	if contact, ok := raw["contact_information"].(map[string]any); ok {
		info := &types.ContactInfo{
			Email:    sanitize.Clean(str(contact, "email"), sanitize.MaxContactField),
			Phone:    sanitize.Clean(str(contact, "phone"), sanitize.MaxContactField),
			Location: sanitize.Clean(str(contact, "location"), sanitize.MaxContactField),
		}
		if info.Email != "" || info.Phone != "" || info.Location != "" {
			out.Contact = info
		}
	}

	for i, item := range list(raw, "experiences") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		exp, err := normalizeExperience(entry, i, jobText)
		if err != nil {
			return nil, err
		}
		out.Experiences = append(out.Experiences, exp)
	}

	for i, item := range list(raw, "education") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		edu := types.Education{
			Institution: sanitize.Clean(str(entry, "institution"), sanitize.MaxEduField),
			Degree:      sanitize.Clean(str(entry, "degree"), sanitize.MaxEduField),
		}
		start, err := dates.Normalize(str(entry, "start_date"), false)
		if err != nil {
			return nil, &DateError{Field: fmt.Sprintf("education[%d].start_date", i), Cause: err}
		}
		end, err := dates.Normalize(str(entry, "end_date"), false)
		if err != nil {
			return nil, &DateError{Field: fmt.Sprintf("education[%d].end_date", i), Cause: err}
		}
		edu.StartDate = start
		edu.EndDate = end
		out.Education = append(out.Education, edu)
	}

	for _, item := range list(raw, "languages") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out.Languages = append(out.Languages, types.LanguageSkill{
			Name:  sanitize.Clean(str(entry, "name"), sanitize.MaxLanguageName),
			Level: sanitize.Clean(str(entry, "level"), 10),
		})
	}

	for _, item := range list(raw, "external_links") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		link := types.ExternalLink{
			Label: sanitize.Clean(str(entry, "label"), sanitize.MaxLinkLabel),
			URL:   sanitize.Clean(str(entry, "url"), sanitize.MaxLinkURL),
		}
		if link.Label != "" && link.URL != "" {
			out.ExternalLinks = append(out.ExternalLinks, link)
		}
	}

	return out, nil
}

func normalizeExperience(entry map[string]any, index int, jobText string) (types.Experience, error) {
	exp := types.Experience{
		Company:  sanitize.Clean(str(entry, "company"), sanitize.MaxName),
		Role:     sanitize.Clean(str(entry, "role"), sanitize.MaxJobTitle),
		Location: sanitize.Clean(str(entry, "location"), sanitize.MaxLocation),
	}

	start, err := dates.Normalize(str(entry, "start_date"), false)
	if err != nil {
		return exp, &DateError{Field: fmt.Sprintf("experiences[%d].start_date", index), Cause: err}
	}
	end, err := dates.Normalize(str(entry, "end_date"), true)
	if err != nil {
		return exp, &DateError{Field: fmt.Sprintf("experiences[%d].end_date", index), Cause: err}
	}
	exp.StartDate = start
	exp.EndDate = end

	exp.Bullets = []string{}
	for _, bullet := range list(entry, "bullets") {
		text, ok := bullet.(string)
		if !ok {
			continue
		}
		if cleaned := sanitize.Clean(text, sanitize.MaxBullet); cleaned != "" {
			exp.Bullets = append(exp.Bullets, cleaned)
		}
	}

	exp.TechStack = dedupeTechStack(list(entry, "tech_stack"))
	if len(exp.TechStack) == 0 {
		fallback := append([]string{exp.Role, exp.Company}, exp.Bullets...)
		fallback = append(fallback, jobText)
		exp.TechStack = keywords.Extract(fallback...)
	}
	return exp, nil
}

// dedupeTechStack cleans each item and drops case-insensitive duplicates,
// keeping first-seen order.
func dedupeTechStack(items []any) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			continue
		}
		cleaned := sanitize.Clean(text, sanitize.MaxTechItem)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func list(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}
