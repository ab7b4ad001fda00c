package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_JSONShape(t *testing.T) {
	resume := Resume{
		Name:          "Ana Souza",
		JobTitle:      "Backend Engineer",
		Introduction:  "Engineer focused on APIs.",
		Contact:       &ContactInfo{Email: "ana@example.com"},
		Experiences:   []Experience{},
		Education:     []Education{},
		Languages:     []LanguageSkill{},
		ExternalLinks: []ExternalLink{},
	}

	data, err := json.Marshal(resume)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"job_title":"Backend Engineer"`)
	assert.Contains(t, text, `"contact_information":{"email":"ana@example.com"}`)

	// Empty collections marshal as arrays, not null.
	assert.Contains(t, text, `"experiences":[]`)
	assert.Contains(t, text, `"external_links":[]`)
}

func TestResume_ContactOmittedWhenNil(t *testing.T) {
	resume := Resume{Name: "Ana"}
	data, err := json.Marshal(resume)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "contact_information")
}

func TestGenerateRequest_ApplyDefaults(t *testing.T) {
	req := GenerateRequest{CandidateText: "a", JobText: "b"}
	req.ApplyDefaults()
	assert.Equal(t, LanguagePTBR, req.Language)
	assert.Equal(t, ToneProfissional, req.Tone)

	req = GenerateRequest{CandidateText: "a", JobText: "b", Language: LanguageENUS, Tone: ToneNeutro}
	req.ApplyDefaults()
	assert.Equal(t, LanguageENUS, req.Language)
	assert.Equal(t, ToneNeutro, req.Tone)
}
