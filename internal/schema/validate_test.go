package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcarvalho/cv-generator/internal/types"
)

func validResume() *types.Resume {
	return &types.Resume{
		Name:         "Ana Souza",
		JobTitle:     "Backend Engineer",
		Introduction: "Engineer focused on APIs.",
		Contact:      &types.ContactInfo{Email: "ana@example.com"},
		Experiences: []types.Experience{
			{
				Company:   "Acme",
				Role:      "Developer",
				StartDate: "2019-01",
				EndDate:   "ongoing",
				Bullets:   []string{"Built internal services"},
				TechStack: []string{"Go"},
			},
		},
		Education: []types.Education{
			{
				Institution: "USP",
				Degree:      "BSc Computer Science",
				StartDate:   "2015-01",
				EndDate:     "2018-12",
			},
		},
		Languages: []types.LanguageSkill{
			{Name: "Portuguese", Level: "Native"},
			{Name: "English", Level: "C1"},
		},
		ExternalLinks: []types.ExternalLink{},
	}
}

func TestValidateResume_Valid(t *testing.T) {
	assert.NoError(t, ValidateResume(validResume()))
}

func TestValidateResume_MissingName(t *testing.T) {
	resume := validResume()
	resume.Name = ""

	err := ValidateResume(resume)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Fields)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateResume_BadDates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Resume)
	}{
		{
			name: "start date cannot be ongoing",
			mutate: func(r *types.Resume) {
				r.Experiences[0].StartDate = "ongoing"
			},
		},
		{
			name: "month out of range",
			mutate: func(r *types.Resume) {
				r.Experiences[0].StartDate = "2021-13"
			},
		},
		{
			name: "education end date cannot be ongoing",
			mutate: func(r *types.Resume) {
				r.Education[0].EndDate = "ongoing"
			},
		},
		{
			name: "free text rejected",
			mutate: func(r *types.Resume) {
				r.Experiences[0].EndDate = "Atual"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := validResume()
			tt.mutate(resume)

			err := ValidateResume(resume)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestValidateResume_EmptyBullets(t *testing.T) {
	resume := validResume()
	resume.Experiences[0].Bullets = []string{}

	err := ValidateResume(resume)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateResume_UnknownLanguageLevel(t *testing.T) {
	resume := validResume()
	resume.Languages[0].Level = "fluent"

	err := ValidateResume(resume)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateResume_OmittedContactAccepted(t *testing.T) {
	resume := validResume()
	resume.Contact = nil
	assert.NoError(t, ValidateResume(resume))
}

func TestValidateCoverLetter_Valid(t *testing.T) {
	letter := &types.CoverLetter{
		Greeting:  "Dear Hiring Manager,",
		Body:      strings.Repeat("I build reliable backend systems. ", 4),
		Signature: "Sincerely,\nAna Souza",
	}
	assert.NoError(t, ValidateCoverLetter(letter))
}

func TestValidateCoverLetter_Violations(t *testing.T) {
	letter := &types.CoverLetter{
		Greeting:  "",
		Body:      "too short",
		Signature: "  ",
	}

	err := ValidateCoverLetter(letter)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"greeting", "body", "signature"}, fields)
}
