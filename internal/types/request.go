package types

// GenerateRequest is the inbound request record for all generation endpoints.
type GenerateRequest struct {
	CandidateText string `json:"candidate_text" validate:"required"`
	JobText       string `json:"job_text" validate:"required"`
	Language      string `json:"language" validate:"omitempty,oneof=pt-BR en-US"`
	Tone          string `json:"tone" validate:"omitempty,oneof=profissional neutro criativo"`
}

// ApplyDefaults fills the optional enum fields with their documented defaults.
func (r *GenerateRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = LanguagePTBR
	}
	if r.Tone == "" {
		r.Tone = ToneProfissional
	}
}

// GenerateResponse bundles both generated documents.
type GenerateResponse struct {
	Resume      *Resume      `json:"resume"`
	CoverLetter *CoverLetter `json:"cover_letter"`
}
