package pipeline

import (
	"fmt"

	"github.com/mfcarvalho/cv-generator/internal/types"
)

var toneInstructions = map[string]string{
	types.ToneProfissional: "Use a formal, professional tone with industry-standard terminology.",
	types.ToneNeutro:       "Use a neutral, straightforward tone without embellishments.",
	types.ToneCriativo:     "Use a creative, engaging tone that highlights personality while remaining professional.",
}

var greetingDefaults = map[string]string{
	types.LanguagePTBR: "Prezado(a) Recrutador(a),",
	types.LanguageENUS: "Dear Hiring Manager,",
}

var signatureDefaults = map[string]string{
	types.LanguagePTBR: "Atenciosamente,\n%s",
	types.LanguageENUS: "Sincerely,\n%s",
}

func toneInstruction(tone string) string {
	if instruction, ok := toneInstructions[tone]; ok {
		return instruction
	}
	return toneInstructions[types.ToneProfissional]
}

// applyLocaleDefaults fills greeting and signature with locale templates when
// the provider omitted them.
func applyLocaleDefaults(letter *types.CoverLetter, language, candidateName string) {
	if letter.Greeting == "" {
		greeting, ok := greetingDefaults[language]
		if !ok {
			greeting = greetingDefaults[types.LanguagePTBR]
		}
		letter.Greeting = greeting
	}
	if letter.Signature == "" {
		template, ok := signatureDefaults[language]
		if !ok {
			template = signatureDefaults[types.LanguagePTBR]
		}
		letter.Signature = fmt.Sprintf(template, candidateName)
	}
}
