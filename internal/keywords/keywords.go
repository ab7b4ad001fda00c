// Package keywords implements a deterministic technology keyword spotter.
// It is the fallback used when an experience entry arrives without a usable
// tech-stack list: the entry's own text and the job description are scanned
// against a fixed vocabulary.
package keywords

import (
	"regexp"
	"strings"
)

// maxKeywords caps the number of fallback keywords per experience entry.
const maxKeywords = 10

var vocabulary = []string{
	"Python", "FastAPI", "Flask", "Django",
	"Java", "Spring",
	"JavaScript", "TypeScript", "React", "Next.js", "Vue", "Angular",
	"Node.js", "Express", "NestJS",
	"PHP", "Laravel",
	"Ruby", "Ruby on Rails",
	"Go", "Golang", "Rust",
	"C", "C++", "C#", ".NET", "ASP.NET",
	"Kotlin", "Swift", "Objective-C",
	"SQL", "MySQL", "PostgreSQL", "SQLite", "MongoDB", "Redis", "Elasticsearch",
	"GraphQL", "REST", "gRPC",
	"Docker", "Kubernetes",
	"AWS", "Azure", "GCP",
	"Terraform", "Ansible", "CI/CD",
	"Git", "GitHub Actions", "Bitbucket", "Jenkins",
	"Linux", "Bash", "PowerShell",
	"HTML", "CSS", "SASS", "Tailwind", "Bootstrap",
	"Figma", "Photoshop", "Illustrator",
	"Tableau", "Power BI",
	"Airflow", "Spark", "Hadoop",
	"Pandas", "NumPy", "TensorFlow", "PyTorch", "Scikit-Learn",
	"Machine Learning", "Data Science", "ETL", "NoSQL",
	"Microservices", "Event-Driven",
}

type keywordPattern struct {
	re    *regexp.Regexp
	label string
}

var patterns = compilePatterns(vocabulary)

// compilePatterns builds word-boundary matchers over the lowercased corpus.
// RE2 has no lookarounds, so boundaries are expressed as non-word characters
// or string edges; this keeps "Go" from matching inside "Google" while still
// matching punctuated terms like "C++" and ".NET".
func compilePatterns(words []string) []keywordPattern {
	out := make([]keywordPattern, 0, len(words))
	for _, word := range words {
		escaped := regexp.QuoteMeta(strings.ToLower(word))
		re := regexp.MustCompile(`(?:^|\W)` + escaped + `(?:\W|$)`)
		out = append(out, keywordPattern{re: re, label: word})
	}
	return out
}

// Extract scans the given texts in argument order and returns up to ten
// vocabulary entries in first-seen order, deduplicated case-insensitively.
// Empty texts are skipped.
func Extract(texts ...string) []string {
	found := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{}, maxKeywords)

	for _, text := range texts {
		if text == "" {
			continue
		}
		lowered := strings.ToLower(text)
		for _, p := range patterns {
			if _, ok := seen[p.label]; ok {
				continue
			}
			if p.re.MatchString(lowered) {
				seen[p.label] = struct{}{}
				found = append(found, p.label)
			}
		}
	}

	if len(found) > maxKeywords {
		found = found[:maxKeywords]
	}
	return found
}
