// Package fallback implements the local, deterministic producer tier:
// sentence-extraction summaries and keyword-scoring categorization. It is
// used only when the AI tier's output is still a missing sentinel, and it
// makes no external calls.
package fallback

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fairlead/fairlead/internal/model"
)

const (
	minSourceLen   = 20
	minSentenceLen = 5
	targetChars    = 350
	maxSentences   = 3
	maxSummaryLen  = 400
)

// boilerplateMarkers disqualify a sentence from summary extraction.
var boilerplateMarkers = []string{"cookie", "copyright"}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	prefixRe     = regexp.MustCompile(`(?i)^(About Us|Our Story|Welcome to|Who We Are)[\s\-:]+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]*[.!?]+|[^.!?]+$`)
)

// CleanText normalizes scraped text: collapses whitespace and strips common
// "About Us" style page prefixes.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	return prefixRe.ReplaceAllString(text, "")
}

// ExtractSummary builds a summary from the leading meaningful sentences of
// cleaned text. Sentences shorter than 5 chars or containing boilerplate
// markers are dropped; accumulation stops after 3 sentences or once the
// running length exceeds 350 chars. The result is capped at 400 chars plus
// an ellipsis. Returns "" when the source is absent or under 20 chars.
func ExtractSummary(text string) string {
	if len(text) < minSourceLen {
		return ""
	}

	var picked []string
	var charCount int
	for _, raw := range sentenceRe.FindAllString(text, -1) {
		sent := strings.TrimSpace(raw)
		if len(sent) < minSentenceLen || isBoilerplate(sent) {
			continue
		}
		picked = append(picked, sent)
		charCount += len(sent)
		if len(picked) >= maxSentences || charCount > targetChars {
			break
		}
	}

	if len(picked) == 0 {
		return ""
	}

	summary := strings.Join(picked, " ")
	if len(summary) > maxSummaryLen {
		// Back off to a rune boundary so the cut never leaves a split
		// multi-byte character before the ellipsis.
		cut := maxSummaryLen
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		return summary[:cut] + "..."
	}
	return summary
}

func isBoilerplate(sent string) bool {
	lower := strings.ToLower(sent)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// categoryKeywords maps taxonomy labels to scoring keywords. Order matters:
// on a score tie the earlier entry wins, so the slice encodes the tie-break
// priority as well as the keyword table.
type categoryEntry struct {
	Category string
	Keywords []string
}

var categoryKeywords = []categoryEntry{
	{"Healthcare & Biotech", []string{"health", "medical", "patient", "diagnostic", "clinic", "hospital", "pharma", "biotech"}},
	{"Fintech & Banking", []string{"finance", "bank", "payment", "fintech", "loan", "credit", "wealth", "insurtech", "invest"}},
	{"Education & EdTech", []string{"education", "learning", "student", "school", "training", "edtech", "course", "skill", "university", "academy"}},
	{"Agriculture & AgriTech", []string{"farm", "agri", "crop", "harvest", "soil", "cattle", "dairy", "livestock"}},
	{"Cybersecurity", []string{"security", "cyber", "protection", "threat", "firewall", "auth", "defense", "secure"}},
	{"E-commerce & Retail", []string{"retail", "ecommerce", "shop", "store", "buy", "sell", "marketplace", "consumer"}},
	{"Robotics & Automation", []string{"robot", "drone", "automation", "autonomous", "unmanned"}},
	{"Logistics & Supply Chain", []string{"logistics", "supply chain", "transport", "delivery", "fleet", "warehouse"}},
	{"Real Estate & PropTech", []string{"real estate", "property", "housing", "construction", "building"}},
	{"HR & Workforce Management", []string{"hr", "recruitment", "hiring", "talent", "employee", "workforce"}},
	{"Marketing & Sales Tech", []string{"marketing", "sales", "adtech", "brand", "customer", "crm"}},
	{"Climate & Sustainability", []string{"climate", "sustainable", "carbon", "energy", "solar", "waste", "water", "green"}},
	{"AI/ML Infrastructure & Tools", []string{"ai", "machine learning", "ml", "data", "analytics", "cloud", "software", "platform", "algorithm", "model"}},
}

// Categorize infers a taxonomy label by counting keyword occurrences in the
// case-folded text. The highest score wins; ties go to the category declared
// first in the table. No match at all returns "Other".
func Categorize(text string) string {
	if text == "" {
		return model.CategoryOther
	}

	lower := strings.ToLower(text)
	best := model.CategoryOther
	bestScore := 0
	for _, entry := range categoryKeywords {
		score := 0
		for _, kw := range entry.Keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best = entry.Category
			bestScore = score
		}
	}
	return best
}
