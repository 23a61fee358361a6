// Package enrich is the AI producer adapter: it turns scraped about-page
// content into category/summary/offerings/tags via the text-generation
// service, mapping every failure mode onto a well-defined sentinel result.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fairlead/fairlead/internal/model"
	"github.com/fairlead/fairlead/internal/sentinel"
	"github.com/fairlead/fairlead/pkg/anthropic"
)

// maxContentChars bounds the content prefix handed to the service, to bound
// latency and cost.
const maxContentChars = 1800

const enrichPromptTemplate = `Analyze the following startup and provide a comprehensive analysis.

Startup Name: %s

About Content:
%s

Tasks:
1. **Categorize**: Choose the SINGLE most appropriate category from the list below
2. **Summarize**: Create a concise 2-3 sentence summary of what this company does
3. **Key Offerings**: List 2-4 key products/services
4. **Confidence**: Rate your confidence in this categorization (Low/Medium/High)

Available Categories:
%s

Response must be in this EXACT JSON format:
{
    "category": "Category Name",
    "summary": "2-3 sentence summary here",
    "key_offerings": ["Product 1", "Product 2", "Product 3"],
    "confidence": "High|Medium|Low",
    "tags": ["tag1", "tag2", "tag3"]
}

IMPORTANT:
- Return ONLY valid JSON, no markdown formatting, no additional text
- Make the summary actionable and clear
- Tags should be relevant technology/domain keywords (3-5 tags)`

const summaryPromptTemplate = `Generate a concise 2-3 sentence summary for this startup.

Startup Name: %s

About Content:
%s

Instructions:
- Write 2-3 clear, informative sentences
- Focus on what the company does and their key value proposition
- Be specific and factual
- Avoid marketing language

Return ONLY the summary text, no JSON or additional formatting.`

// Enrichment is the producer output for one record.
type Enrichment struct {
	Category     string           `json:"category"`
	Summary      string           `json:"summary"`
	KeyOfferings []string         `json:"key_offerings"`
	Tags         []string         `json:"tags"`
	Confidence   model.Confidence `json:"confidence"`
}

// NoDataResult is the sentinel produced when there was nothing to analyze.
// Distinct from ErrorResult: downstream both mean "needs reprocessing", but
// reporting and tests must tell them apart.
func NoDataResult() Enrichment {
	return Enrichment{
		Category:     sentinel.CategoryNoData,
		Summary:      sentinel.SummaryNoInfoStartup,
		KeyOfferings: []string{},
		Tags:         []string{},
		Confidence:   model.ConfidenceLow,
	}
}

// ErrorResult is the sentinel produced when analysis was attempted and
// failed (transport error or unparsable output).
func ErrorResult() Enrichment {
	return Enrichment{
		Category:     sentinel.CategoryError,
		Summary:      sentinel.SummaryAIFailed,
		KeyOfferings: []string{},
		Tags:         []string{},
		Confidence:   model.ConfidenceLow,
	}
}

// Producer calls the text-generation service and parses its JSON output.
type Producer struct {
	client anthropic.Client
	model  string
}

// NewProducer creates a Producer using the given model.
func NewProducer(client anthropic.Client, modelName string) *Producer {
	return &Producer{client: client, model: modelName}
}

// Produce enriches one record from its about content. It never returns an
// Enrichment in an ambiguous state: on empty content it returns the NoData
// sentinel (without calling the API), and on any call or parse failure it
// returns the Error sentinel alongside the error.
func (p *Producer) Produce(ctx context.Context, name, content string) (Enrichment, error) {
	if strings.TrimSpace(content) == "" {
		return NoDataResult(), nil
	}

	prompt := buildEnrichPrompt(name, content)
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return ErrorResult(), eris.Wrap(err, "enrich: create message")
	}

	enrichment, err := parseEnrichment(resp.Text())
	if err != nil {
		zap.L().Warn("enrich: unparsable response",
			zap.String("name", name),
			zap.Error(err),
		)
		return ErrorResult(), err
	}
	return enrichment, nil
}

// ProduceSummary generates only a summary, used by the enhancement stage for
// records whose enrichment-tier summary is still a sentinel. Returns "" when
// content is too thin to summarize.
func (p *Producer) ProduceSummary(ctx context.Context, name, content string) (string, error) {
	if len(strings.TrimSpace(content)) < 50 {
		return "", nil
	}

	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: 512,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(summaryPromptTemplate, name, content)},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "enrich: summary message")
	}
	return strings.TrimSpace(resp.Text()), nil
}

func buildEnrichPrompt(name, content string) string {
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}
	var cats strings.Builder
	for _, c := range model.Categories {
		cats.WriteString("- ")
		cats.WriteString(c)
		cats.WriteString("\n")
	}
	return fmt.Sprintf(enrichPromptTemplate, name, content, strings.TrimRight(cats.String(), "\n"))
}

// parseEnrichment parses the service's JSON output, tolerating markdown code
// fences, and validates it against the closed taxonomy and schema.
func parseEnrichment(text string) (Enrichment, error) {
	cleaned := CleanJSON(text)

	var e Enrichment
	if err := json.Unmarshal([]byte(cleaned), &e); err != nil {
		return Enrichment{}, eris.Wrap(err, "enrich: parse response")
	}

	if e.Category == "" || e.Summary == "" {
		return Enrichment{}, eris.New("enrich: response missing category or summary")
	}
	if !model.ValidCategory(e.Category) {
		e.Category = model.CategoryOther
	}
	if !e.Confidence.Valid() {
		e.Confidence = model.ConfidenceLow
	}
	if e.KeyOfferings == nil {
		e.KeyOfferings = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}

// CleanJSON extracts a JSON object from text that may be wrapped in markdown
// code fences or surrounding prose.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
