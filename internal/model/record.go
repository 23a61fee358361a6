// Package model defines the exhibitor record, its enums, and the persisted
// envelope shared by every pipeline stage.
package model

// Status is the fetch-stage outcome for a record.
type Status string

const (
	StatusPending            Status = "pending"
	StatusSuccess            Status = "success"
	StatusWebsiteNotFound    Status = "website_not_found"
	StatusContentFetchFailed Status = "content_fetch_failed"
)

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusSuccess,
		StatusWebsiteNotFound,
		StatusContentFetchFailed,
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range AllStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Confidence marks the provenance/quality tier of produced fields.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	// ConfidenceExtracted marks values produced by the local fallback
	// heuristics rather than the AI tier. Never conflated with AI
	// confidence in reporting.
	ConfidenceExtracted Confidence = "Low (Extracted)"
)

// AllConfidences returns every valid confidence tier in declaration order.
func AllConfidences() []Confidence {
	return []Confidence{
		ConfidenceHigh,
		ConfidenceMedium,
		ConfidenceLow,
		ConfidenceExtracted,
	}
}

// Valid reports whether c is a known confidence tier.
func (c Confidence) Valid() bool {
	for _, v := range AllConfidences() {
		if c == v {
			return true
		}
	}
	return false
}

// Record is one exhibitor. Name is the primary key and the sole join key
// between stages; matching is exact and case-sensitive. Fields are added
// progressively by stages and never removed.
type Record struct {
	Name         string     `json:"name"`
	Website      string     `json:"website,omitempty"`
	AboutPageURL string     `json:"about_page_url,omitempty"`
	AboutContent string     `json:"about_content,omitempty"`
	Status       Status     `json:"status,omitempty"`
	Hall         string     `json:"hall,omitempty"`
	SpaceSqm     string     `json:"space_sqm,omitempty"`
	LogoURL      string     `json:"logo_url,omitempty"`
	Category     string     `json:"category,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	KeyOfferings []string   `json:"key_offerings,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Confidence   Confidence `json:"confidence,omitempty"`
	LinkedInURL  string     `json:"linkedin_url,omitempty"`
}

// Envelope is the persisted per-stage output schema. Re-running a stage
// reads this exact schema to resume.
type Envelope struct {
	Total     int      `json:"total"`
	Timestamp string   `json:"timestamp"`
	ModelUsed string   `json:"model_used,omitempty"`
	Results   []Record `json:"results"`
}
