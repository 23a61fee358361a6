// Package sentinel is the single source of truth for which field values mean
// "not yet produced". Every stage consults the same tables both when
// deciding whether to run a producer and when accepting a produced value, so
// the two decisions can never drift apart.
package sentinel

import "github.com/fairlead/fairlead/internal/model"

// Category sentinels. CategoryError means an AI call was attempted and
// failed; CategoryNoData means there was nothing to analyze. Reporting must
// never merge the two buckets.
const (
	CategoryError   = "Error"
	CategoryNoData  = "No Data"
	CategoryUnknown = "Unknown"
	// CategoryUncategorized is the fill stage's terminal value when no
	// content exists for the local categorizer. It is not "missing":
	// re-running the cascade would produce it again.
	CategoryUncategorized = "Uncategorized"
)

// Summary sentinels.
const (
	SummaryNoInfo        = "No information available"
	SummaryAIFailed      = "Failed to process with AI"
	SummaryNoInfoStartup = "No information available for this startup."
	// SummaryUnavailable is the fill stage's terminal value.
	SummaryUnavailable = "Information not available."
)

// Field names the per-field sentinel policy is defined over.
type Field string

const (
	FieldWebsite      Field = "website"
	FieldAboutContent Field = "about_content"
	FieldCategory     Field = "category"
	FieldSummary      Field = "summary"
	FieldKeyOfferings Field = "key_offerings"
	FieldTags         Field = "tags"
	FieldLinkedIn     Field = "linkedin_url"
)

// AllFields returns every field the pipeline can produce.
func AllFields() []Field {
	return []Field{
		FieldWebsite,
		FieldAboutContent,
		FieldCategory,
		FieldSummary,
		FieldKeyOfferings,
		FieldTags,
		FieldLinkedIn,
	}
}

var categoryMissing = map[string]bool{
	"":              true,
	CategoryError:   true,
	CategoryNoData:  true,
	CategoryUnknown: true,
}

var summaryMissing = map[string]bool{
	"":                   true,
	SummaryNoInfo:        true,
	SummaryAIFailed:      true,
	SummaryNoInfoStartup: true,
}

// CategoryMissing reports whether a category value still needs producing.
func CategoryMissing(v string) bool { return categoryMissing[v] }

// SummaryMissing reports whether a summary value still needs producing.
func SummaryMissing(v string) bool { return summaryMissing[v] }

// LinkedInMissing reports whether a linkedin_url value still needs producing.
func LinkedInMissing(v string) bool { return v == "" }

// OfferingsMissing reports whether key offerings still need producing.
func OfferingsMissing(v []string) bool { return len(v) == 0 }

// TagsMissing reports whether tags still need producing.
func TagsMissing(v []string) bool { return len(v) == 0 }

// Missing reports whether the named field of rec is absent or holds a
// sentinel value. It is total over AllFields; unknown fields are treated as
// present so a typo can never cause endless reprocessing.
func Missing(f Field, rec model.Record) bool {
	switch f {
	case FieldWebsite:
		return rec.Website == ""
	case FieldAboutContent:
		return rec.AboutContent == ""
	case FieldCategory:
		return CategoryMissing(rec.Category)
	case FieldSummary:
		return SummaryMissing(rec.Summary)
	case FieldKeyOfferings:
		return OfferingsMissing(rec.KeyOfferings)
	case FieldTags:
		return TagsMissing(rec.Tags)
	case FieldLinkedIn:
		return LinkedInMissing(rec.LinkedInURL)
	default:
		return false
	}
}

// NeedsSummary reports whether the AI enrichment for rec should be
// (re)attempted: either categorization never produced a real label or the
// summary is still a placeholder.
func NeedsSummary(rec model.Record) bool {
	return CategoryMissing(rec.Category) || SummaryMissing(rec.Summary)
}

// NeedsEnhancement is the record-level predicate gating entry into the
// enhancement stages: any relevant field still missing admits the record.
func NeedsEnhancement(rec model.Record) bool {
	return NeedsSummary(rec) || LinkedInMissing(rec.LinkedInURL)
}
