package sentinel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairlead/fairlead/internal/model"
)

func TestCategoryMissing(t *testing.T) {
	tests := []struct {
		value   string
		missing bool
	}{
		{"", true},
		{CategoryError, true},
		{CategoryNoData, true},
		{CategoryUnknown, true},
		{CategoryUncategorized, false},
		{"Healthcare & Biotech", false},
		{"Other", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.missing, CategoryMissing(tt.value), "value %q", tt.value)
	}
}

func TestSummaryMissing(t *testing.T) {
	tests := []struct {
		value   string
		missing bool
	}{
		{"", true},
		{SummaryNoInfo, true},
		{SummaryAIFailed, true},
		{SummaryNoInfoStartup, true},
		{SummaryUnavailable, false},
		{"Builds rockets.", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.missing, SummaryMissing(tt.value), "value %q", tt.value)
	}
}

func TestErrorAndNoDataAreDistinctButBothMissing(t *testing.T) {
	assert.NotEqual(t, CategoryError, CategoryNoData)
	assert.True(t, CategoryMissing(CategoryError))
	assert.True(t, CategoryMissing(CategoryNoData))
}

func TestMissingIsTotalOverAllFields(t *testing.T) {
	empty := model.Record{Name: "X"}
	for _, f := range AllFields() {
		assert.True(t, Missing(f, empty), "field %s on empty record", f)
	}

	full := model.Record{
		Name:         "X",
		Website:      "https://x.example",
		AboutContent: "content",
		Category:     "Other",
		Summary:      "Does things.",
		KeyOfferings: []string{"a"},
		Tags:         []string{"b"},
		LinkedInURL:  "https://www.linkedin.com/company/x",
	}
	for _, f := range AllFields() {
		assert.False(t, Missing(f, full), "field %s on full record", f)
	}
}

func TestMissingUnknownFieldIsPresent(t *testing.T) {
	// An unrecognized field must never admit a record to reprocessing.
	assert.False(t, Missing(Field("no_such_field"), model.Record{}))
}

func TestNeedsSummary(t *testing.T) {
	assert.True(t, NeedsSummary(model.Record{Category: CategoryError, Summary: "fine"}))
	assert.True(t, NeedsSummary(model.Record{Category: "Other", Summary: SummaryAIFailed}))
	assert.False(t, NeedsSummary(model.Record{Category: "Other", Summary: "fine"}))
}

func TestNeedsEnhancement(t *testing.T) {
	settled := model.Record{
		Category:    "Other",
		Summary:     "fine",
		LinkedInURL: "https://www.linkedin.com/company/x",
	}
	assert.False(t, NeedsEnhancement(settled))

	noLinkedIn := settled
	noLinkedIn.LinkedInURL = ""
	assert.True(t, NeedsEnhancement(noLinkedIn))

	badSummary := settled
	badSummary.Summary = SummaryNoInfoStartup
	assert.True(t, NeedsEnhancement(badSummary))
}

func TestFillTerminalValuesAreNotMissing(t *testing.T) {
	// The fill stage's outputs must settle the record or the cascade loops.
	rec := model.Record{
		Category: CategoryUncategorized,
		Summary:  SummaryUnavailable,
	}
	assert.False(t, NeedsSummary(rec))
}
