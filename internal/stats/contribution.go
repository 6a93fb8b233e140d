package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// CellsPerCompany is the width of one company's column group.
const CellsPerCompany = 7

var errMissingField = errors.New("missing field")

// Contribution is the statistics object returned for one combination.
type Contribution struct {
	CommitCount             int
	DraftedBlueprintCount   int
	CompletedBlueprintCount int
	FiledBugCount           int
	ResolvedBugCount        int
	Marks                   map[string]int
	Translations            json.Number
}

// ReviewTotal sums every review score bucket.
func (c Contribution) ReviewTotal() int {
	return ReviewTotal(c.Marks)
}

// Cells returns the company column group in report order.
func (c Contribution) Cells() []string {
	translations := c.Translations.String()
	if translations == "" {
		translations = "0"
	}
	return []string{
		strconv.Itoa(c.CommitCount),
		strconv.Itoa(c.DraftedBlueprintCount),
		strconv.Itoa(c.CompletedBlueprintCount),
		strconv.Itoa(c.FiledBugCount),
		strconv.Itoa(c.ResolvedBugCount),
		strconv.Itoa(c.ReviewTotal()),
		translations,
	}
}

// ReviewTotal returns the sum of all marks values.
func ReviewTotal(marks map[string]int) int {
	total := 0
	for _, n := range marks {
		total += n
	}
	return total
}

type contributionResponse struct {
	Contribution *contributionPayload `json:"contribution"`
}

// Pointers distinguish an absent field from a zero count.
type contributionPayload struct {
	CommitCount             *int           `json:"commit_count"`
	DraftedBlueprintCount   *int           `json:"drafted_blueprint_count"`
	CompletedBlueprintCount *int           `json:"completed_blueprint_count"`
	FiledBugCount           *int           `json:"filed_bug_count"`
	ResolvedBugCount        *int           `json:"resolved_bug_count"`
	Marks                   map[string]int `json:"marks"`
	Translations            *json.Number   `json:"translations"`
}

func decodeContribution(body []byte) (Contribution, error) {
	var resp contributionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Contribution{}, fmt.Errorf("decoding response: %w", err)
	}
	p := resp.Contribution
	if p == nil {
		return Contribution{}, fmt.Errorf("%w: contribution", errMissingField)
	}

	ints := []struct {
		name string
		v    *int
	}{
		{"commit_count", p.CommitCount},
		{"drafted_blueprint_count", p.DraftedBlueprintCount},
		{"completed_blueprint_count", p.CompletedBlueprintCount},
		{"filed_bug_count", p.FiledBugCount},
		{"resolved_bug_count", p.ResolvedBugCount},
	}
	for _, f := range ints {
		if f.v == nil {
			return Contribution{}, fmt.Errorf("%w: contribution.%s", errMissingField, f.name)
		}
	}
	if p.Marks == nil {
		return Contribution{}, fmt.Errorf("%w: contribution.marks", errMissingField)
	}
	if p.Translations == nil {
		return Contribution{}, fmt.Errorf("%w: contribution.translations", errMissingField)
	}

	return Contribution{
		CommitCount:             *p.CommitCount,
		DraftedBlueprintCount:   *p.DraftedBlueprintCount,
		CompletedBlueprintCount: *p.CompletedBlueprintCount,
		FiledBugCount:           *p.FiledBugCount,
		ResolvedBugCount:        *p.ResolvedBugCount,
		Marks:                   p.Marks,
		Translations:            *p.Translations,
	}, nil
}
