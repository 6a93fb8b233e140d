package stats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewTotal(t *testing.T) {
	assert.Equal(t, 0, ReviewTotal(nil))
	assert.Equal(t, 0, ReviewTotal(map[string]int{}))
	assert.Equal(t, 15, ReviewTotal(map[string]int{"-2": 1, "-1": 2, "0": 3, "1": 4, "2": 5}))
	assert.Equal(t,
		ReviewTotal(map[string]int{"a": 3, "x": 9, "A": 1}),
		ReviewTotal(map[string]int{"A": 1, "a": 3, "x": 9}),
	)
}

func TestContribution_Cells(t *testing.T) {
	c := Contribution{
		CommitCount:             10,
		DraftedBlueprintCount:   1,
		CompletedBlueprintCount: 2,
		FiledBugCount:           3,
		ResolvedBugCount:        4,
		Marks:                   map[string]int{"2": 6, "-1": 1},
		Translations:            json.Number("42"),
	}

	cells := c.Cells()
	require.Len(t, cells, CellsPerCompany)
	assert.Equal(t, []string{"10", "1", "2", "3", "4", "7", "42"}, cells)
}

func TestDecodeContribution(t *testing.T) {
	body := []byte(`{"contribution": {
		"commit_count": 5,
		"drafted_blueprint_count": 0,
		"completed_blueprint_count": 1,
		"filed_bug_count": 2,
		"resolved_bug_count": 3,
		"marks": {"-2": 1, "2": 4, "A": 2},
		"translations": 12.5,
		"loc": 1000
	}}`)

	c, err := decodeContribution(body)
	require.NoError(t, err)
	assert.Equal(t, 5, c.CommitCount)
	assert.Equal(t, 7, c.ReviewTotal())
	assert.Equal(t, "12.5", c.Cells()[6])
}

func TestDecodeContribution_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no contribution", `{"stats": {}}`},
		{"no marks", `{"contribution": {"commit_count": 1, "drafted_blueprint_count": 0, "completed_blueprint_count": 0, "filed_bug_count": 0, "resolved_bug_count": 0, "translations": 0}}`},
		{"no commit count", `{"contribution": {"drafted_blueprint_count": 0, "completed_blueprint_count": 0, "filed_bug_count": 0, "resolved_bug_count": 0, "marks": {}, "translations": 0}}`},
		{"no translations", `{"contribution": {"commit_count": 1, "drafted_blueprint_count": 0, "completed_blueprint_count": 0, "filed_bug_count": 0, "resolved_bug_count": 0, "marks": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeContribution([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errMissingField))
		})
	}
}

func TestDecodeContribution_Malformed(t *testing.T) {
	_, err := decodeContribution([]byte(`<html>oops</html>`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errMissingField))
}
