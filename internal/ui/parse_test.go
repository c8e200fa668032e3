package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliedCount(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"3 filters applied", 3},
		{"1 filter applied", 1},
		{"  0 filters applied\n", 0},
		{"Showing 12 filters applied to 40 tours", 12},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := ParseAppliedCount(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAppliedCount_Mismatch(t *testing.T) {
	for _, msg := range []string{"", "filters applied", "three filters applied"} {
		_, err := ParseAppliedCount(msg)
		assert.ErrorIs(t, err, ErrPatternMismatch, "message %q", msg)
	}
}

func TestParseRecordsFound(t *testing.T) {
	n, err := ParseRecordsFound("(12) Records Found")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = ParseRecordsFound("(1) Record Found")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ParseRecordsFound("No Records Found")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = ParseRecordsFound("Records")
	assert.ErrorIs(t, err, ErrPatternMismatch)
}

func TestExtractTrailingID(t *testing.T) {
	id, err := ExtractTrailingID("checkbox-substyles-12", "substyles")
	require.NoError(t, err)
	assert.Equal(t, "12", id)

	id, err = ExtractTrailingID("checkbox-guide-language-3", "language")
	require.NoError(t, err)
	assert.Equal(t, "3", id)

	for _, v := range []string{"", "checkbox-substyles-", "checkbox-language-4", "checkbox-substyles-4a"} {
		_, err := ExtractTrailingID(v, "substyles")
		assert.ErrorIs(t, err, ErrPatternMismatch, "value %q", v)
	}
}

func TestHasClass(t *testing.T) {
	assert.True(t, HasClass("filter-select op", "op"))
	assert.True(t, HasClass("op", "op"))
	assert.False(t, HasClass("dropdown open", "op"), "substring of another class is not a match")
	assert.False(t, HasClass("", "op"))
}

func TestClassRegexp(t *testing.T) {
	re := ClassRegexp("active")
	assert.True(t, re.MatchString("item active"))
	assert.True(t, re.MatchString("active"))
	assert.False(t, re.MatchString("inactive"))
}

func TestAnyOf(t *testing.T) {
	re := AnyOf("Explorer", "Hiking & Trekking", "a.b")
	assert.True(t, re.MatchString("Family, Explorer"))
	assert.True(t, re.MatchString("Hiking & Trekking"))
	assert.False(t, re.MatchString("axb"), "values are literal")
}

func TestAnyOf_NoValuesMatchesNothing(t *testing.T) {
	re := AnyOf()
	assert.False(t, re.MatchString("Sailing"))
	assert.False(t, re.MatchString(""))
}
