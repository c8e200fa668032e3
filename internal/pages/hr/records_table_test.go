package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordsFoundPattern(t *testing.T) {
	tests := []struct {
		n     int
		msg   string
		match bool
	}{
		{0, "No Records Found", true},
		{1, "(1) Record Found", true},
		{3, "(3) Records Found", true},
		{1, "(11) Records Found", false},
		{3, "(13) Records Found", false},
		{0, "(0) Records Found", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.match, recordsFoundPattern(tt.n).MatchString(tt.msg), "%d vs %q", tt.n, tt.msg)
	}
}
