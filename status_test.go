package vexpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusInvalidArgument, "invalid_argument"},
		{StatusOutOfRange, "out_of_range"},
		{StatusBuildError, "build_error"},
		{StatusSearchError, "search_error"},
		{StatusInternalError, "internal_error"},
		{Status(200), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestStatus_ZeroValueIsSuccess(t *testing.T) {
	var s Status
	assert.Equal(t, StatusSuccess, s)
}
