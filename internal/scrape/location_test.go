package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"alias sf", "SF", "San Francisco"},
		{"alias nyc", "nyc", "New York"},
		{"alias wfh", "WFH", "Remote"},
		{"work from home", "Work From Home", "Remote"},
		{"city with state abbreviation", "austin, tx", "Austin, Texas"},
		{"city with full state", "Portland, Oregon", "Portland, Oregon"},
		{"bare state abbreviation", "ca", "California"},
		{"extra whitespace collapsed", "  san   jose , ca ", "San Jose, California"},
		{"single city title cased", "chicago", "Chicago"},
		{"special characters stripped", "Boston! (MA)", "Boston Ma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocation(tt.in))
		})
	}
}

func TestIsRemoteLocation(t *testing.T) {
	assert.True(t, IsRemoteLocation("Remote"))
	assert.True(t, IsRemoteLocation("Remote - US only"))
	assert.True(t, IsRemoteLocation("100% telecommute"))
	assert.True(t, IsRemoteLocation("Distributed team, anywhere"))
	assert.False(t, IsRemoteLocation("New York, NY"))
	assert.False(t, IsRemoteLocation(""))
}
