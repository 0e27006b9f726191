package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryFrom(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "plain keywords", args: []string{"funny", "dog"}, want: "funny+dog"},
		{name: "drops index flag and value", args: []string{"dog", "-i", "3"}, want: "dog"},
		{name: "drops all flag", args: []string{"dog", "-a"}, want: "dog"},
		{name: "flags mid query", args: []string{"big", "-i", "2", "dog"}, want: "big+dog"},
		{name: "empty", args: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryFrom(tt.args))
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	// RFC1123 always carries the weekday and year
	formatted := FormatExpiry(0)
	assert.Contains(t, formatted, "1970")
}
