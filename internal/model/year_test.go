package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1900", 1900, true},
		{"1898-1902", 1898, true},
		{"ca. 1900", 1900, true},
		{"Jan 1912 - Mar 1913", 1912, true},
		{"12345", 1234, true},
		{"19. Jh.", 0, false},
		{"", 0, false},
		{"190", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := StartYear(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, "1900-1901", ExpandYear("1900"))
	assert.Equal(t, "1900-1901", ExpandYear(" 1900 "))
	assert.Equal(t, "1900-1905", ExpandYear("1900-1905"))
	assert.Equal(t, "ca. 1900", ExpandYear("ca. 1900"))
	assert.Equal(t, "", ExpandYear(""))
}
