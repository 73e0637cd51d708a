package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Real Estate!!":       "real_estate",
		"  Cloud   Storage  ": "cloud_storage",
		"--Already_snake--":   "already_snake",
		"Ünïcode Café":        "n_code_caf",
		"!!!":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}

	t.Run("long input -> capped at 60", func(t *testing.T) {
		got := Slugify(strings.Repeat("ab ", 40))
		assert.Len(t, got, 60)
	})
}
