package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{name: "Simple title", title: "Birthday", expected: "birthday"},
		{name: "Spaces and punctuation collapse", title: "Dasha's 30th Birthday!", expected: "dasha-s-30th-birthday"},
		{name: "ASCII digits kept", title: "Top 10 gifts", expected: "top-10-gifts"},
		{name: "Non-ASCII digits dropped", title: "٣ gifts", expected: "gifts"},
		{name: "Cyrillic title falls back", title: "День рождения", expected: "wishlist"},
		{name: "Empty title falls back", title: "", expected: "wishlist"},
		{name: "Leading and trailing separators trimmed", title: "  --wedding--  ", expected: "wedding"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.title))
		})
	}
}

func TestSlugSuffix(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		suffix := SlugSuffix()
		assert.Regexp(t, `^[a-z0-9]{4}$`, suffix)
		seen[suffix] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "suffixes should vary")
}
