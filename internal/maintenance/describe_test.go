package maintenance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildDescription(t *testing.T) {
	// given
	body := BuildDescription("Walnut Desk", "Oakline")
	// then
	assert.Contains(t, body, "<strong>Walnut Desk</strong>")
	assert.Contains(t, body, "by Oakline")
	assert.Contains(t, body, "<li>Brand: Oakline</li>")
	assert.Contains(t, body, "Shipping &amp; returns")
}

func Test_BuildDescription_IsPure(t *testing.T) {
	assert.Equal(t, BuildDescription("A", "B"), BuildDescription("A", "B"))
}

func Test_DescriptionUpToDate(t *testing.T) {
	proposed := BuildDescription("Walnut Desk", "Oakline")
	testCases := []struct {
		name     string
		current  string
		expected bool
	}{
		{
			name:     "identical body is up to date",
			current:  proposed,
			expected: true,
		},
		{
			name:     "whitespace differences are normalized away",
			current:  "  " + strings.ReplaceAll(proposed, " ", "   ") + "\n",
			expected: true,
		},
		{
			name:     "empty body needs a rewrite",
			current:  "",
			expected: false,
		},
		{
			name:     "different content needs a rewrite",
			current:  "<p>Handwritten marketing copy</p>",
			expected: false,
		},
		{
			name:     "drift beyond the probe prefix is tolerated",
			current:  proposed + " trailing footnote added by a merchant",
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, descriptionUpToDate(tc.current, proposed))
		})
	}
}

func Test_Probe_TruncatesToFixedLength(t *testing.T) {
	long := strings.Repeat("a", 500)
	assert.Len(t, probe(long), descriptionProbeLen)
	assert.Equal(t, probe(long), probe(long+" different tail"))
}
