package maintenance

import (
	"fmt"
	"strings"
)

// descriptionProbeLen is the length of the normalized prefix compared when
// deciding whether a description is already up to date. The prefix check is
// intentionally loose: it tolerates benign drift beyond the probe while still
// catching every structural rewrite. Switching to a full-body comparison
// would change observable re-run behavior, so the heuristic stays.
const descriptionProbeLen = 160

// BuildDescription synthesizes the fixed-structure HTML description for a
// product. It is a pure function of title and vendor; callers substitute the
// configured fallback brand when the vendor is absent.
func BuildDescription(title, vendor string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p><strong>%s</strong> by %s.</p>\n", title, vendor))
	b.WriteString("<p>Why you'll love it:</p>\n")
	b.WriteString("<ul>\n")
	b.WriteString("<li>Premium quality, built to last</li>\n")
	b.WriteString("<li>Backed by our satisfaction guarantee</li>\n")
	b.WriteString("<li>Fast dispatch from our warehouse</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("<p>Details:</p>\n")
	b.WriteString("<ul>\n")
	b.WriteString(fmt.Sprintf("<li>Brand: %s</li>\n", vendor))
	b.WriteString(fmt.Sprintf("<li>Product: %s</li>\n", title))
	b.WriteString("</ul>\n")
	b.WriteString("<p>Shipping &amp; returns: orders ship within 1-2 business days. ")
	b.WriteString("Not happy? Return it within 30 days for a full refund.</p>")
	return b.String()
}

// descriptionUpToDate reports whether the current description already matches
// the proposed one, comparing fixed-length prefixes of the
// whitespace-normalized forms.
func descriptionUpToDate(current, proposed string) bool {
	return probe(current) == probe(proposed)
}

// probe normalizes whitespace (trim, collapse internal runs to single
// spaces) and cuts the result to the probe length.
func probe(s string) string {
	normalized := strings.Join(strings.Fields(s), " ")
	if len(normalized) > descriptionProbeLen {
		return normalized[:descriptionProbeLen]
	}
	return normalized
}
