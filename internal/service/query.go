package service

import (
	"fmt"
	"strings"
)

// buildQuery assembles a retrieval query from the request particulars. Ages
// are expanded into "N year(s)"/"M month(s)" wording so they match how the
// knowledge text typically phrases developmental stages; the domain label is
// added both verbatim and with underscores replaced (fine_motor → fine motor).
func buildQuery(ageMonths *int, domainLabel, extra string) string {
	parts := make([]string, 0, 6)

	if ageMonths != nil {
		years := *ageMonths / 12
		months := *ageMonths % 12

		if years > 0 {
			parts = append(parts, pluralize(years, "year"))
		}
		if months > 0 {
			parts = append(parts, pluralize(months, "month"))
		}
		parts = append(parts, fmt.Sprintf("%d months", *ageMonths))
	}

	if domainLabel != "" {
		parts = append(parts, domainLabel)
		variant := strings.ToLower(strings.ReplaceAll(domainLabel, "_", " "))
		if variant != domainLabel {
			parts = append(parts, variant)
		}
	}

	if extra != "" {
		parts = append(parts, extra)
	}

	return strings.Join(parts, " ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
